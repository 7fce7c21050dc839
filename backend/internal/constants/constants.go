package constants

// Separation constants
const (
	// NoSeparation is returned by DegreeOfSeparation when either person is
	// missing or no path connects them
	NoSeparation = -1

	// ContextCheckInterval is how many BFS dequeues happen between context checks
	ContextCheckInterval = 256
)

// Projection constants
const (
	// DefaultProjectionWorkers bounds concurrent Neo4j writes during a projection
	DefaultProjectionWorkers = 4

	// PersonLabel and FriendshipType name the Neo4j node label and relationship type
	PersonLabel    = "Person"
	FriendshipType = "FRIENDS_WITH"
)

// Discord constants
const (
	// DiscordMaxMessageLength is the maximum character limit for Discord messages
	DiscordMaxMessageLength = 2000

	// DefaultCommandPrefix starts every bot command
	DefaultCommandPrefix = "!sg"
)
