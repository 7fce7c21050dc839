package discord

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"socialgraph/backend/internal/network"
	"go.uber.org/zap"
)

// commandTimeout bounds how long a single chat command may run
const commandTimeout = 10 * time.Second

// Sender is the slice of *discordgo.Session the handler needs to reply
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Sender = (*discordgo.Session)(nil)

// Handler turns Discord messages into social graph commands
type Handler struct {
	graph  *network.SocialGraph
	prefix string
	logger *zap.Logger
}

// NewHandler creates a new Discord message handler
func NewHandler(g *network.SocialGraph, prefix string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		graph:  g,
		prefix: prefix,
		logger: logger,
	}
}

// HandleMessage processes a Discord message
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from the bot itself
	if m.Author == nil || (s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}
	h.handle(s, m.ChannelID, m.Author.ID, m.Content)
}

// handle is HandleMessage without the session, so tests can drive it with a fake Sender
func (h *Handler) handle(sender Sender, channelID, authorID, content string) {
	body, ok := h.stripPrefix(content)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	h.logger.Info("Processing Discord command",
		zap.String("user_id", authorID),
		zap.String("channel_id", channelID),
	)

	reply := h.Execute(ctx, body)
	h.sendLongMessage(sender, channelID, reply)
}

// stripPrefix returns the text after the command prefix, if content starts with it
func (h *Handler) stripPrefix(content string) (string, bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, h.prefix) {
		return "", false
	}
	rest := content[len(h.prefix):]
	// "!sgx" is not "!sg x"
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
