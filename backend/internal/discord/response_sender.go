package discord

import (
	"fmt"
	"strings"
	"time"

	"socialgraph/backend/internal/constants"
	apperrors "socialgraph/backend/pkg/errors"
	"go.uber.org/zap"
)

// chunkDelay spaces out multi-part replies to stay clear of rate limits
var chunkDelay = 100 * time.Millisecond

// sendLongMessage splits a message into chunks if it exceeds Discord's character limit
func (h *Handler) sendLongMessage(s Sender, channelID, content string) {
	maxLength := constants.DiscordMaxMessageLength

	// Part indicator format: "*(Part X/Y)*" is about 15 chars, so reserve 20 for safety
	const partIndicatorReserve = 20
	chunks := []string{content}
	if len(content) > maxLength {
		chunks = splitMessage(content, maxLength-partIndicatorReserve)
	}

	for i, chunk := range chunks {
		message := chunk
		if len(chunks) > 1 {
			message = chunk + "\n" + fmt.Sprintf("*(Part %d/%d)*", i+1, len(chunks))
		}

		if _, err := s.ChannelMessageSend(channelID, message); err != nil {
			h.logger.Error("Failed to send message chunk",
				zap.Error(apperrors.NewDiscordMessageSendFailed(channelID, err)),
				zap.String("channel_id", channelID),
				zap.Int("chunk", i+1),
				zap.Int("total_chunks", len(chunks)),
			)
			// Stop sending if we hit an error
			return
		}

		if i < len(chunks)-1 {
			time.Sleep(chunkDelay)
		}
	}
}

// splitMessage splits content on line boundaries into chunks of at most maxLength.
// A single line longer than maxLength is cut hard.
func splitMessage(content string, maxLength int) []string {
	if len(content) <= maxLength {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.Split(content, "\n") {
		for len(line) > maxLength {
			flush()
			chunks = append(chunks, line[:maxLength])
			line = line[maxLength:]
		}

		extra := len(line)
		if current.Len() > 0 {
			extra++ // newline
		}
		if current.Len()+extra > maxLength {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}
