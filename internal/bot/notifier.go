package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// Notifier sends due-review digests to a Telegram chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a Telegram notifier for the given bot token and chat
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

// SendDueDigest sends a summary of due reviews, most urgent topics first
func (n *Notifier) SendDueDigest(totalDue int, topics []models.TopicDueSummary) error {
	msg := tgbotapi.NewMessage(n.chatID, digestText(totalDue, topics))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	return nil
}

// digestText formats the digest body. Topics are labeled by name; the id is
// shown only when the topic row no longer exists.
func digestText(totalDue int, topics []models.TopicDueSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 You have %d reviews due.\n", totalDue)
	for _, t := range topics {
		name := t.TopicName
		if name == "" {
			name = t.TopicID
		}
		if t.UrgentCount > 0 {
			fmt.Fprintf(&b, "• %s: %d due (%d urgent)\n", name, t.DueCount, t.UrgentCount)
		} else {
			fmt.Fprintf(&b, "• %s: %d due\n", name, t.DueCount)
		}
	}
	return b.String()
}
