package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// sender is the slice of the bot API the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier broadcasts pipeline updates to every registered chat plus
// any chats pinned in configuration.
type Notifier struct {
	bot        sender
	store      *ChatStore
	configured []int64
	log        zerolog.Logger
}

// NewNotifier creates a notifier over an authorized bot.
func NewNotifier(bot sender, store *ChatStore, configured []int64, log zerolog.Logger) *Notifier {
	return &Notifier{bot: bot, store: store, configured: configured, log: log}
}

// Progress sends an HTML-formatted update to all target chats. Delivery
// failures to individual chats are logged, not returned; one dead chat
// must not silence the rest.
func (n *Notifier) Progress(message string) {
	targets := n.targets()
	if len(targets) == 0 {
		n.log.Warn().Msg("no chats registered for updates")
		return
	}
	for _, chatID := range targets {
		msg := tgbotapi.NewMessage(chatID, message)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := n.bot.Send(msg); err != nil {
			n.log.Error().Err(err).Int64("chat", chatID).Msg("failed to send update")
		}
	}
}

// Error sends an error notification.
func (n *Notifier) Error(message string) {
	n.Progress(fmt.Sprintf("❌ Error: %s", message))
}

func (n *Notifier) targets() []int64 {
	seen := make(map[int64]bool)
	var targets []int64
	if n.store != nil {
		for _, id := range n.store.All() {
			if !seen[id] {
				seen[id] = true
				targets = append(targets, id)
			}
		}
	}
	for _, id := range n.configured {
		if !seen[id] {
			seen[id] = true
			targets = append(targets, id)
		}
	}
	return targets
}
