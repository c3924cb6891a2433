package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/banterworks/pitchside/internal/sheets"
	"github.com/banterworks/pitchside/pkg/models"
)

// Trigger starts a pipeline run on demand.
type Trigger interface {
	Run(ctx context.Context) (models.RunResult, error)
}

// Archive reads back previously generated rows.
type Archive interface {
	RecentEntries(ctx context.Context, count int) ([]sheets.Entry, error)
}

// Pauser controls the scheduled trigger.
type Pauser interface {
	Pause()
	Resume()
	Paused() bool
}

const helpText = "Commands:\n" +
	"/go - Generate content ideas now\n" +
	"/recent - Show recent topics\n" +
	"/status - Check bot status\n" +
	"/pause - Pause scheduled runs\n" +
	"/resume - Resume scheduled runs"

// Bot handles interactive commands over long polling.
type Bot struct {
	api     *tgbotapi.BotAPI
	store   *ChatStore
	trigger Trigger
	archive Archive
	pauser  Pauser
	log     zerolog.Logger
}

// NewBot creates the command bot. archive and pauser may be nil; the
// matching commands then report that the feature is unavailable.
func NewBot(api *tgbotapi.BotAPI, store *ChatStore, trigger Trigger, archive Archive, pauser Pauser, log zerolog.Logger) *Bot {
	return &Bot{api: api, store: store, trigger: trigger, archive: archive, pauser: pauser, log: log}
}

// SetPauser attaches the scheduler control after construction, for
// processes that build the bot before the scheduler exists.
func (b *Bot) SetPauser(p Pauser) {
	b.pauser = p
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)
	b.log.Info().Str("bot", b.api.Self.UserName).Msg("bot is running")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			chatID := update.Message.Chat.ID
			reply := b.handleCommand(ctx, update.Message.Command(), chatID)
			if reply == "" {
				continue
			}
			msg := tgbotapi.NewMessage(chatID, reply)
			msg.ParseMode = tgbotapi.ModeHTML
			if _, err := b.api.Send(msg); err != nil {
				b.log.Error().Err(err).Int64("chat", chatID).Msg("failed to send reply")
			}
		}
	}
}

// handleCommand dispatches one command and returns the reply text.
func (b *Bot) handleCommand(ctx context.Context, command string, chatID int64) string {
	b.log.Info().Str("command", command).Int64("chat", chatID).Msg("command received")

	switch command {
	case "start":
		isNew, err := b.store.Register(chatID)
		if err != nil {
			b.log.Error().Err(err).Msg("failed to register chat")
		}
		if isNew {
			return "👋 Welcome to the PL content bot!\n\n" +
				"✅ <b>You are now registered!</b>\n" +
				"You will receive all updates and notifications.\n\n" +
				helpText + "\n\nThe pipeline also runs automatically at 8:00 AM UK time daily."
		}
		return "👋 Welcome back!\n\nYou're already registered for updates.\n\n" + helpText

	case "go":
		result, err := b.trigger.Run(ctx)
		if err != nil {
			return fmt.Sprintf("❌ Pipeline failed: %s", err)
		}
		return FormatSummary(result)

	case "status":
		state := "✅ Bot is running!"
		if b.pauser != nil && b.pauser.Paused() {
			state = "⏸ Bot is running, scheduled runs are paused."
		}
		return state + "\n\n" + helpText

	case "recent":
		if b.archive == nil {
			return "Recent topics are unavailable: no sheet configured."
		}
		entries, err := b.archive.RecentEntries(ctx, 5)
		if err != nil {
			b.log.Error().Err(err).Msg("failed to fetch recent entries")
			return fmt.Sprintf("❌ Error: %s", err)
		}
		return FormatRecent(entries)

	case "pause":
		if b.pauser == nil {
			return "No scheduler is running."
		}
		b.pauser.Pause()
		return "⏸ Scheduled runs paused. Use /resume to switch them back on."

	case "resume":
		if b.pauser == nil {
			return "No scheduler is running."
		}
		b.pauser.Resume()
		return "▶️ Scheduled runs resumed."

	default:
		return "Unknown command.\n\n" + helpText
	}
}
