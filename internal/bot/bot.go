// Package bot pushes the due report to Telegram and lets allowed chats tick
// items off.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"life-dashboard/internal/repository"
	"life-dashboard/internal/service"
)

const (
	cbChorePrefix = "done:"
	cbPlantPrefix = "water:"
)

// sender is the part of tgbotapi.BotAPI the bot talks through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Deps are the services the bot drives.
type Deps struct {
	Chores  *service.ChoreService
	Plants  *service.PlantService
	Reports *service.ReminderService
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api     sender
	updates func(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	stop    func()
	deps    Deps
	chatIDs []int64
	allowed map[int64]bool
	logger  *log.Logger
}

// New authorizes token against Telegram. chatIDs receive the daily push and
// are the only chats whose commands are answered; an empty list answers
// every private chat.
func New(token string, deps Deps, chatIDs []int64, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.Info("bot authorized", "account", api.Self.UserName)

	b := newBot(api, deps, chatIDs, logger)
	b.updates = api.GetUpdatesChan
	b.stop = api.StopReceivingUpdates
	return b, nil
}

func newBot(api sender, deps Deps, chatIDs []int64, logger *log.Logger) *Bot {
	allowed := make(map[int64]bool, len(chatIDs))
	for _, id := range chatIDs {
		allowed[id] = true
	}
	return &Bot{api: api, deps: deps, chatIDs: chatIDs, allowed: allowed, logger: logger}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if b.updates == nil {
		return errors.New("bot has no update source")
	}
	if len(b.allowed) == 0 {
		b.logger.Warn("telegram.chat_ids is empty: answering every private chat, daily push disabled")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.updates(updateConfig)

	b.logger.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.stop()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.logger.Error("handle callback", "err", err)
			}
		case update.Message != nil:
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.logger.Error("handle message", "err", err)
			}
		}
	}
	return nil
}

func (b *Bot) permitted(chat *tgbotapi.Chat) bool {
	if chat == nil {
		return false
	}
	if len(b.allowed) == 0 {
		return chat.IsPrivate()
	}
	return b.allowed[chat.ID]
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if !b.permitted(msg.Chat) {
		b.logger.Debug("ignoring message from unknown chat", "chat", chatID(msg.Chat))
		return nil
	}
	if !msg.IsCommand() {
		return b.sendText(msg.Chat.ID, "Das habe ich nicht verstanden. /help zeigt die Befehle.")
	}

	b.logger.Info("command", "chat", msg.Chat.ID, "command", msg.Command(), "args", msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		return b.sendText(msg.Chat.ID, helpText)
	case "due":
		return b.sendReport(ctx, msg.Chat.ID)
	case "done":
		return b.handleChoreDone(ctx, msg.Chat.ID, msg.CommandArguments())
	case "water":
		return b.handleWater(ctx, msg.Chat.ID, msg.CommandArguments())
	default:
		return b.sendText(msg.Chat.ID, "Befehl nicht unterstützt. Schau in /help.")
	}
}

const helpText = "🏠 <b>Life Dashboard</b>\n" +
	"• /due — was ist überfällig oder bald fällig\n" +
	"• /done &lt;id&gt; — Aufgabe erledigt (z. B. /done 3)\n" +
	"• /water &lt;id&gt; — Pflanze gegossen\n" +
	"• /help — diese Hilfe"

func (b *Bot) handleChoreDone(ctx context.Context, chat int64, args string) error {
	id, err := parseID(args)
	if err != nil {
		return b.sendText(chat, "Bitte eine Nummer angeben, z. B. /done 3")
	}
	chore, err := b.deps.Chores.MarkDone(ctx, id)
	if err != nil {
		return b.sendFailure(chat, "Aufgabe", id, err)
	}
	return b.sendText(chat, fmt.Sprintf("✅ %s erledigt. Nächstes Mal: %s",
		html.EscapeString(chore.Name), chore.NextDueAt.Format("02.01.2006")))
}

func (b *Bot) handleWater(ctx context.Context, chat int64, args string) error {
	id, err := parseID(args)
	if err != nil {
		return b.sendText(chat, "Bitte eine Nummer angeben, z. B. /water 2")
	}
	plant, err := b.deps.Plants.Water(ctx, id)
	if err != nil {
		return b.sendFailure(chat, "Pflanze", id, err)
	}
	return b.sendText(chat, fmt.Sprintf("💧 %s gegossen. Wieder am %s",
		html.EscapeString(plant.Name), plant.NextWateringAt.Format("02.01.2006")))
}

func (b *Bot) sendFailure(chat int64, what string, id uint, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return b.sendText(chat, fmt.Sprintf("%s #%d gibt es nicht.", what, id))
	}
	b.logger.Error("bot action failed", "what", what, "id", id, "err", err)
	return b.sendText(chat, "Hat nicht geklappt: "+html.EscapeString(err.Error()))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.Message == nil || !b.permitted(cb.Message.Chat) {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("callback ack", "err", err)
	}

	chat := cb.Message.Chat.ID
	switch {
	case strings.HasPrefix(cb.Data, cbChorePrefix):
		return b.handleChoreDone(ctx, chat, strings.TrimPrefix(cb.Data, cbChorePrefix))
	case strings.HasPrefix(cb.Data, cbPlantPrefix):
		return b.handleWater(ctx, chat, strings.TrimPrefix(cb.Data, cbPlantPrefix))
	}
	return nil
}

func (b *Bot) sendReport(ctx context.Context, chat int64) error {
	report, err := b.deps.Reports.Build(ctx)
	if err != nil {
		return b.sendText(chat, "Bericht nicht verfügbar: "+html.EscapeString(err.Error()))
	}
	msg := tgbotapi.NewMessage(chat, report.HTML())
	msg.ParseMode = tgbotapi.ModeHTML
	if kb, ok := reportKeyboard(report); ok {
		msg.ReplyMarkup = kb
	}
	_, err = b.api.Send(msg)
	return err
}

// SendDailyReports pushes the report to every configured chat. Nothing is
// sent when nothing is due.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	report, err := b.deps.Reports.Build(ctx)
	if err != nil {
		return err
	}
	if report.Empty() {
		b.logger.Debug("daily report empty, nothing sent")
		return nil
	}
	var errs []error
	for _, chat := range b.chatIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.sendReport(ctx, chat); err != nil {
			b.logger.Error("send daily report", "chat", chat, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bot) sendText(chat int64, text string) error {
	msg := tgbotapi.NewMessage(chat, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

// reportKeyboard offers one button per due item.
func reportKeyboard(r service.Report) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, e := range append(append([]service.ReportEntry{}, r.Overdue...), r.DueSoon...) {
		label, data := "✅ "+shortName(e.Name, 24), cbChorePrefix+strconv.FormatUint(uint64(e.ID), 10)
		if e.Kind == service.KindPlant {
			label, data = "💧 "+shortName(e.Name, 24), cbPlantPrefix+strconv.FormatUint(uint64(e.ID), 10)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#")), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func shortName(name string, maxLen int) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) <= maxLen {
		return string(r)
	}
	return string(r[:maxLen-1]) + "…"
}

func chatID(c *tgbotapi.Chat) int64 {
	if c == nil {
		return 0
	}
	return c.ID
}
