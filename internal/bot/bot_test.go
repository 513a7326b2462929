package bot

import (
	"context"
	"strconv"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-dashboard/internal/logging"
	"life-dashboard/internal/repository"
	"life-dashboard/internal/service"
	"life-dashboard/internal/testutil"
)

type fakeSender struct {
	sent     []tgbotapi.MessageConfig
	requests int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

type botFixture struct {
	bot    *Bot
	api    *fakeSender
	clock  *testutil.Clock
	chores *service.ChoreService
	plants *service.PlantService
}

func newBotFixture(t *testing.T, chatIDs ...int64) *botFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	clock := &testutil.Clock{T: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	logger := logging.Discard()
	chores := service.NewChoreService(repository.NewChoreRepository(db), clock.Now, logger)
	plants := service.NewPlantService(repository.NewPlantRepository(db), 7, clock.Now, logger)
	api := &fakeSender{}
	b := newBot(api, Deps{
		Chores:  chores,
		Plants:  plants,
		Reports: service.NewReminderService(chores, plants, clock.Now),
	}, chatIDs, logger)
	return &botFixture{bot: b, api: api, clock: clock, chores: chores, plants: plants}
}

func command(chat int64, text string) *tgbotapi.Message {
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chat, Type: "private"},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}
}

func TestBot_IgnoresUnknownChats(t *testing.T) {
	f := newBotFixture(t, 42)

	require.NoError(t, f.bot.handleMessage(context.Background(), command(7, "/due")))
	assert.Empty(t, f.api.sent)

	require.NoError(t, f.bot.handleMessage(context.Background(), command(42, "/help")))
	assert.Contains(t, f.api.last(t).Text, "/water")
	assert.Equal(t, tgbotapi.ModeHTML, f.api.last(t).ParseMode)
}

func TestBot_DoneAndWater(t *testing.T) {
	f := newBotFixture(t, 42)
	ctx := context.Background()

	chore, err := f.chores.Create(ctx, service.ChoreInput{Name: "Müll <Bio>", Frequency: "daily"})
	require.NoError(t, err)
	plant, err := f.plants.Create(ctx, service.PlantInput{Name: "Ficus"})
	require.NoError(t, err)

	require.NoError(t, f.bot.handleMessage(ctx, command(42, "/done "+itoa(chore.ID))))
	assert.Contains(t, f.api.last(t).Text, "Müll &lt;Bio&gt; erledigt")

	got, err := f.chores.Get(ctx, chore.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", string(got.Status))

	require.NoError(t, f.bot.handleMessage(ctx, command(42, "/water #"+itoa(plant.ID))))
	assert.Contains(t, f.api.last(t).Text, "Ficus gegossen")

	require.NoError(t, f.bot.handleMessage(ctx, command(42, "/done 99")))
	assert.Contains(t, f.api.last(t).Text, "#99 gibt es nicht")

	require.NoError(t, f.bot.handleMessage(ctx, command(42, "/done")))
	assert.Contains(t, f.api.last(t).Text, "Nummer")
}

func TestBot_DailyReportWithKeyboard(t *testing.T) {
	f := newBotFixture(t, 42, 43)
	ctx := context.Background()

	require.NoError(t, f.bot.SendDailyReports(ctx))
	assert.Empty(t, f.api.sent, "nothing due, nothing sent")

	chore, err := f.chores.Create(ctx, service.ChoreInput{Name: "Bad", Frequency: "daily"})
	require.NoError(t, err)
	f.clock.Advance(25 * time.Hour)

	require.NoError(t, f.bot.SendDailyReports(ctx))
	require.Len(t, f.api.sent, 2)
	assert.Equal(t, int64(43), f.api.sent[1].ChatID)
	assert.Contains(t, f.api.sent[0].Text, "<b>Überfällig</b>")

	kb, ok := f.api.sent[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	data := *kb.InlineKeyboard[0][0].CallbackData
	assert.Equal(t, "done:"+itoa(chore.ID), data)

	cb := &tgbotapi.CallbackQuery{ID: "cb1", Data: data, Message: command(42, "")}
	require.NoError(t, f.bot.handleCallback(ctx, cb))
	assert.Equal(t, 1, f.api.requests)
	assert.Contains(t, f.api.last(t).Text, "Bad erledigt")
}

func TestParseIDAndShortName(t *testing.T) {
	id, err := parseID(" #12 ")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)
	_, err = parseID("zwölf")
	assert.Error(t, err)
	_, err = parseID("0")
	assert.Error(t, err)

	assert.Equal(t, "Monstera", shortName("Monstera", 10))
	assert.Equal(t, "Gummibäu…", shortName("Gummibäume", 9))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
