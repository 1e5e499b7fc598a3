// Package client routes Telegram updates into game intents: search, choose,
// submit, exit. The engine decides everything; this layer only parses.
package client

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lyricduet/duetbot/internal/bot"
	"github.com/lyricduet/duetbot/internal/config"
	"github.com/lyricduet/duetbot/internal/game"
)

// quitWords are accepted as exit even without the slash command.
var quitWords = map[string]bool{
	"quit": true,
	"q":    true,
	"退出接歌": true,
	"结束接歌": true,
}

type ClientHandlers struct {
	engine *game.Engine
	store  *game.Store
	cfg    *config.Config
}

func NewClientHandlers(engine *game.Engine, store *game.Store, cfg *config.Config) *ClientHandlers {
	return &ClientHandlers{
		engine: engine,
		store:  store,
		cfg:    cfg,
	}
}

// userID keys sessions by chat, so every private chat (or group) is its own
// game.
func userID(message *tgbotapi.Message) string {
	return strconv.FormatInt(message.Chat.ID, 10)
}

func (h *ClientHandlers) startHandler(b *bot.Bot, update tgbotapi.Update) error {
	return b.SendMessage(update.Message.Chat.ID,
		"hi! i play lyric call-and-response: you sing a line, i answer with the next one.\n\n"+
			"/sing <song or lyric snippet> — pick a song\n"+
			"/sing <song> | <line> — start from a specific line\n"+
			"/exit — leave the game")
}

func (h *ClientHandlers) singHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message

	keyword := message.CommandArguments()
	startKeyword := ""
	if pipe := strings.Index(keyword, "|"); pipe >= 0 {
		startKeyword = keyword[pipe+1:]
		keyword = keyword[:pipe]
	}

	reply, ok := h.engine.BeginSearch(context.Background(), userID(message), keyword, startKeyword)
	if !ok {
		return nil
	}
	return b.SendMessage(message.Chat.ID, reply)
}

func (h *ClientHandlers) exitHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	reply, ok := h.engine.Exit(userID(message))
	if !ok {
		return b.SendMessage(message.Chat.ID, "you're not in a game right now")
	}
	return b.SendMessage(message.Chat.ID, reply)
}

func (h *ClientHandlers) sessionsHandler(b *bot.Bot, update tgbotapi.Update) error {
	snapshot := h.store.Snapshot()
	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return b.SendMessage(update.Message.Chat.ID, "failed to convert sessions to JSON")
	}
	return b.SendMessageWithMarkdown(update.Message.Chat.ID, "```json\n"+string(jsonData)+"\n```", true)
}

// messageHandler is the catch-all for non-command messages: digits become a
// candidate choice, everything else a sung line, and whatever the engine
// ignores falls through to the default reply.
func (h *ClientHandlers) messageHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if message == nil || message.Text == "" || message.IsCommand() {
		return nil
	}

	text := strings.TrimSpace(message.Text)
	uid := userID(message)
	ctx := context.Background()

	if quitWords[strings.ToLower(text)] {
		if reply, ok := h.engine.Exit(uid); ok {
			return b.SendMessage(message.Chat.ID, reply)
		}
		return nil
	}

	if choice, err := strconv.Atoi(text); err == nil {
		if reply, ok := h.engine.ChooseCandidate(ctx, uid, choice); ok {
			return b.SendMessage(message.Chat.ID, reply)
		}
		// Not selecting a song: a numeric lyric line is still a lyric line.
	}

	if reply, ok := h.engine.SubmitLine(ctx, uid, text); ok {
		return b.SendMessage(message.Chat.ID, reply)
	}

	return b.SendMessage(message.Chat.ID, h.cfg.Messages.NotUnderstood)
}

// SetupHandlers wires the client bot and starts its update loop.
func SetupHandlers(clientBot *bot.Bot, engine *game.Engine, store *game.Store, cfg *config.Config) {
	handlers := NewClientHandlers(engine, store, cfg)

	commandHandlers := map[string]func(b *bot.Bot, update tgbotapi.Update) error{
		"start":    handlers.startHandler,
		"sing":     handlers.singHandler,
		"exit":     handlers.exitHandler,
		"sessions": handlers.sessionsHandler,
	}

	messageHandlers := []func(b *bot.Bot, update tgbotapi.Update) error{
		handlers.messageHandler,
	}

	go clientBot.Start(commandHandlers, messageHandlers)
}
