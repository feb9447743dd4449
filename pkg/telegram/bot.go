package telegram

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vmkteam/embedlog"
)

type Bot struct {
	api    *bot.Bot
	logger embedlog.Logger
	menu   *Menu
	debug  bool
}

type Config struct {
	Token string
	Debug bool
}

// New creates a new Telegram bot instance
func New(ctx context.Context, cfg Config, menu *Menu, logger embedlog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(defaultHandler(logger)),
	}

	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		api:    api,
		logger: logger,
		menu:   menu,
		debug:  cfg.Debug,
	}

	b.registerHandlers()

	return b, nil
}

// Start starts the bot with long polling
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	b.logger.Print(ctx, "telegram bot started", "username", me.Username, "id", me.ID)
	b.api.Start(ctx)

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) {
	b.logger.Print(ctx, "stopping telegram bot")
}

func (b *Bot) registerHandlers() {
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.handleStart)

	// Callback query handler for inline keyboards
	b.api.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, b.handleCallback)

	// Text message handler for state-based input
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, b.handleMessage)
}

func (b *Bot) handleStart(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	scr := b.menu.HandleStart(ctx, chatID)
	b.sendScreen(ctx, botAPI, chatID, scr)
}

func (b *Bot) handleCallback(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	data := callback.Data

	// Extract chatID and messageID from callback message
	var chatID int64
	var messageID int
	if msg := callback.Message.Message; msg != nil {
		chatID = msg.Chat.ID
		messageID = msg.ID
	}
	if chatID == 0 {
		chatID = callback.From.ID
	}

	if !strings.Contains(data, ":") {
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
		})
		return
	}

	scr := b.menu.HandleAction(ctx, chatID, data)

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            scr.Notice,
	})
	if scr.Text == "" {
		return
	}

	if scr.Reply {
		b.sendScreen(ctx, botAPI, chatID, scr)
		return
	}

	_, err := botAPI.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        scr.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: scr.Markup,
	})
	if err != nil {
		b.logger.Error(ctx, "failed to edit message", "chat_id", chatID, "err", err)
	}

	if scr.Document != "" {
		b.sendDocument(ctx, botAPI, chatID, scr.Document)
	}
}

func (b *Bot) handleMessage(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.Message == nil || strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	chatID := update.Message.Chat.ID

	scr := b.menu.HandleText(ctx, chatID, update.Message.Text)
	if scr == nil {
		return
	}
	b.sendScreen(ctx, botAPI, chatID, scr)
}

func (b *Bot) sendScreen(ctx context.Context, botAPI *bot.Bot, chatID int64, scr *Screen) {
	_, err := botAPI.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        scr.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: scr.Markup,
	})
	if err != nil {
		b.logger.Error(ctx, "failed to send message", "chat_id", chatID, "err", err)
	}

	if scr.Document != "" {
		b.sendDocument(ctx, botAPI, chatID, scr.Document)
	}
}

// sendDocument uploads a generated report and removes the temp file.
func (b *Bot) sendDocument(ctx context.Context, botAPI *bot.Bot, chatID int64, path string) {
	f, err := os.Open(path)
	if err != nil {
		b.logger.Error(ctx, "failed to open report", "path", path, "err", err)
		return
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(path)
	}()

	_, err = botAPI.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filepath.Base(path), Data: f},
	})
	if err != nil {
		b.logger.Error(ctx, "failed to send document", "chat_id", chatID, "err", err)
	}
}

// defaultHandler handles updates no other handler matched
func defaultHandler(logger embedlog.Logger) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message != nil {
			logger.Print(ctx, "unknown command", "text", update.Message.Text, "from", update.Message.From.Username)
			_, err := b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: update.Message.Chat.ID,
				Text:   "Неизвестная команда. Отправьте /start",
			})
			if err != nil {
				logger.Error(ctx, "failed to send message", "err", err)
			}
		}
	}
}
