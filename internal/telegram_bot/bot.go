package telegram_bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
	"github.com/mynameisDevendra/KURSnTbOT2/internal/service"
)

// MessageHandler processes one text message
type MessageHandler interface {
	Handle(ctx context.Context, msg models.IncomingMessage) service.Outcome
}

type botAPI interface {
	sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api         botAPI
	handler     MessageHandler
	logger      *zap.Logger
	pollTimeout int
}

// NewAPI authorizes against the Bot API
func NewAPI(token string, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))
	return api, nil
}

// NewBot creates a new Telegram bot instance
func NewBot(api botAPI, handler MessageHandler, pollTimeout int, logger *zap.Logger) *Bot {
	return &Bot{
		api:         api,
		handler:     handler,
		logger:      logger,
		pollTimeout: pollTimeout,
	}
}

// Start begins listening for updates from Telegram. Updates are handled
// one at a time, in arrival order.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Telegram bot started, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram bot shutting down...")
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

// handleMessage processes incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStartCommand(message)
		case "help":
			b.handleHelpCommand(message)
		default:
			b.sendMessage(message.Chat.ID, "Unknown command. Use /help for help.")
		}
		return
	}

	if message.Text == "" {
		return // photos, stickers, joins
	}

	b.handler.Handle(ctx, toIncoming(message))
}

func toIncoming(message *tgbotapi.Message) models.IncomingMessage {
	msg := models.IncomingMessage{
		MessageID:  message.MessageID,
		SenderName: senderName(message),
		Text:       message.Text,
	}
	if message.Chat != nil {
		msg.ChatID = message.Chat.ID
	}
	if message.ReplyToMessage != nil {
		msg.ReplyToText = message.ReplyToMessage.Text
	}
	return msg
}

func senderName(message *tgbotapi.Message) string {
	switch {
	case message.From != nil && message.From.FirstName != "":
		return message.From.FirstName
	case message.SenderChat != nil && message.SenderChat.Title != "":
		return message.SenderChat.Title
	}
	return "Unknown"
}

// handleStartCommand handles the /start command
func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	welcomeText := fmt.Sprintf(
		"👋 Hello, %s!\n\n"+
			"Report material movements in plain words and I will log them, e.g. \"Issued 5 relays to Station X\".\n\n"+
			"Ask a technical question and I will answer with a link to the right notebook.\n\n"+
			"Use /help for more.",
		senderName(message),
	)
	b.sendMessage(message.Chat.ID, welcomeText)
}

// handleHelpCommand handles the /help command
func (b *Bot) handleHelpCommand(message *tgbotapi.Message) {
	helpText := "📚 Help:\n\n" +
		"/start - Welcome message\n" +
		"/help - This help\n\n" +
		"📦 Logging: \"Received 2 SM cards at KRS\"\n" +
		"↩️ Reply to a request with its new status, e.g. \"Dispatched\"\n" +
		"❓ Questions: \"Why is the track circuit showing high voltage?\""
	b.sendMessage(message.Chat.ID, helpText)
}

// sendMessage is a helper to send a simple text message
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
