package telegram_bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Deliverer sends replies with Markdown, falling back to plain text once.
type Deliverer struct {
	sender sender
	logger *zap.Logger
}

// NewDeliverer creates a deliverer on top of a bot API handle
func NewDeliverer(s sender, logger *zap.Logger) *Deliverer {
	return &Deliverer{sender: s, logger: logger}
}

var plainReplacer = strings.NewReplacer("[", "", "]", " ", "(", "Link: ", ")", "")

// PlainText drops markdown link syntax so Telegram cannot reject it.
func PlainText(text string) string {
	return plainReplacer.Replace(text)
}

// Deliver implements service.Messenger.
func (d *Deliverer) Deliver(ctx context.Context, chatID int64, replyTo int, text string) (models.DeliveryResult, error) {
	if err := ctx.Err(); err != nil {
		return models.DeliveryFailed, err
	}

	msg := newReply(chatID, replyTo, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := d.sender.Send(msg)
	if err == nil {
		return models.Delivered, nil
	}

	d.logger.Warn("Markdown send failed, sending plain text",
		zap.Int64("chat_id", chatID),
		zap.Error(err))

	if _, err := d.sender.Send(newReply(chatID, replyTo, PlainText(text))); err != nil {
		return models.DeliveryFailed, fmt.Errorf("plain text send failed: %w", err)
	}
	return models.DeliveredPlain, nil
}

func newReply(chatID int64, replyTo int, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
		msg.AllowSendingWithoutReply = true
	}
	return msg
}
