package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/metrics"
	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

// ModelClient produces either a structured call or free text for a prompt.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (*models.ModelResponse, error)
}

// RowAppender persists one extraction row.
type RowAppender interface {
	AppendRow(ctx context.Context, rec models.ExtractionRecord) error
}

// Messenger sends a reply; replyTo of 0 means not threaded.
type Messenger interface {
	Deliver(ctx context.Context, chatID int64, replyTo int, text string) (models.DeliveryResult, error)
}

// User-facing failure replies. Details stay in the operator log.
const (
	ApologyMessage      = "⚠️ Sorry, I couldn't process that message right now. Please try again."
	StoreFailureMessage = "⚠️ Sorry, I understood the update but couldn't save it to the log. Please try again."
)

// Outcome is how a message ended.
type Outcome string

const (
	OutcomeLogged   Outcome = "logged"
	OutcomeAnswered Outcome = "answered"
	OutcomeFailed   Outcome = "failed"
)

// Dispatcher routes each message to the log or the answer path.
type Dispatcher struct {
	model         ModelClient
	store         RowAppender
	messenger     Messenger
	links         models.LinkTable
	replyInThread bool
	now           func() time.Time
	logger        *zap.Logger
}

// Options tune a Dispatcher. Zero values are usable.
type Options struct {
	ReplyInThread bool
	Now           func() time.Time
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	model ModelClient,
	store RowAppender,
	messenger Messenger,
	links models.LinkTable,
	opts Options,
	logger *zap.Logger,
) *Dispatcher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Dispatcher{
		model:         model,
		store:         store,
		messenger:     messenger,
		links:         links,
		replyInThread: opts.ReplyInThread,
		now:           opts.Now,
		logger:        logger,
	}
}

// Handle processes one message to completion. It never returns an error:
// every failure is logged and, where possible, reported to the user.
func (d *Dispatcher) Handle(ctx context.Context, msg models.IncomingMessage) (outcome Outcome) {
	log := d.logger.With(
		zap.String("trace_id", uuid.NewString()),
		zap.Int64("chat_id", msg.ChatID),
		zap.Int("message_id", msg.MessageID),
		zap.String("sender", msg.SenderName),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Message handler panicked", zap.Any("panic", r), zap.Stack("stack"))
			d.reply(ctx, log, msg, ApologyMessage)
			outcome = OutcomeFailed
		}
		metrics.MessagesHandled.WithLabelValues(string(outcome)).Inc()
	}()

	prompt := ComposePrompt(msg.Text, msg.ReplyToText)
	log.Debug("Prompt composed",
		zap.Bool("has_reply_context", msg.ReplyToText != ""),
		zap.Int("prompt_length", len(prompt)))

	start := time.Now()
	resp, err := d.model.Generate(ctx, prompt)
	metrics.ModelLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("Model call failed", zap.Error(err))
		d.reply(ctx, log, msg, ApologyMessage)
		return OutcomeFailed
	}

	if resp.IsCall() {
		return d.logExtraction(ctx, log, msg, resp.Call)
	}
	return d.answer(ctx, log, msg, resp.Text)
}

func (d *Dispatcher) logExtraction(ctx context.Context, log *zap.Logger, msg models.IncomingMessage, args *models.ExtractionArgs) Outcome {
	rec := models.NewExtractionRecord(msg.SenderName, msg.Text, args, d.now())

	if err := d.store.AppendRow(ctx, rec); err != nil {
		log.Error("Failed to append row", zap.Error(err))
		d.reply(ctx, log, msg, StoreFailureMessage)
		return OutcomeFailed
	}
	metrics.RowsAppended.Inc()

	log.Info("Row appended",
		zap.String("item", rec.Item),
		zap.Int("quantity", rec.Quantity),
		zap.String("status", rec.Status))

	// The row stays even if this confirmation cannot be sent.
	d.reply(ctx, log, msg, Confirmation(rec))
	return OutcomeLogged
}

func (d *Dispatcher) answer(ctx context.Context, log *zap.Logger, msg models.IncomingMessage, text string) Outcome {
	d.reply(ctx, log, msg, Annotate(text, d.links))
	return OutcomeAnswered
}

func (d *Dispatcher) reply(ctx context.Context, log *zap.Logger, msg models.IncomingMessage, text string) {
	replyTo := 0
	if d.replyInThread {
		replyTo = msg.MessageID
	}

	result, err := d.messenger.Deliver(ctx, msg.ChatID, replyTo, text)
	metrics.Deliveries.WithLabelValues(result.String()).Inc()

	switch result {
	case models.DeliveredPlain:
		log.Warn("Markdown rejected, sent plain text")
	case models.DeliveryFailed:
		log.Error("Failed to deliver reply", zap.Error(err))
	}
}

// Confirmation summarises a logged row for the sender.
func Confirmation(rec models.ExtractionRecord) string {
	return fmt.Sprintf("✅ *Logged:* %s | %s | Qty: %d", rec.Status, rec.Item, rec.Quantity)
}
