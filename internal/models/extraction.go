package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ExtractionFunctionName is the single tool the model may call.
const ExtractionFunctionName = "extract_transaction_data"

// TimestampLayout is the format of the last sheet column.
const TimestampLayout = "2006-01-02 15:04:05"

// Placeholders written when the model omits a field
const (
	DefaultCategory  = "N/A"
	DefaultItem      = "Unknown"
	DefaultQuantity  = 0
	DefaultLocation  = "N/A"
	DefaultStatus    = "Info"
	DefaultSentiment = "Neutral"
)

// ExtractionArgs are the arguments of a structured call. Any field may be nil.
type ExtractionArgs struct {
	Category  *string `json:"category,omitempty"`
	Item      *string `json:"item,omitempty"`
	Quantity  *int    `json:"quantity,omitempty"`
	Location  *string `json:"location,omitempty"`
	Status    *string `json:"status,omitempty"`
	Sentiment *string `json:"sentiment,omitempty"`
}

// ParseExtractionArgs converts the untyped argument map returned by the
// model. Values of an unusable type are treated as missing.
func ParseExtractionArgs(raw map[string]any) *ExtractionArgs {
	return &ExtractionArgs{
		Category:  stringArg(raw, "category"),
		Item:      stringArg(raw, "item"),
		Quantity:  intArg(raw, "quantity"),
		Location:  stringArg(raw, "location"),
		Status:    stringArg(raw, "status"),
		Sentiment: stringArg(raw, "sentiment"),
	}
}

func stringArg(raw map[string]any, key string) *string {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		return &t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(t)
		return &s
	case bool:
		s := strconv.FormatBool(t)
		return &s
	}
	return nil
}

func intArg(raw map[string]any, key string) *int {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int32:
		n = int(t)
	case int64:
		n = int(t)
	case float32:
		n = int(math.Round(float64(t)))
	case float64:
		n = int(math.Round(t))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		n = int(math.Round(f))
	default:
		return nil
	}
	return &n
}

// ExtractionRecord is one row of the material log.
type ExtractionRecord struct {
	Sender    string
	Category  string
	Item      string
	Quantity  int
	Location  string
	Status    string
	Sentiment string
	RawText   string
	Timestamp time.Time
}

// NewExtractionRecord fills the record from args, substituting placeholders
// for missing fields.
func NewExtractionRecord(sender, rawText string, args *ExtractionArgs, at time.Time) ExtractionRecord {
	if args == nil {
		args = &ExtractionArgs{}
	}
	rec := ExtractionRecord{
		Sender:    sender,
		Category:  orDefault(args.Category, DefaultCategory),
		Item:      orDefault(args.Item, DefaultItem),
		Quantity:  DefaultQuantity,
		Location:  orDefault(args.Location, DefaultLocation),
		Status:    orDefault(args.Status, DefaultStatus),
		Sentiment: orDefault(args.Sentiment, DefaultSentiment),
		RawText:   rawText,
		Timestamp: at,
	}
	if args.Quantity != nil {
		rec.Quantity = *args.Quantity
	}
	return rec
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// RowColumns names the sheet columns in order.
var RowColumns = []string{
	"sender", "category", "item", "quantity", "location",
	"status", "sentiment", "raw_text", "timestamp",
}

// Row returns the record in sheet column order.
func (r ExtractionRecord) Row() []interface{} {
	return []interface{}{
		r.Sender,
		r.Category,
		r.Item,
		r.Quantity,
		r.Location,
		r.Status,
		r.Sentiment,
		r.RawText,
		r.Timestamp.Format(TimestampLayout),
	}
}
