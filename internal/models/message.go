package models

// IncomingMessage is a text message handed over by the transport.
type IncomingMessage struct {
	ChatID      int64
	MessageID   int
	SenderName  string
	Text        string
	ReplyToText string // empty when the message is not a reply
}

// ModelResponse holds exactly one of Call or Text.
type ModelResponse struct {
	Call *ExtractionArgs
	Text string
}

// IsCall reports whether the model chose the logging path.
func (r *ModelResponse) IsCall() bool {
	return r != nil && r.Call != nil
}

// DeliveryResult is the outcome of sending a reply.
type DeliveryResult int

const (
	Delivered DeliveryResult = iota
	DeliveredPlain
	DeliveryFailed
)

func (d DeliveryResult) String() string {
	switch d {
	case Delivered:
		return "delivered"
	case DeliveredPlain:
		return "delivered_plain"
	case DeliveryFailed:
		return "failed"
	}
	return "unknown"
}
