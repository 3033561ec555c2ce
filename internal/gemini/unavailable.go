package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

// ErrUnavailable is returned while the bot runs without a model client.
var ErrUnavailable = errors.New("gemini client unavailable")

// Unavailable stands in for a client that could not be created.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Generate(context.Context, string) (*models.ModelResponse, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}
