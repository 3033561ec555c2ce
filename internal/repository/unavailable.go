package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

// ErrStoreUnavailable is returned while the bot runs without a store.
var ErrStoreUnavailable = errors.New("log store unavailable")

// Unavailable stands in for a store that failed to initialise, so
// appends fail per message instead of at startup.
type Unavailable struct {
	Reason string
}

func (u Unavailable) AppendRow(context.Context, models.ExtractionRecord) error {
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, u.Reason)
}
