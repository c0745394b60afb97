package core

import (
	"context"
	"errors"
	"time"
)

var ErrSeasonNotFound = errors.New("season not found")

// Season is the durable configuration of one advisory session.
type Season struct {
	ID          string     `json:"id"`
	Phase       Phase      `json:"phase"`
	FarmerType  FarmerType `json:"farmer_type"`
	CurrentCrop string     `json:"current_crop,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ConversationRepository interface {
	AppendEntry(ctx context.Context, sessionID string, entry Entry) error
	ListEntries(ctx context.Context, sessionID string, limit int) ([]Entry, error)
	DeleteEntries(ctx context.Context, sessionID string) error
}

type SeasonRepository interface {
	SaveSeason(ctx context.Context, season Season) error
	GetSeason(ctx context.Context, id string) (Season, error)
}
