package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
)

type SeasonsRepo struct {
	db *sql.DB
}

func NewSeasonsRepo(db *sql.DB) *SeasonsRepo {
	return &SeasonsRepo{db: db}
}

// SaveSeason inserts or updates a season record.
func (r *SeasonsRepo) SaveSeason(ctx context.Context, season core.Season) error {
	now := time.Now().UTC()
	if season.CreatedAt.IsZero() {
		season.CreatedAt = now
	}

	query := `INSERT INTO seasons (id, phase, farmer_type, current_crop, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			phase = excluded.phase,
			farmer_type = excluded.farmer_type,
			current_crop = excluded.current_crop,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		season.ID, string(season.Phase), string(season.FarmerType), season.CurrentCrop, season.CreatedAt, now)
	if err != nil {
		return fmt.Errorf("failed to save season: %w", err)
	}
	return nil
}

func (r *SeasonsRepo) GetSeason(ctx context.Context, id string) (core.Season, error) {
	query := `SELECT id, phase, farmer_type, current_crop, created_at, updated_at FROM seasons WHERE id = ?`

	var (
		season              core.Season
		phase, farmerType   string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&season.ID, &phase, &farmerType, &season.CurrentCrop, &season.CreatedAt, &season.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Season{}, core.ErrSeasonNotFound
	}
	if err != nil {
		return core.Season{}, fmt.Errorf("failed to get season: %w", err)
	}

	season.Phase = core.Phase(phase)
	season.FarmerType = core.ParseFarmerType(farmerType)
	return season, nil
}
