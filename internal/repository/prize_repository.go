package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jose00521/Raffle-sub002/internal/allocation"
	"github.com/Jose00521/Raffle-sub002/internal/model"
	"github.com/Jose00521/Raffle-sub002/pkg/database"
)

// QueryPoolInterface defines the database operations needed by list-style
// repositories.
type QueryPoolInterface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PrizeRepository provides data access for instant-prize assignments.
type PrizeRepository struct {
	pool QueryPoolInterface
}

// NewPrizeRepository creates a new PrizeRepository with the given pool.
func NewPrizeRepository(pool *pgxpool.Pool) *PrizeRepository {
	return &PrizeRepository{pool: pool}
}

// NewPrizeRepositoryWithPool creates a new PrizeRepository with a custom pool
// interface. This is primarily used for testing.
func NewPrizeRepositoryWithPool(pool QueryPoolInterface) *PrizeRepository {
	return &PrizeRepository{pool: pool}
}

// InsertAll persists the full assignment set of a campaign in one batch
// inside the creation transaction. A unique violation on (campaign_id,
// number) means the allocation audit was defeated somehow, so it surfaces
// as allocation.ErrDuplicateAssignment and rolls the transaction back.
func (r *PrizeRepository) InsertAll(ctx context.Context, tx database.TxQuerier, campaignID int64, prizes []model.InstantPrize) error {
	if len(prizes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range prizes {
		batch.Queue(
			`INSERT INTO instant_prizes (campaign_id, category_id, prize_type, number, value, item_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			campaignID, p.CategoryID, p.Type, p.Number, p.Value, p.ItemID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := range prizes {
		if _, err := br.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("insert prize %d for campaign %d: %w",
					i, campaignID, allocation.ErrDuplicateAssignment)
			}
			return fmt.Errorf("insert prize %d for campaign %d: %w", i, campaignID, err)
		}
	}
	return nil
}

// ListByCampaign returns a campaign's committed assignments, joined with
// their item references, ordered by category then number.
// On success, returns an empty slice (not nil) when no prizes exist.
func (r *PrizeRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]model.InstantPrize, error) {
	query := `SELECT p.id, p.category_id, p.prize_type, p.number, p.value, p.item_id,
			COALESCE(i.item_code, ''), COALESCE(i.name, '')
		FROM instant_prizes p
		LEFT JOIN prize_items i ON i.id = p.item_id
		WHERE p.campaign_id = $1
		ORDER BY p.category_id, p.number`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list prizes for campaign %d: %w", campaignID, err)
	}
	defer rows.Close()

	prizes := []model.InstantPrize{}
	for rows.Next() {
		p := model.InstantPrize{CampaignID: campaignID}
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Type, &p.Number, &p.Value,
			&p.ItemID, &p.ItemCode, &p.ItemName); err != nil {
			return nil, fmt.Errorf("scan instant prize: %w", err)
		}
		prizes = append(prizes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instant prize rows: %w", err)
	}
	return prizes, nil
}
