package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jose00521/Raffle-sub002/internal/model"
	"github.com/Jose00521/Raffle-sub002/internal/service"
	"github.com/Jose00521/Raffle-sub002/pkg/database"
)

// PoolInterface defines the database operations needed by repositories.
// This allows for easier testing with mocks.
type PoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CampaignRepository provides data access for campaigns using pgx.
type CampaignRepository struct {
	pool PoolInterface
}

// NewCampaignRepository creates a new CampaignRepository with the given pool.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// NewCampaignRepositoryWithPool creates a new CampaignRepository with a custom
// pool interface. This is primarily used for testing.
func NewCampaignRepositoryWithPool(pool PoolInterface) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Insert persists a new campaign inside the creation transaction and fills
// in its generated id and creation time.
// Returns service.ErrCampaignExists on a campaign_code collision.
func (r *CampaignRepository) Insert(ctx context.Context, tx database.TxQuerier, c *model.Campaign) error {
	query := `INSERT INTO campaigns (campaign_code, creator_id, title, total_numbers, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query,
		c.CampaignCode, c.CreatorID, c.Title, c.TotalNumbers, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return service.ErrCampaignExists
		}
		return fmt.Errorf("insert campaign %s: %w", c.CampaignCode, err)
	}
	return nil
}

// GetByCode retrieves a committed campaign by its public code.
// Returns nil, nil if the campaign is not found (service layer handles this).
func (r *CampaignRepository) GetByCode(ctx context.Context, code string) (*model.Campaign, error) {
	query := `SELECT id, campaign_code, creator_id, title, total_numbers, status, created_at
		FROM campaigns WHERE campaign_code = $1`

	var c model.Campaign
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&c.ID,
		&c.CampaignCode,
		&c.CreatorID,
		&c.Title,
		&c.TotalNumbers,
		&c.Status,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get campaign by code %s: %w", code, err)
	}
	return &c, nil
}
