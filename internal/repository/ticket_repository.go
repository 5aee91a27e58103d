package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jose00521/Raffle-sub002/internal/model"
	"github.com/Jose00521/Raffle-sub002/pkg/database"
)

// TicketRepository provides data access for the ticket-status partition.
type TicketRepository struct {
	pool PoolInterface
}

// NewTicketRepository creates a new TicketRepository with the given pool.
func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// NewTicketRepositoryWithPool creates a new TicketRepository with a custom
// pool interface. This is primarily used for testing.
func NewTicketRepositoryWithPool(pool PoolInterface) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// BulkInit creates all total ticket rows for a campaign as AVAILABLE using
// the COPY protocol. Rows are generated on the fly, so a million-ticket
// campaign never materializes a million-row slice.
func (r *TicketRepository) BulkInit(ctx context.Context, tx database.TxQuerier, campaignID int64, total int) error {
	src := &ticketSource{campaignID: campaignID, total: total, idx: -1}
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"tickets"},
		[]string{"campaign_id", "number", "status"},
		src,
	)
	if err != nil {
		return fmt.Errorf("bulk init %d tickets for campaign %d: %w", total, campaignID, err)
	}
	if n != int64(total) {
		return fmt.Errorf("bulk init tickets for campaign %d: copied %d of %d rows", campaignID, n, total)
	}
	return nil
}

// CountByCampaign returns the number of ticket rows a campaign owns.
func (r *TicketRepository) CountByCampaign(ctx context.Context, campaignID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM tickets WHERE campaign_id = $1`, campaignID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tickets for campaign %d: %w", campaignID, err)
	}
	return count, nil
}

// ticketSource streams the contiguous ticket range [0, total) to CopyFrom.
type ticketSource struct {
	campaignID int64
	total      int
	idx        int
}

func (s *ticketSource) Next() bool {
	s.idx++
	return s.idx < s.total
}

func (s *ticketSource) Values() ([]any, error) {
	return []any{s.campaignID, s.idx, string(model.TicketAvailable)}, nil
}

func (s *ticketSource) Err() error {
	return nil
}
