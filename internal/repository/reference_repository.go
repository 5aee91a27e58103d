package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jose00521/Raffle-sub002/internal/service"
)

// ReferencePoolInterface defines the database operations needed by the
// reference resolver.
type ReferencePoolInterface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ReferenceRepository translates externally visible opaque codes into
// internal storage identifiers. Lookups are read-only and run before the
// creation transaction begins.
type ReferenceRepository struct {
	pool ReferencePoolInterface
}

// NewReferenceRepository creates a new ReferenceRepository with the given pool.
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// NewReferenceRepositoryWithPool creates a new ReferenceRepository with a
// custom pool interface. This is primarily used for testing.
func NewReferenceRepositoryWithPool(pool ReferencePoolInterface) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// ResolveUser resolves a creator code to its internal user id.
// Returns service.ReferenceNotFoundError when the code is unknown.
func (r *ReferenceRepository) ResolveUser(ctx context.Context, code string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM users WHERE user_code = $1`, code).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &service.ReferenceNotFoundError{Kind: "creator", Codes: []string{code}}
		}
		return 0, fmt.Errorf("resolve user code %s: %w", code, err)
	}
	return id, nil
}

// ResolveItems resolves prize item codes to internal ids, preserving input
// order. If any code is unknown, it fails with a ReferenceNotFoundError
// naming every missing code instead of resolving a subset.
func (r *ReferenceRepository) ResolveItems(ctx context.Context, codes []string) ([]int64, error) {
	if len(codes) == 0 {
		return []int64{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT item_code, id FROM prize_items WHERE item_code = ANY($1)`, codes)
	if err != nil {
		return nil, fmt.Errorf("resolve item codes: %w", err)
	}
	defer rows.Close()

	found := make(map[string]int64, len(codes))
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, fmt.Errorf("scan item reference: %w", err)
		}
		found[code] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item reference rows: %w", err)
	}

	ids := make([]int64, 0, len(codes))
	var missing []string
	for _, code := range codes {
		id, ok := found[code]
		if !ok {
			missing = append(missing, code)
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, &service.ReferenceNotFoundError{Kind: "prize item", Codes: missing}
	}
	return ids, nil
}
