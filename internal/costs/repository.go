package costs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SavedEstimateRepository records estimates handed to patients so a
// concierge can revisit a quote later.
type SavedEstimateRepository interface {
	Save(ctx context.Context, est *Estimate) error
	Recent(ctx context.Context, limit int) ([]Estimate, error)
}

// PgxPool is the slice of pgxpool.Pool the repository needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores estimates in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("costs: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Save(ctx context.Context, est *Estimate) error {
	tiers, err := json.Marshal(est.Tiers)
	if err != nil {
		return fmt.Errorf("costs: encoding tiers: %w", err)
	}
	query := `
		INSERT INTO saved_estimates (id, procedure, country, currency, cost_low, cost_high, facilities, tiers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.pool.Exec(ctx, query,
		est.ID,
		est.Procedure,
		est.Country,
		est.Currency,
		est.Low,
		est.High,
		est.Facilities,
		tiers,
		est.CreatedAt,
	); err != nil {
		return fmt.Errorf("costs: insert failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]Estimate, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, procedure, country, currency, cost_low, cost_high, facilities, tiers, created_at
		FROM saved_estimates
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("costs: select failed: %w", err)
	}
	defer rows.Close()

	var out []Estimate
	for rows.Next() {
		var (
			est   Estimate
			tiers []byte
		)
		if err := rows.Scan(
			&est.ID,
			&est.Procedure,
			&est.Country,
			&est.Currency,
			&est.Low,
			&est.High,
			&est.Facilities,
			&tiers,
			&est.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("costs: scan failed: %w", err)
		}
		if len(tiers) > 0 {
			if err := json.Unmarshal(tiers, &est.Tiers); err != nil {
				return nil, fmt.Errorf("costs: decoding tiers of %s: %w", est.ID, err)
			}
		}
		out = append(out, est)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("costs: rows failed: %w", err)
	}
	return out, nil
}

// InMemoryRepository keeps saved estimates in process memory. Used in tests
// and when no database is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Estimate
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Save(_ context.Context, est *Estimate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *est)
	return nil
}

func (r *InMemoryRepository) Recent(_ context.Context, limit int) ([]Estimate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	out := make([]Estimate, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}
