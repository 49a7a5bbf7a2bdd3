package hospitals

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the slice of pgxpool.Pool the repository needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores the catalog in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("hospitals: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const hospitalColumns = `
	id, name, city, country, location, description,
	specialties, procedures, image_url, jci_accredited, accreditation_info,
	price_range, estimated_cost_low, estimated_cost_high, rating,
	contact_email, website_url, is_verified, updated_at
`

func (r *PostgresRepository) Search(ctx context.Context, filter SearchFilter) ([]Hospital, error) {
	var (
		conds = []string{"jci_accredited = TRUE"}
		args  []any
	)
	if !wildcard(filter.Country) {
		args = append(args, "%"+filter.Country+"%")
		conds = append(conds, "country ILIKE $"+strconv.Itoa(len(args)))
	}
	if !wildcard(filter.PriceRange) {
		args = append(args, filter.PriceRange)
		conds = append(conds, "price_range = $"+strconv.Itoa(len(args)))
	}
	if !wildcard(filter.Procedure) {
		args = append(args, "%"+filter.Procedure+"%")
		p := strconv.Itoa(len(args))
		conds = append(conds, fmt.Sprintf(
			"(EXISTS (SELECT 1 FROM unnest(procedures) p WHERE p ILIKE $%s)"+
				" OR EXISTS (SELECT 1 FROM unnest(specialties) s WHERE s ILIKE $%s))", p, p))
	}

	query := "SELECT " + hospitalColumns + " FROM hospitals WHERE " +
		strings.Join(conds, " AND ") + " ORDER BY rating DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("hospitals: select failed: %w", err)
	}
	defer rows.Close()

	var out []Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.City,
			&h.Country,
			&h.Location,
			&h.Description,
			&h.Specialties,
			&h.Procedures,
			&h.ImageURL,
			&h.JCIAccredited,
			&h.AccreditationInfo,
			&h.PriceRange,
			&h.EstimatedCostLow,
			&h.EstimatedCostHigh,
			&h.Rating,
			&h.ContactEmail,
			&h.WebsiteURL,
			&h.Verified,
			&h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("hospitals: scan failed: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hospitals: rows failed: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, items []Hospital) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO hospitals (
			id, name, city, country, location, description,
			specialties, procedures, image_url, jci_accredited, accreditation_info,
			price_range, estimated_cost_low, estimated_cost_high, rating,
			contact_email, website_url, is_verified, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			specialties = EXCLUDED.specialties,
			procedures = EXCLUDED.procedures,
			image_url = EXCLUDED.image_url,
			jci_accredited = EXCLUDED.jci_accredited,
			accreditation_info = EXCLUDED.accreditation_info,
			price_range = EXCLUDED.price_range,
			estimated_cost_low = EXCLUDED.estimated_cost_low,
			estimated_cost_high = EXCLUDED.estimated_cost_high,
			rating = EXCLUDED.rating,
			contact_email = EXCLUDED.contact_email,
			website_url = EXCLUDED.website_url,
			is_verified = EXCLUDED.is_verified,
			updated_at = now()
	`
	for _, h := range items {
		if _, err := r.pool.Exec(ctx, query,
			h.ID,
			h.Name,
			h.City,
			h.Country,
			h.Location,
			h.Description,
			h.Specialties,
			h.Procedures,
			h.ImageURL,
			h.JCIAccredited,
			h.AccreditationInfo,
			h.PriceRange,
			h.EstimatedCostLow,
			h.EstimatedCostHigh,
			h.Rating,
			h.ContactEmail,
			h.WebsiteURL,
			h.Verified,
		); err != nil {
			return fmt.Errorf("hospitals: upsert of %s failed: %w", h.ID, err)
		}
	}
	return nil
}
