package claim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository is the Postgres-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the cases table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS cases (
			id                  text PRIMARY KEY,
			jurisdiction        text NOT NULL,
			lease_end_date      date NOT NULL,
			deposit_amount      numeric(12,2) NOT NULL,
			amount_returned     numeric(12,2) NOT NULL,
			itemization         text NOT NULL,
			itemization_date    date,
			receipts_included   text NOT NULL,
			deduction_character text NOT NULL,
			landlord_email      text NOT NULL,
			tenant_name         text NOT NULL,
			tenant_address      text NOT NULL,
			status              text NOT NULL DEFAULT 'pending',
			created_at          timestamptz NOT NULL
		)
	`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("claim: ensure schema: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (Record, error) {
	const query = `
		SELECT id, jurisdiction, lease_end_date, deposit_amount::text,
		       amount_returned::text, itemization, itemization_date,
		       receipts_included, deduction_character, landlord_email,
		       tenant_name, tenant_address, status, created_at
		FROM cases
		WHERE id = $1
	`

	var (
		rec             Record
		depositText     string
		returnedText    string
		itemizationDate *time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Jurisdiction, &rec.LeaseEndDate, &depositText,
		&returnedText, &rec.Itemization, &itemizationDate,
		&rec.ReceiptsIncluded, &rec.DeductionCharacter, &rec.LandlordEmail,
		&rec.TenantName, &rec.TenantAddress, &rec.Status, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("claim: get case: %w", err)
	}

	rec.ItemizationDate = itemizationDate
	if rec.DepositAmount, err = decimal.NewFromString(depositText); err != nil {
		return Record{}, fmt.Errorf("claim: parse deposit amount: %w", err)
	}
	if rec.AmountReturned, err = decimal.NewFromString(returnedText); err != nil {
		return Record{}, fmt.Errorf("claim: parse amount returned: %w", err)
	}
	return rec, nil
}

// Put upserts a record. Intake columns never change after creation; the
// conflict branch only advances status, keeping the transition monotonic
// under concurrent writers.
func (r *Repository) Put(ctx context.Context, rec Record) error {
	const query = `
		INSERT INTO cases (
			id, jurisdiction, lease_end_date, deposit_amount, amount_returned,
			itemization, itemization_date, receipts_included,
			deduction_character, landlord_email, tenant_name, tenant_address,
			status, created_at
		)
		VALUES ($1,$2,$3,$4::numeric,$5::numeric,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status
		WHERE cases.status <> 'paid'
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Jurisdiction, rec.LeaseEndDate,
		rec.DepositAmount.String(), rec.AmountReturned.String(),
		rec.Itemization, rec.ItemizationDate, rec.ReceiptsIncluded,
		rec.DeductionCharacter, rec.LandlordEmail, rec.TenantName,
		rec.TenantAddress, rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("claim: put case: %w", err)
	}
	return nil
}
