package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("account not found")

// Repository persists accounts.
type Repository interface {
	Create(ctx context.Context, account Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByPhone(ctx context.Context, phone string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	MarkPaid(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account.
func (r *PostgresRepository) Create(ctx context.Context, a Account) error {
	accountID, err := uuid.Parse(a.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts
        (id, name, phone, email, role, county, status, password_hash, pin_hash, payment_due, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		accountID, a.Name, a.Phone, a.Email, a.Role, a.County, a.Status,
		a.PasswordHash, a.PINHash, a.PaymentDue, a.CreatedAt.UTC())
	return err
}

// FindByEmail fetches an account by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectColumns+` WHERE email = $1`, email))
}

// FindByPhone fetches an account by phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (Account, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectColumns+` WHERE phone = $1`, phone))
}

// FindByID fetches an account by its identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, accountID))
}

// MarkPaid clears the onboarding payment flag and activates the account.
func (r *PostgresRepository) MarkPaid(ctx context.Context, id string) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx,
		`UPDATE accounts SET payment_due = FALSE, status = $1 WHERE id = $2`, StatusActive, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectColumns = `SELECT id, name, phone, email, role, county, status,
    password_hash, pin_hash, payment_due, created_at FROM accounts`

func (r *PostgresRepository) scanOne(row pgx.Row) (Account, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		a         Account
	)
	err := row.Scan(&id, &a.Name, &a.Phone, &a.Email, &a.Role, &a.County, &a.Status,
		&a.PasswordHash, &a.PINHash, &a.PaymentDue, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	a.ID = id.String()
	a.CreatedAt = createdAt.UTC()
	return a, nil
}
