package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"ringback/backend/access"
	"ringback/backend/consent"
	"ringback/backend/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store holds the Postgres queries for users, businesses and opt-ins.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

const businessColumns = `id, owner_id, name, industry, service_areas, custom_script, multi_location, requires_manual_setup, manual_setup_reason, onboarding_complete, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash, phone string) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO users(name, email, password_hash, phone) VALUES($1, $2, $3, $4) RETURNING id`,
		name, email, passwordHash, phone).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var bid sql.NullInt64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.IsAdmin, &bid, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("scan user: %w", err)
	}
	if bid.Valid {
		u.BusinessID = &bid.Int64
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	return scanUser(s.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, phone, is_admin, business_id, created_at FROM users WHERE id = $1`, id))
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(s.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, phone, is_admin, business_id, created_at FROM users WHERE email = $1`, email))
}

// Account implements access.Directory.
func (s *Store) Account(ctx context.Context, userID int64) (access.Account, error) {
	var a access.Account
	var bid sql.NullInt64
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, is_admin, business_id FROM users WHERE id = $1`, userID).Scan(&a.UserID, &a.IsAdmin, &bid)
	if errors.Is(err, sql.ErrNoRows) {
		return a, access.ErrNotFound
	}
	if err != nil {
		return a, fmt.Errorf("query account: %w", err)
	}
	if bid.Valid {
		a.BusinessID = &bid.Int64
	}
	return a, nil
}

// BusinessState implements access.Directory.
func (s *Store) BusinessState(ctx context.Context, businessID int64) (access.BusinessState, error) {
	var st access.BusinessState
	err := s.DB.QueryRowContext(ctx,
		`SELECT onboarding_complete FROM businesses WHERE id = $1`, businessID).Scan(&st.OnboardingComplete)
	if errors.Is(err, sql.ErrNoRows) {
		return st, access.ErrNotFound
	}
	if err != nil {
		return st, fmt.Errorf("query business state: %w", err)
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (models.Business, error) {
	var b models.Business
	var areas []byte
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Industry, &areas, &b.CustomScript, &b.MultiLocation,
		&b.RequiresManualSetup, &b.ManualSetupReason, &b.OnboardingComplete, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	if err != nil {
		return b, fmt.Errorf("scan business: %w", err)
	}
	b.ServiceAreas = []string{}
	if len(areas) > 0 {
		if err := json.Unmarshal(areas, &b.ServiceAreas); err != nil {
			return b, fmt.Errorf("decode service areas: %w", err)
		}
	}
	return b, nil
}

func (s *Store) BusinessByID(ctx context.Context, id int64) (models.Business, error) {
	return scanBusiness(s.DB.QueryRowContext(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id))
}

// SaveBusiness creates or replaces the owner's business and links it to the
// owner. An owner whose business_id points at a missing row gets a new one.
func (s *Store) SaveBusiness(ctx context.Context, b models.Business) (models.Business, error) {
	areas := b.ServiceAreas
	if areas == nil {
		areas = []string{}
	}
	areasJSON, err := json.Marshal(areas)
	if err != nil {
		return models.Business{}, fmt.Errorf("encode service areas: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Business{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var current sql.NullInt64
	err = tx.QueryRowContext(ctx, `SELECT business_id FROM users WHERE id = $1 FOR UPDATE`, b.OwnerID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Business{}, ErrNotFound
	}
	if err != nil {
		return models.Business{}, fmt.Errorf("lock owner: %w", err)
	}

	var saved models.Business
	updated := false
	if current.Valid {
		saved, err = scanBusiness(tx.QueryRowContext(ctx,
			`UPDATE businesses SET name = $1, industry = $2, service_areas = $3::jsonb, custom_script = $4, multi_location = $5, requires_manual_setup = $6, manual_setup_reason = $7, onboarding_complete = $8, updated_at = now() WHERE id = $9 RETURNING `+businessColumns,
			b.Name, b.Industry, string(areasJSON), b.CustomScript, b.MultiLocation, b.RequiresManualSetup, b.ManualSetupReason, b.OnboardingComplete, current.Int64))
		switch {
		case err == nil:
			updated = true
		case !errors.Is(err, ErrNotFound):
			return models.Business{}, fmt.Errorf("update business: %w", err)
		}
	}
	if !updated {
		saved, err = scanBusiness(tx.QueryRowContext(ctx,
			`INSERT INTO businesses(owner_id, name, industry, service_areas, custom_script, multi_location, requires_manual_setup, manual_setup_reason, onboarding_complete) VALUES($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9) RETURNING `+businessColumns,
			b.OwnerID, b.Name, b.Industry, string(areasJSON), b.CustomScript, b.MultiLocation, b.RequiresManualSetup, b.ManualSetupReason, b.OnboardingComplete))
		if err != nil {
			return models.Business{}, fmt.Errorf("insert business: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE users SET business_id = $1 WHERE id = $2`, saved.ID, b.OwnerID); err != nil {
			return models.Business{}, fmt.Errorf("link business: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Business{}, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

// ListBusinesses returns businesses newest first. pendingOnly limits the list
// to setups waiting for a manual review.
func (s *Store) ListBusinesses(ctx context.Context, pendingOnly bool) ([]models.Business, error) {
	q := `SELECT ` + businessColumns + ` FROM businesses`
	if pendingOnly {
		q += ` WHERE requires_manual_setup AND NOT onboarding_complete`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	list := []models.Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (s *Store) CompleteOnboarding(ctx context.Context, businessID int64) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE businesses SET onboarding_complete = TRUE, updated_at = now() WHERE id = $1`, businessID)
	if err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordOptIn implements consent.Sink.
func (s *Store) RecordOptIn(ctx context.Context, sub consent.Submission) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO sms_opt_ins(phone_number, source_ip, user_agent, created_at) VALUES($1, $2, $3, $4)`,
		sub.PhoneNumber, sub.SourceIP, sub.UserAgent, sub.ReceivedAt)
	if err != nil {
		return fmt.Errorf("insert opt-in: %w", err)
	}
	return nil
}

func (s *Store) ListOptIns(ctx context.Context) ([]models.OptIn, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, phone_number, source_ip, user_agent, created_at FROM sms_opt_ins ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list opt-ins: %w", err)
	}
	defer rows.Close()

	list := []models.OptIn{}
	for rows.Next() {
		var o models.OptIn
		var phone sql.NullString
		if err := rows.Scan(&o.ID, &phone, &o.SourceIP, &o.UserAgent, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan opt-in: %w", err)
		}
		if phone.Valid {
			o.PhoneNumber = &phone.String
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
