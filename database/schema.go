package database

import (
	"context"
	"database/sql"
	"fmt"
)

// users.business_id has no foreign key; a dangling id reads as "no business".
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		business_id BIGINT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS businesses (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		name TEXT NOT NULL,
		industry TEXT NOT NULL DEFAULT 'GENERIC',
		service_areas JSONB NOT NULL DEFAULT '[]'::jsonb,
		custom_script BOOLEAN NOT NULL DEFAULT FALSE,
		multi_location BOOLEAN NOT NULL DEFAULT FALSE,
		requires_manual_setup BOOLEAN NOT NULL DEFAULT FALSE,
		manual_setup_reason TEXT NOT NULL DEFAULT '',
		onboarding_complete BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS businesses_pending_idx ON businesses(created_at) WHERE requires_manual_setup AND NOT onboarding_complete`,
	`CREATE TABLE IF NOT EXISTS sms_opt_ins (
		id BIGSERIAL PRIMARY KEY,
		phone_number TEXT NULL,
		source_ip TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema ensure: %w", err)
		}
	}
	return nil
}
