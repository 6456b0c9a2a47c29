// internal/store/store.go
package store

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers map it to
// the appropriate API error for their endpoint.
var ErrNotFound = errors.New("store: not found")

// Schema statements, applied at startup. Idempotent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS financial_profiles (
	user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	monthly_income DOUBLE PRECISION NOT NULL DEFAULT 0,
	credit_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	existing_debt DOUBLE PRECISION NOT NULL DEFAULT 0,
	savings DOUBLE PRECISION NOT NULL DEFAULT 0,
	monthly_debt_payment DOUBLE PRECISION NOT NULL DEFAULT 0,
	credit_utilization DOUBLE PRECISION NOT NULL DEFAULT 0,
	employment_years DOUBLE PRECISION NOT NULL DEFAULT 0,
	existing_loans DOUBLE PRECISION NOT NULL DEFAULT 0,
	credit_history_years DOUBLE PRECISION NOT NULL DEFAULT 0,
	desired_loan_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS assessment_history (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessment_history_user_created
	ON assessment_history (user_id, created_at DESC);
`
