package db

import (
	"context"
	"database/sql"
)

const schemaMigration = `
CREATE TABLE IF NOT EXISTS users (
    id varchar(64) PRIMARY KEY,
    openid varchar(128) NOT NULL UNIQUE,
    unionid varchar(128),
    nickname varchar(255),
    avatar_url text,
    session_key text,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS passwords (
    id varchar(64) PRIMARY KEY,
    user_id varchar(64) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title varchar(255) NOT NULL,
    placement varchar(255),
    password varchar(255) NOT NULL,
    expired_at timestamptz,
    note text,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS passwords_user_id_idx
ON passwords (user_id);
`

// RunMigration applies the idempotent startup schema.
func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaMigration)
	return err
}
