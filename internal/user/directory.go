package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/chenyu445/toolbox-backend/internal/db"
)

// Directory is the user lookup/creation contract. Absent users are
// reported as (nil, nil), not as errors.
type Directory interface {
	FindByOpenID(ctx context.Context, openID string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u User) error
}

// PostgresDirectory is the canonical Directory backed by the users
// table.
type PostgresDirectory struct {
	db *db.DB
}

func NewPostgresDirectory(db *db.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const userColumns = `
	id,
	openid,
	COALESCE(unionid, ''),
	COALESCE(nickname, ''),
	COALESCE(avatar_url, ''),
	COALESCE(session_key, ''),
	created_at,
	updated_at
`

func (d *PostgresDirectory) FindByOpenID(ctx context.Context, openID string) (*User, error) {
	return d.findOne(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE openid = $1
	`, openID)
}

func (d *PostgresDirectory) FindByID(ctx context.Context, id string) (*User, error) {
	return d.findOne(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
}

func (d *PostgresDirectory) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := d.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.OpenID,
		&u.UnionID,
		&u.Nickname,
		&u.AvatarURL,
		&u.SessionKey,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (d *PostgresDirectory) Create(ctx context.Context, u User) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO users (id, openid, unionid, nickname, avatar_url, session_key)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`,
		u.ID,
		u.OpenID,
		u.UnionID,
		u.Nickname,
		u.AvatarURL,
		u.SessionKey,
	)
	return err
}
