package password

import (
	"context"
	"database/sql"
	"errors"

	"github.com/chenyu445/toolbox-backend/internal/db"
)

// Repository is ownership-scoped storage for password entries. Every
// query filters by the owning user, so another user's rows are
// indistinguishable from absent ones.
type Repository interface {
	List(ctx context.Context, userID string, page, pageSize int) ([]Entry, int, error)
	GetByID(ctx context.Context, id, userID string) (*Entry, error)
	Create(ctx context.Context, e Entry) error
	Update(ctx context.Context, id, userID string, upd Update) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type PostgresRepository struct {
	db *db.DB
}

func NewPostgresRepository(db *db.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `
	id,
	user_id,
	title,
	COALESCE(placement, ''),
	password,
	expired_at,
	COALESCE(note, ''),
	created_at,
	updated_at
`

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Title,
		&e.Placement,
		&e.Password,
		&e.ExpiredAt,
		&e.Note,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *PostgresRepository) List(
	ctx context.Context,
	userID string,
	page, pageSize int,
) ([]Entry, int, error) {

	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM passwords WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM passwords
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*Entry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM passwords
		WHERE id = $1
		  AND user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO passwords (id, user_id, title, placement, password, expired_at, note)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''))
	`,
		e.ID,
		e.UserID,
		e.Title,
		e.Placement,
		e.Password,
		e.ExpiredAt,
		e.Note,
	)
	return err
}

// Update merges the provided fields into the stored row. Reports false
// when the row does not exist or is not owned by userID.
func (r *PostgresRepository) Update(
	ctx context.Context,
	id, userID string,
	upd Update,
) (bool, error) {

	res, err := r.db.ExecContext(ctx, `
		UPDATE passwords
		SET title = COALESCE($3, title),
		    placement = COALESCE($4, placement),
		    password = COALESCE($5, password),
		    expired_at = COALESCE($6, expired_at),
		    note = COALESCE($7, note),
		    updated_at = NOW()
		WHERE id = $1
		  AND user_id = $2
	`,
		id,
		userID,
		upd.Title,
		upd.Placement,
		upd.Password,
		upd.ExpiredAt,
		upd.Note,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM passwords
		WHERE id = $1
		  AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
