package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/dbx"
	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE Postgres reports for a unique index hit.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.PasswordHash).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("db error: %w", common.ErrDuplicateUsername)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, profile_picture_url, created_at, updated_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	var url sql.NullString
	err := r.db.QueryRowContext(ctx, query, userName).Scan(
		&user.ID, &user.UserName, &user.PasswordHash, &url, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ProfilePictureURL = nullableString(url)
	return user, nil
}

// GetUserByID projects out password_hash.
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, username, profile_picture_url, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	return r.scanPublic(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateProfilePicture(ctx context.Context, id string, url string) (*models.User, error) {
	query :=
		`UPDATE users SET profile_picture_url = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, username, profile_picture_url, created_at, updated_at
		 `

	return r.scanPublic(r.db.QueryRowContext(ctx, query, id, url))
}

func (r *PostgresRepository) scanPublic(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var url sql.NullString

	err := row.Scan(&user.ID, &user.UserName, &url, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ProfilePictureURL = nullableString(url)
	return user, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
