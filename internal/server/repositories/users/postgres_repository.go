package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"authd/internal/common"
	"authd/internal/dbx"
	"authd/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// nullIfEmpty keeps optional columns NULL so the unique constraint on phone
// only applies to accounts that actually have one.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) FindByIdentity(ctx context.Context, login, email, phone string) (*models.User, error) {
	query :=
		`SELECT id, login, email, password, is_public, COALESCE(phone, ''), COALESCE(image, ''), token_number, update_token
		 FROM users
		 WHERE login = $1 OR email = $2 OR phone = $3
		 LIMIT 1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, login, email, phone).Scan(
		&user.ID, &user.Login, &user.Email, &user.PasswordHash, &user.IsPublic,
		&user.Phone, &user.Image, &user.TokenNumber, &user.UpdateToken)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (login, email, password, is_public, phone, image)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, token_number, update_token
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Login, user.Email, user.PasswordHash, user.IsPublic,
		nullIfEmpty(user.Phone), nullIfEmpty(user.Image)).
		Scan(&user.ID, &user.TokenNumber, &user.UpdateToken)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error) {
	query :=
		`SELECT password, token_number, update_token FROM users
		 WHERE login = $1
		 `

	creds := &models.Credentials{}
	err := r.db.QueryRowContext(ctx, query, login).Scan(
		&creds.PasswordHash, &creds.TokenNumber, &creds.UpdateToken)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return creds, nil
}

func (r *PostgresRepository) IncrementUpdateToken(ctx context.Context, login string) (int64, error) {
	query :=
		`UPDATE users set update_token = update_token + 1
		 WHERE login = $1
		 RETURNING update_token
		 `

	var updateToken int64
	err := r.db.QueryRowContext(ctx, query, login).Scan(&updateToken)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return updateToken, nil
}

func (r *PostgresRepository) IncrementTokenNumber(ctx context.Context, login string) (int64, error) {
	query :=
		`UPDATE users set token_number = token_number + 1
		 WHERE login = $1
		 RETURNING token_number
		 `

	var tokenNumber int64
	err := r.db.QueryRowContext(ctx, query, login).Scan(&tokenNumber)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return tokenNumber, nil
}
