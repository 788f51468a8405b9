package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"authd/internal/common"
	"authd/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	qFindByIdentity = `(?s)^SELECT\s+id,\s*login,\s*email,\s*password,\s*is_public,\s*COALESCE\(phone,\s*''\),\s*COALESCE\(image,\s*''\),\s*token_number,\s*update_token\s+FROM\s+users\s+WHERE\s+login\s*=\s*\$1\s+OR\s+email\s*=\s*\$2\s+OR\s+phone\s*=\s*\$3\s+LIMIT\s+1\s*$`
	qCreate         = `(?s)^INSERT\s+INTO\s+users\s*\(login,\s*email,\s*password,\s*is_public,\s*phone,\s*image\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*token_number,\s*update_token\s*$`
	qCredentials    = `(?s)^SELECT\s+password,\s*token_number,\s*update_token\s+FROM\s+users\s+WHERE\s+login\s*=\s*\$1\s*$`
	qIncUpdate      = `(?s)^UPDATE\s+users\s+set\s+update_token\s*=\s*update_token\s*\+\s*1\s+WHERE\s+login\s*=\s*\$1\s+RETURNING\s+update_token\s*$`
	qIncNumber      = `(?s)^UPDATE\s+users\s+set\s+token_number\s*=\s*token_number\s*\+\s*1\s+WHERE\s+login\s*=\s*\$1\s+RETURNING\s+token_number\s*$`
)

func TestFindByIdentity_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "login", "email", "password", "is_public", "phone", "image", "token_number", "update_token"}).
		AddRow(int64(1), "alice", "a@x.com", "$2a$10$hash", true, "+123", "", int64(1), int64(1))
	mock.ExpectQuery(qFindByIdentity).
		WithArgs("alice", "a@x.com", "+123").
		WillReturnRows(rows)

	got, err := repo.FindByIdentity(context.Background(), "alice", "a@x.com", "+123")
	if err != nil {
		t.Fatalf("FindByIdentity error: %v", err)
	}
	if got.ID != 1 || got.Login != "alice" || got.Phone != "+123" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByIdentity_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qFindByIdentity).
		WithArgs("ghost", "g@x.com", "").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByIdentity(context.Background(), "ghost", "g@x.com", "")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByIdentity_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qFindByIdentity).
		WithArgs("alice", "a@x.com", "").
		WillReturnError(errors.New("db down"))

	_, err := repo.FindByIdentity(context.Background(), "alice", "a@x.com", "")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "token_number", "update_token"}).
		AddRow(int64(42), int64(1), int64(1))
	mock.ExpectQuery(qCreate).
		WithArgs("alice", "a@x.com", "$2a$10$hash", true, sql.NullString{String: "+123", Valid: true}, sql.NullString{}).
		WillReturnRows(rows)

	u := &models.User{Login: "alice", Email: "a@x.com", PasswordHash: "$2a$10$hash", IsPublic: true, Phone: "+123"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.TokenNumber != 1 || got.UpdateToken != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qCreate).
		WithArgs("alice", "a@x.com", "$2a$10$hash", false, sql.NullString{}, sql.NullString{}).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_login_key"})

	u := &models.User{Login: "alice", Email: "a@x.com", PasswordHash: "$2a$10$hash"}
	_, err := repo.Create(context.Background(), u)
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qCreate).
		WithArgs("alice", "a@x.com", "$2a$10$hash", false, sql.NullString{}, sql.NullString{}).
		WillReturnError(errors.New("db down"))

	u := &models.User{Login: "alice", Email: "a@x.com", PasswordHash: "$2a$10$hash"}
	_, err := repo.Create(context.Background(), u)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetCredentialsByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"password", "token_number", "update_token"}).
		AddRow("$2a$10$hash", int64(2), int64(5))
	mock.ExpectQuery(qCredentials).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetCredentialsByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetCredentialsByLogin error: %v", err)
	}
	if got.PasswordHash != "$2a$10$hash" || got.TokenNumber != 2 || got.UpdateToken != 5 {
		t.Fatalf("unexpected credentials: %+v", got)
	}
}

func TestGetCredentialsByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qCredentials).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetCredentialsByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestIncrementUpdateToken_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"update_token"}).AddRow(int64(7))
	mock.ExpectQuery(qIncUpdate).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.IncrementUpdateToken(context.Background(), "alice")
	if err != nil {
		t.Fatalf("IncrementUpdateToken error: %v", err)
	}
	if got != 7 {
		t.Fatalf("unexpected value: %d", got)
	}
}

func TestIncrementUpdateToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qIncUpdate).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.IncrementUpdateToken(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestIncrementTokenNumber_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"token_number"}).AddRow(int64(3))
	mock.ExpectQuery(qIncNumber).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.IncrementTokenNumber(context.Background(), "alice")
	if err != nil {
		t.Fatalf("IncrementTokenNumber error: %v", err)
	}
	if got != 3 {
		t.Fatalf("unexpected value: %d", got)
	}
}

func TestIncrementTokenNumber_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qIncNumber).
		WithArgs("alice").
		WillReturnError(errors.New("db down"))

	_, err := repo.IncrementTokenNumber(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
