package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkowalski/wardrobe-api/internal/utils"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The hash is generated inside Create, so only its presence is checked.
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Alice", "alice@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewUserRepo(db)
	id, err := repo.Create(context.Background(), "Alice", "  ALICE@X.COM ", "secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 7 {
		t.Errorf("Create id: got %d, want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Bob", "alice@x.com", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice@x.com' for key 'users.email'"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "Bob", "alice@x.com", "hunter2", bcrypt.MinCost)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Create: got %v, want ErrEmailExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := utils.HashPassword("secret123", bcrypt.MinCost)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(7, "Alice", "alice@x.com", hash, now, now)
	mock.ExpectQuery("SELECT id,name,email,password_hash").
		WithArgs("alice@x.com").
		WillReturnRows(rows)

	repo := NewUserRepo(db)
	u, err := repo.GetByEmail(context.Background(), " Alice@X.com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.ID != 7 || u.Email != "alice@x.com" || u.Name != "Alice" {
		t.Errorf("unexpected user: %+v", u)
	}
	if !utils.VerifyPassword(u.PasswordHash, "secret123") {
		t.Errorf("stored hash does not verify")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id,name,email,password_hash").
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetByEmail: got %v, want sql.ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
