package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dkowalski/wardrobe-api/internal/model"
)

func itemRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "owner_id", "name", "category", "color", "brand", "image_url", "created_at", "updated_at"}).
		AddRow(3, 1, "Blue Oxford", "SHIRT", "blue", "Uniqlo", nil, now, now)
}

func TestItemRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO clothing_items").
		WithArgs(uint64(1), "Blue Oxford", "SHIRT", "blue", "Uniqlo", nil).
		WillReturnResult(sqlmock.NewResult(3, 1))

	repo := NewItemRepo(db)
	item := &model.ClothingItem{
		OwnerID:  1,
		Name:     "Blue Oxford",
		Category: model.CategoryShirt,
		Color:    "blue",
		Brand:    "Uniqlo",
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID != 3 {
		t.Errorf("Create id: got %d, want 3", item.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestItemRepo_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM clothing_items WHERE owner_id=\\? ORDER BY").
		WithArgs(uint64(1)).
		WillReturnRows(itemRows(t))

	repo := NewItemRepo(db)
	items, err := repo.ListByOwner(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Blue Oxford" || items[0].Brand != "Uniqlo" || items[0].ImageURL != "" {
		t.Errorf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestItemRepo_ListByOwner_CategoryFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM clothing_items WHERE owner_id=\\? AND category=\\?").
		WithArgs(uint64(1), "SHIRT").
		WillReturnRows(itemRows(t))

	repo := NewItemRepo(db)
	items, err := repo.ListByOwner(context.Background(), 1, model.CategoryShirt)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want 1", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestItemRepo_GetByIDAndOwner_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// A foreign owner's item produces no row, which must read the same as
	// a missing item.
	mock.ExpectQuery("SELECT (.+) FROM clothing_items WHERE id=\\? AND owner_id=\\?").
		WithArgs(uint64(3), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "category", "color", "brand", "image_url", "created_at", "updated_at"}))

	repo := NewItemRepo(db)
	_, err = repo.GetByIDAndOwner(context.Background(), 3, 2)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("GetByIDAndOwner: got %v, want ErrItemNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestItemRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM clothing_items").
		WithArgs(uint64(3), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewItemRepo(db)
	if err := repo.Delete(context.Background(), 3, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestItemRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM clothing_items").
		WithArgs(uint64(9), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewItemRepo(db)
	if err := repo.Delete(context.Background(), 9, 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Delete: got %v, want ErrItemNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
