package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkowalski/wardrobe-api/internal/model"
)

// ItemRepo persists clothing items. Every query is scoped by owner_id so a
// caller can only ever see or touch their own wardrobe; the scoping happens
// in SQL, not in handler code.
type ItemRepo struct{ DB *sql.DB }

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{DB: db} }

const itemColumns = "id,owner_id,name,category,color,brand,image_url,created_at,updated_at"

// Create inserts the item and fills in its generated ID.
func (r *ItemRepo) Create(ctx context.Context, it *model.ClothingItem) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clothing_items (owner_id, name, category, color, brand, image_url) VALUES (?,?,?,?,?,?)",
		it.OwnerID, it.Name, string(it.Category), it.Color, nullable(it.Brand), nullable(it.ImageURL))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// ListByOwner returns the owner's items, newest first. An empty category
// means no filter.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID uint64, category model.Category) ([]model.ClothingItem, error) {
	query := "SELECT " + itemColumns + " FROM clothing_items WHERE owner_id=?"
	args := []any{ownerID}
	if category != "" {
		query += " AND category=?"
		args = append(args, string(category))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ClothingItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByIDAndOwner fetches one item, returning ErrItemNotFound both for a
// missing id and for an item that belongs to someone else.
func (r *ItemRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (model.ClothingItem, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM clothing_items WHERE id=? AND owner_id=? LIMIT 1",
		id, ownerID)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ClothingItem{}, ErrItemNotFound
	}
	return it, err
}

// Update rewrites every mutable column of an owned item.
func (r *ItemRepo) Update(ctx context.Context, it *model.ClothingItem) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE clothing_items SET name=?, category=?, color=?, brand=?, image_url=? WHERE id=? AND owner_id=?",
		it.Name, string(it.Category), it.Color, nullable(it.Brand), nullable(it.ImageURL), it.ID, it.OwnerID)
	return err
}

// Delete removes an owned item; ErrItemNotFound when nothing matched.
func (r *ItemRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM clothing_items WHERE id=? AND owner_id=?",
		id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanItem(s scanner) (model.ClothingItem, error) {
	var (
		it       model.ClothingItem
		category string
		brand    sql.NullString
		imageURL sql.NullString
	)
	err := s.Scan(&it.ID, &it.OwnerID, &it.Name, &category, &it.Color, &brand, &imageURL, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return model.ClothingItem{}, err
	}
	it.Category = model.Category(category)
	it.Brand = brand.String
	it.ImageURL = imageURL.String
	return it, nil
}

// nullable maps the empty string onto SQL NULL for optional columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
