package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkowalski/wardrobe-api/internal/model"
	"github.com/dkowalski/wardrobe-api/internal/queue"
	"github.com/dkowalski/wardrobe-api/internal/repository"
	"github.com/dkowalski/wardrobe-api/internal/service"
)

// ItemHandler serves the clothing item CRUD endpoints. Every operation is
// scoped to the authenticated owner; a foreign item id behaves exactly
// like a missing one. Events may be nil, in which case mutations simply
// skip publishing.
type ItemHandler struct {
	Items  *repository.ItemRepo
	Events service.ClosetEventPublisher
}

func NewItemHandler(items *repository.ItemRepo, events service.ClosetEventPublisher) *ItemHandler {
	if items == nil {
		panic("nil repository passed to NewItemHandler")
	}
	return &ItemHandler{Items: items, Events: events}
}

type itemReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Brand    string `json:"brand"`
	ImageURL string `json:"image_url"`
}

// validate trims the request in place and returns the parsed category, or
// a user-correctable message when a required field is missing or the
// category is outside the closed set.
func (r *itemReq) validate() (model.Category, string) {
	r.Name = strings.TrimSpace(r.Name)
	r.Color = strings.TrimSpace(r.Color)
	r.Brand = strings.TrimSpace(r.Brand)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	if r.Name == "" || r.Category == "" || r.Color == "" {
		return "", "name, category and color are required"
	}
	cat, ok := model.ParseCategory(r.Category)
	if !ok {
		return "", "unknown category"
	}
	return cat, ""
}

// CreateItem handles POST /v1/items.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cat, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	item := &model.ClothingItem{
		OwnerID:  ownerID,
		Name:     req.Name,
		Category: cat,
		Color:    req.Color,
		Brand:    req.Brand,
		ImageURL: req.ImageURL,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Items.Create(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create item"})
	}
	h.publish(c, ownerID, item.ID, queue.ActionCreated)
	return c.JSON(http.StatusCreated, item)
}

// ListItems handles GET /v1/items with an optional ?category= filter.
func (h *ItemHandler) ListItems(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var category model.Category
	if raw := c.QueryParam("category"); raw != "" {
		cat, ok := model.ParseCategory(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
		}
		category = cat
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Items.ListByOwner(ctx, ownerID, category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetItem handles GET /v1/items/:id.
func (h *ItemHandler) GetItem(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	item, err := h.Items.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /v1/items/:id and rewrites every mutable field.
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cat, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	item, err := h.Items.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	item.Name = req.Name
	item.Category = cat
	item.Color = req.Color
	item.Brand = req.Brand
	item.ImageURL = req.ImageURL
	if err := h.Items.Update(ctx, &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Items.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.publish(c, ownerID, id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, updated)
}

// DeleteItem handles DELETE /v1/items/:id.
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Items.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.publish(c, ownerID, id, queue.ActionDeleted)
	return c.NoContent(http.StatusNoContent)
}

// publish emits a closet.changed event after a successful mutation. Failures
// are already logged by the publisher and never fail the request.
func (h *ItemHandler) publish(c echo.Context, ownerID, itemID uint64, action string) {
	if h.Events == nil {
		return
	}
	_ = h.Events.PublishClosetChanged(c.Request().Context(), queue.ClosetChangedEvent{
		UserID:     ownerID,
		ItemID:     itemID,
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
