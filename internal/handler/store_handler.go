package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/authlend-api/internal/dto"
	"github.com/anyulbade/authlend-api/internal/model"
)

type StoreService interface {
	List(ctx context.Context, name, city string, limit, offset int) ([]model.Store, int, error)
	Create(ctx context.Context, st *model.Store) error
	Update(ctx context.Context, st *model.Store) error
	Delete(ctx context.Context, id int64) error
}

type StoreHandler struct {
	svc StoreService
}

func NewStoreHandler(svc StoreService) *StoreHandler {
	return &StoreHandler{svc: svc}
}

func (h *StoreHandler) List(c *gin.Context) {
	p := dto.ParsePagination(c)
	stores, total, err := h.svc.List(c.Request.Context(),
		strings.TrimSpace(c.Query("name")), strings.TrimSpace(c.Query("city")), p.PerPage, p.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Stores retrieved successfully.",
		dto.NewPage(p, total, dto.MapSlice(stores, dto.NewStoreResponse)))
}

func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.StoreRequest
	if !bindJSON(c, &req) {
		return
	}
	st := storeFromRequest(0, req)
	if err := h.svc.Create(c.Request.Context(), st); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Store created successfully.", dto.NewStoreResponse(*st))
}

func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.StoreRequest
	if !bindJSON(c, &req) {
		return
	}
	st := storeFromRequest(id, req)
	if err := h.svc.Update(c.Request.Context(), st); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Store updated successfully.", dto.NewStoreResponse(*st))
}

func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Store deleted successfully.", gin.H{"id": id})
}

func storeFromRequest(id int64, req dto.StoreRequest) *model.Store {
	return &model.Store{
		ID:   id,
		Name: strings.TrimSpace(req.Name),
		Address: &model.StoreAddress{
			Street:  strings.TrimSpace(req.Address.Street),
			City:    strings.TrimSpace(req.Address.City),
			State:   strings.TrimSpace(req.Address.State),
			ZipCode: strings.TrimSpace(req.Address.ZipCode),
		},
	}
}
