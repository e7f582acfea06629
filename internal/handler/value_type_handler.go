package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/authlend-api/internal/dto"
	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/service"
)

type ValueTypeService interface {
	List(ctx context.Context, typeName string, limit, offset int) ([]model.ValueType, int, error)
	Create(ctx context.Context, in service.ValueTypeInput) (*model.ValueType, error)
	Update(ctx context.Context, id int64, in service.ValueTypeInput) (*model.ValueType, error)
	Delete(ctx context.Context, id int64) error
}

type ValueTypeHandler struct {
	svc ValueTypeService
}

func NewValueTypeHandler(svc ValueTypeService) *ValueTypeHandler {
	return &ValueTypeHandler{svc: svc}
}

func (h *ValueTypeHandler) List(c *gin.Context) {
	p := dto.ParsePagination(c)
	types, total, err := h.svc.List(c.Request.Context(), strings.TrimSpace(c.Query("type")), p.PerPage, p.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Value types retrieved successfully.",
		dto.NewPage(p, total, dto.MapSlice(types, dto.NewValueTypeResponse)))
}

func (h *ValueTypeHandler) Create(c *gin.Context) {
	var req dto.ValueTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	vt, err := h.svc.Create(c.Request.Context(), valueTypeInput(req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Value type created successfully.", dto.NewValueTypeResponse(*vt))
}

func (h *ValueTypeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ValueTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	vt, err := h.svc.Update(c.Request.Context(), id, valueTypeInput(req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Value type updated successfully.", dto.NewValueTypeResponse(*vt))
}

func (h *ValueTypeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Value type deleted successfully.", gin.H{"id": id})
}

func valueTypeInput(req dto.ValueTypeRequest) service.ValueTypeInput {
	return service.ValueTypeInput{
		Type:         req.Type,
		InterestRate: req.InterestRateDecimal(),
		Direction:    req.Direction,
	}
}
