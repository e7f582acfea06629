package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/authlend-api/internal/dto"
	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
)

type InstallmentLimitService interface {
	List(ctx context.Context, f repository.InstallmentLimitFilter, limit, offset int) ([]model.InstallmentLimit, int, error)
	Create(ctx context.Context, l *model.InstallmentLimit) error
	Update(ctx context.Context, l *model.InstallmentLimit) error
	Delete(ctx context.Context, id int64) error
}

type InstallmentLimitHandler struct {
	svc InstallmentLimitService
}

func NewInstallmentLimitHandler(svc InstallmentLimitService) *InstallmentLimitHandler {
	return &InstallmentLimitHandler{svc: svc}
}

func (h *InstallmentLimitHandler) List(c *gin.Context) {
	var q dto.InstallmentLimitQuery
	if !bindQuery(c, &q) {
		return
	}
	p := dto.ParsePagination(c)
	limits, total, err := h.svc.List(c.Request.Context(), repository.InstallmentLimitFilter{
		CardFlagID:   q.CardFlagID,
		Installments: q.Installments,
		MinValue:     q.MinValueDecimal(),
	}, p.PerPage, p.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Installment limits retrieved successfully.",
		dto.NewPage(p, total, dto.MapSlice(limits, dto.NewInstallmentLimitResponse)))
}

func (h *InstallmentLimitHandler) Create(c *gin.Context) {
	var req dto.InstallmentLimitRequest
	if !bindJSON(c, &req) {
		return
	}
	l := &model.InstallmentLimit{
		CardFlagID:   *req.CardFlagID,
		Installments: *req.Installments,
		MinValue:     req.MinValueDecimal(),
	}
	if err := h.svc.Create(c.Request.Context(), l); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Installment limit created successfully.", dto.NewInstallmentLimitResponse(*l))
}

func (h *InstallmentLimitHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.InstallmentLimitRequest
	if !bindJSON(c, &req) {
		return
	}
	l := &model.InstallmentLimit{
		ID:           id,
		CardFlagID:   *req.CardFlagID,
		Installments: *req.Installments,
		MinValue:     req.MinValueDecimal(),
	}
	if err := h.svc.Update(c.Request.Context(), l); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Installment limit updated successfully.", dto.NewInstallmentLimitResponse(*l))
}

func (h *InstallmentLimitHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Installment limit deleted successfully.", gin.H{"id": id})
}
