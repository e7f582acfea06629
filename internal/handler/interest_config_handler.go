package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/authlend-api/internal/dto"
	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
)

type InterestConfigurationService interface {
	List(ctx context.Context, f repository.InterestConfigurationFilter, limit, offset int) ([]model.InterestConfiguration, int, error)
	Create(ctx context.Context, ic *model.InterestConfiguration) error
	Update(ctx context.Context, ic *model.InterestConfiguration) error
	Delete(ctx context.Context, id int64) error
}

type InterestConfigurationHandler struct {
	svc InterestConfigurationService
}

func NewInterestConfigurationHandler(svc InterestConfigurationService) *InterestConfigurationHandler {
	return &InterestConfigurationHandler{svc: svc}
}

func (h *InterestConfigurationHandler) List(c *gin.Context) {
	var q dto.InterestConfigurationQuery
	if !bindQuery(c, &q) {
		return
	}
	p := dto.ParsePagination(c)
	configs, total, err := h.svc.List(c.Request.Context(), repository.InterestConfigurationFilter{
		CardFlagID:   q.CardFlagID,
		StoreID:      q.StoreID,
		ValueTypeID:  q.ValueTypeID,
		Installments: q.Installments,
	}, p.PerPage, p.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Interest configurations retrieved successfully.",
		dto.NewPage(p, total, dto.MapSlice(configs, dto.NewInterestConfigurationResponse)))
}

func (h *InterestConfigurationHandler) Create(c *gin.Context) {
	var req dto.InterestConfigurationRequest
	if !bindJSON(c, &req) {
		return
	}
	ic := interestConfiguration(0, req)
	if err := h.svc.Create(c.Request.Context(), ic); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Interest configuration created successfully.", dto.NewInterestConfigurationResponse(*ic))
}

func (h *InterestConfigurationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.InterestConfigurationRequest
	if !bindJSON(c, &req) {
		return
	}
	ic := interestConfiguration(id, req)
	if err := h.svc.Update(c.Request.Context(), ic); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Interest configuration updated successfully.", dto.NewInterestConfigurationResponse(*ic))
}

func (h *InterestConfigurationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Interest configuration deleted successfully.", gin.H{"id": id})
}

func interestConfiguration(id int64, req dto.InterestConfigurationRequest) *model.InterestConfiguration {
	return &model.InterestConfiguration{
		ID:           id,
		CardFlagID:   *req.CardFlagID,
		StoreID:      *req.StoreID,
		ValueTypeID:  *req.ValueTypeID,
		Installments: *req.Installments,
		InterestRate: req.InterestRateDecimal(),
	}
}
