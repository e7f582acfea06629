package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/dto"
	"github.com/anyulbade/authlend-api/internal/middleware"
	"github.com/anyulbade/authlend-api/internal/model"
	"github.com/anyulbade/authlend-api/internal/repository"
	"github.com/anyulbade/authlend-api/internal/service"
)

type SimulationService interface {
	Simulate(ctx context.Context, in service.SimulateInput) (*service.SimulationResult, error)
	Show(ctx context.Context, id string) (*model.SimulationDetail, error)
	List(ctx context.Context, f repository.SimulationFilter, limit, offset int) ([]model.SimulationDetail, int, error)
	Update(ctx context.Context, id int64, p service.SimulationPatch) (*model.Simulation, error)
	Delete(ctx context.Context, id int64) error
}

type SimulationHandler struct {
	svc SimulationService
}

func NewSimulationHandler(svc SimulationService) *SimulationHandler {
	return &SimulationHandler{svc: svc}
}

func (h *SimulationHandler) Create(c *gin.Context) {
	var req dto.SimulationRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Simulate(c.Request.Context(), service.SimulateInput{
		Amount:       req.AmountDecimal(),
		Installments: *req.Installments,
		CardFlagID:   *req.CardFlagID,
		StoreID:      *req.StoreID,
		ValueTypeID:  *req.ValueTypeID,
		IP:           c.ClientIP(),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	respond(c, http.StatusOK, "", dto.SimulationResponse{
		Amount:                             res.Quote.Amount.StringFixed(2),
		AmountWithInterest:                 res.Quote.AmountWithInterest.StringFixed(2),
		InterestRateByTypeOfAmount:         res.Rates.TypeOfAmount.StringFixed(2),
		InterestRateByNumberOfInstallments: res.Rates.NumberOfInstallments.StringFixed(2),
		ValueType:                          res.ValueType,
		Installments:                       res.Quote.Installments,
		InstallmentValue:                   res.Quote.InstallmentValue.StringFixed(2),
		StoreName:                          res.StoreName,
		StoreCity:                          res.StoreCity,
		CardFlag:                           res.CardFlag,
		SimulationID:                       res.SimulationID,
	})
}

func (h *SimulationHandler) Show(c *gin.Context) {
	detail, err := h.svc.Show(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Simulation retrieved successfully.", dto.NewSimulationDetailResponse(*detail))
}

func (h *SimulationHandler) List(c *gin.Context) {
	var q dto.SimulationListQuery
	if !bindQuery(c, &q) {
		return
	}

	from, to := q.Dates()
	if from != nil && to != nil && to.Before(*from) {
		fail(c, http.StatusUnprocessableEntity, "The given data was invalid.", map[string][]string{
			"created_to": {"The created to field must be a date after or equal to created from."},
		})
		return
	}
	installmentValue, minAmount, maxAmount := q.Amounts()

	p := dto.ParsePagination(c)
	sims, total, err := h.svc.List(c.Request.Context(), repository.SimulationFilter{
		Installments:     q.Installments,
		InstallmentValue: installmentValue,
		StoreID:          q.StoreID,
		CardFlagID:       q.CardFlagID,
		ValueTypeID:      q.ValueTypeID,
		MinAmount:        minAmount,
		MaxAmount:        maxAmount,
		CreatedFrom:      from,
		CreatedTo:        to,
	}, p.PerPage, p.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	respond(c, http.StatusOK, "Simulations retrieved successfully.",
		dto.NewPage(p, total, dto.MapSlice(sims, dto.NewSimulationDetailResponse)))
}

func (h *SimulationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SimulationPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	amount, withInterest, typeRate, installmentRate, installmentValue := req.Decimals()
	sim, err := h.svc.Update(c.Request.Context(), id, service.SimulationPatch{
		Amount:                             amount,
		AmountWithInterest:                 withInterest,
		InterestRateByTypeOfAmount:         typeRate,
		InterestRateByNumberOfInstallments: installmentRate,
		Installments:                       req.Installments,
		InstallmentValue:                   installmentValue,
		IP:                                 req.IP,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	auditLog(c, "simulation updated", id)
	respond(c, http.StatusOK, "Simulation updated successfully.", dto.NewSimulationRecordResponse(*sim))
}

func (h *SimulationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	auditLog(c, "simulation deleted", id)
	respond(c, http.StatusOK, "Simulation deleted successfully.", gin.H{"id": id})
}

// auditLog records which admin changed a stored simulation.
func auditLog(c *gin.Context, msg string, id int64) {
	subject := ""
	if claims, ok := middleware.ClaimsFrom(c); ok {
		subject = claims.Subject
	}
	log.Info().Int64("simulation_id", id).Str("admin", subject).Msg(msg)
}
