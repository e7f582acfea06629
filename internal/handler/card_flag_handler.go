package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/authlend-api/internal/dto"
	"github.com/anyulbade/authlend-api/internal/model"
)

type CardFlagService interface {
	List(ctx context.Context, name string, limit, offset int) ([]model.CardFlag, int, error)
	Create(ctx context.Context, cf *model.CardFlag) error
	Update(ctx context.Context, cf *model.CardFlag) error
	Delete(ctx context.Context, id int64) error
}

type CardFlagHandler struct {
	svc CardFlagService
}

func NewCardFlagHandler(svc CardFlagService) *CardFlagHandler {
	return &CardFlagHandler{svc: svc}
}

func (h *CardFlagHandler) List(c *gin.Context) {
	p := dto.ParsePagination(c)
	flags, total, err := h.svc.List(c.Request.Context(), strings.TrimSpace(c.Query("name")), p.PerPage, p.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Card flags retrieved successfully.",
		dto.NewPage(p, total, dto.MapSlice(flags, dto.NewCardFlagResponse)))
}

func (h *CardFlagHandler) Create(c *gin.Context) {
	var req dto.CardFlagRequest
	if !bindJSON(c, &req) {
		return
	}
	cf := &model.CardFlag{Name: strings.TrimSpace(req.Name), ImageURL: req.ImageURL}
	if err := h.svc.Create(c.Request.Context(), cf); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Card flag created successfully.", dto.NewCardFlagResponse(*cf))
}

func (h *CardFlagHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CardFlagRequest
	if !bindJSON(c, &req) {
		return
	}
	cf := &model.CardFlag{ID: id, Name: strings.TrimSpace(req.Name), ImageURL: req.ImageURL}
	if err := h.svc.Update(c.Request.Context(), cf); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Card flag updated successfully.", dto.NewCardFlagResponse(*cf))
}

func (h *CardFlagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Card flag deleted successfully.", gin.H{"id": id})
}
