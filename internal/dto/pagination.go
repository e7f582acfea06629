package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type PaginationParams struct {
	Page    int
	PerPage int
	Offset  int
}

// ParsePagination reads page and per_page, clamping them to sane values.
func ParsePagination(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return PaginationParams{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
	}
}

type Page[T any] struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
	Data        []T `json:"data"`
}

func NewPage[T any](p PaginationParams, total int, data []T) Page[T] {
	lastPage := 1
	if total > 0 {
		lastPage = (total + p.PerPage - 1) / p.PerPage
	}
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		LastPage:    lastPage,
		Data:        data,
	}
}
