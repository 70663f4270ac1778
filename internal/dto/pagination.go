package dto

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination carries the shared list-query parameters. Page and Limit are
// pointers so an explicit out-of-range value is rejected by binding instead
// of silently falling back to the default.
type Pagination struct {
	Page      *int   `form:"page" binding:"omitempty,min=1"`
	Limit     *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Name      string `form:"name"`
}

func (p *Pagination) PageValue() int {
	if p.Page == nil {
		return defaultPage
	}
	return *p.Page
}

func (p *Pagination) LimitValue() int {
	if p.Limit == nil {
		return defaultLimit
	}
	if *p.Limit > maxLimit {
		return maxLimit
	}
	return *p.Limit
}

func (p *Pagination) Offset() int {
	return (p.PageValue() - 1) * p.LimitValue()
}

// OrderClause resolves sortBy/sortOrder against a per-entity whitelist
// mapping API field names to column names. Default order is id ASC.
func (p *Pagination) OrderClause(sortable map[string]string) (string, error) {
	column := "id"
	if p.SortBy != "" {
		mapped, ok := sortable[p.SortBy]
		if !ok {
			return "", fmt.Errorf("sort field '%s' is not valid", p.SortBy)
		}
		column = mapped
	}

	direction := "ASC"
	if p.SortOrder != "" {
		switch strings.ToUpper(p.SortOrder) {
		case "ASC":
			direction = "ASC"
		case "DESC":
			direction = "DESC"
		default:
			return "", fmt.Errorf("sort order '%s' is not valid, use ASC or DESC", p.SortOrder)
		}
	}
	return column + " " + direction, nil
}

type PageMeta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

// Page is the paginated response envelope shared by every list endpoint.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

func NewPage[T any](data []T, total int64, page, limit int) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Page[T]{
		Data: data,
		Meta: PageMeta{
			TotalItems:   total,
			ItemCount:    len(data),
			ItemsPerPage: limit,
			TotalPages:   totalPages,
			CurrentPage:  page,
		},
	}
}
