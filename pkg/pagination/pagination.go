package pagination

import (
	"math"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is the page/limit pair every list command accepts.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize fills defaults and clamps the limit.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

type Page[T any] struct {
	List []T `json:"list"`
	Meta Meta `json:"meta"`
}

// LastPage is ceil(total / limit).
func LastPage(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func NewPage[T any](list []T, total int64, params Params) *Page[T] {
	params = params.Normalize()
	if list == nil {
		list = []T{}
	}
	return &Page[T]{
		List: list,
		Meta: Meta{
			Total:    total,
			Page:     params.Page,
			LastPage: LastPage(total, params.Limit),
		},
	}
}

// Paginate counts the filtered query, then reads one ordered page of it.
// The order is applied after counting so the count stays a plain aggregate.
func Paginate[T any](query *gorm.DB, params Params, order string) (*Page[T], error) {
	params = params.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var list []T
	q := query.Session(&gorm.Session{})
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Offset(params.Offset()).Limit(params.Limit).Find(&list).Error; err != nil {
		return nil, err
	}

	return NewPage(list, total, params), nil
}
