package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds parsed pagination parameters. Size comes from the legacy
// "qtd" query parameter.
type Query struct {
	Page int
	Size int
}

// FromContext extracts and clamps pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("qtd", "10"), DefaultSize)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: page, Size: size}
}

// Page is an offset-paginated result slice with its metadata.
type Page[T any] struct {
	CurrentPage int   `json:"current_page"`
	Data        []T   `json:"data"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Paginate counts tx and fetches the requested page into a Page value.
func Paginate[T any](tx *gorm.DB, q Query) (*Page[T], error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, q.Size)
	offset := (q.Page - 1) * q.Size
	if err := tx.Offset(offset).Limit(q.Size).Find(&items).Error; err != nil {
		return nil, err
	}

	lastPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	if lastPage < 1 {
		lastPage = 1
	}

	return &Page[T]{
		CurrentPage: q.Page,
		Data:        items,
		PerPage:     q.Size,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
