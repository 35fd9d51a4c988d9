package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/util"
	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CategoryService handles category registry business logic
type CategoryService struct {
	eventSource
	store *store.Store
	ids   util.IDGenerator
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(st *store.Store, ids util.IDGenerator) *CategoryService {
	return &CategoryService{store: st, ids: ids}
}

// CreateCategory registers a new category
func (s *CategoryService) CreateCategory(name string, limit decimal.Decimal) (*domain.Category, error) {
	// Validate name
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}
	if limit.IsNegative() {
		return nil, domain.ErrInvalidLimit
	}

	id, err := s.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate category id: %w", err)
	}
	category := domain.Category{ID: id, Name: name, Limit: limit}

	if err := s.store.WithTransaction(func(tx *store.Tx) error {
		return tx.AddCategory(category)
	}); err != nil {
		return nil, err
	}

	log.Info().
		Str("category_id", category.ID).
		Str("name", category.Name).
		Str("limit", category.Limit.String()).
		Msg("Created category")

	s.publishEvent(websocket.CategoryCreated(category))
	return &category, nil
}

// ListCategories returns every registered category in registration order
func (s *CategoryService) ListCategories() []domain.Category {
	var out []domain.Category
	s.store.View(func(r store.Reader) {
		out = r.Categories()
	})
	return out
}

// GetCategory returns the category with the given id
func (s *CategoryService) GetCategory(id string) (*domain.Category, error) {
	var (
		category domain.Category
		ok       bool
	)
	s.store.View(func(r store.Reader) {
		category, ok = r.Category(id)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, id)
	}
	return &category, nil
}
