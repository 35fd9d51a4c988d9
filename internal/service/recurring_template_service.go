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

// RecurringTemplateService handles recurring template business logic
type RecurringTemplateService struct {
	eventSource
	store *store.Store
	ids   util.IDGenerator
}

// NewRecurringTemplateService creates a new RecurringTemplateService
func NewRecurringTemplateService(st *store.Store, ids util.IDGenerator) *RecurringTemplateService {
	return &RecurringTemplateService{store: st, ids: ids}
}

// CreateTemplate registers a fixed monthly obligation against an existing category.
// The template takes effect from the next month that is opened.
func (s *RecurringTemplateService) CreateTemplate(name string, amount decimal.Decimal, categoryID string) (*domain.RecurringTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxTemplateNameLength {
		return nil, domain.ErrNameTooLong
	}
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	id, err := s.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate template id: %w", err)
	}
	template := domain.RecurringTemplate{
		ID:         id,
		Name:       name,
		Amount:     amount,
		CategoryID: categoryID,
	}

	err = s.store.WithTransaction(func(tx *store.Tx) error {
		if _, ok := tx.Category(categoryID); !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCategory, categoryID)
		}
		return tx.AddTemplate(template)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("template_id", template.ID).
		Str("category_id", template.CategoryID).
		Str("amount", template.Amount.String()).
		Msg("Created recurring template")

	s.publishEvent(websocket.RecurringCreated(template))
	return &template, nil
}

// ListTemplates returns every registered template in registration order
func (s *RecurringTemplateService) ListTemplates() []domain.RecurringTemplate {
	var out []domain.RecurringTemplate
	s.store.View(func(r store.Reader) {
		out = r.Templates()
	})
	return out
}

// GetTemplate returns the template with the given id
func (s *RecurringTemplateService) GetTemplate(id string) (*domain.RecurringTemplate, error) {
	var (
		template domain.RecurringTemplate
		ok       bool
	)
	s.store.View(func(r store.Reader) {
		template, ok = r.Template(id)
	})
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return &template, nil
}
