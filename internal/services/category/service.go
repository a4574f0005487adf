// Package category manages income/expense categories and role resolution.
package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Compile-time interface check
var _ interfaces.CategoryService = (*Service)(nil)

// Service implements CategoryService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new category service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func validateCategory(c *models.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if !models.ValidCategoryKind(c.Kind) {
		return fmt.Errorf("%w: invalid category kind %q", models.ErrValidation, c.Kind)
	}
	seen := make(map[string]bool)
	for i := range c.Subcategories {
		sub := &c.Subcategories[i]
		if strings.TrimSpace(sub.Name) == "" {
			return fmt.Errorf("%w: subcategory name is required", models.ErrValidation)
		}
		if sub.Role == "" {
			sub.Role = models.RoleNone
		}
		if !models.ValidSubcategoryRole(sub.Role) {
			return fmt.Errorf("%w: invalid subcategory role %q", models.ErrValidation, sub.Role)
		}
		if sub.ID != "" && seen[sub.ID] {
			return fmt.Errorf("%w: duplicate subcategory id %s", models.ErrValidation, sub.ID)
		}
		seen[sub.ID] = true
	}
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	category.ID = models.NewID("cat")
	for i := range category.Subcategories {
		if category.Subcategories[i].ID == "" {
			category.Subcategories[i].ID = models.NewID("sub")
		}
	}
	if category.Subcategories == nil {
		category.Subcategories = []models.Subcategory{}
	}

	if err := s.storage.Categories().Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", category.ID).Str("kind", string(category.Kind)).
		Str("name", category.Name).Int("subcategories", len(category.Subcategories)).
		Msg("Category created")
	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.storage.Categories().Get(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error) {
	if !models.ValidCategoryKind(kind) {
		return nil, fmt.Errorf("%w: invalid category kind %q", models.ErrValidation, kind)
	}
	return s.storage.Categories().List(ctx, kind)
}

// UpdateCategory replaces the category's name and subcategory list. The kind
// is immutable; new subcategories get ids assigned.
func (s *Service) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	existing, err := s.storage.Categories().Get(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	category.Kind = existing.Kind
	category.CreatedAt = existing.CreatedAt
	category.Name = strings.TrimSpace(category.Name)
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	for i := range category.Subcategories {
		if category.Subcategories[i].ID == "" {
			category.Subcategories[i].ID = models.NewID("sub")
		}
	}
	category.UpdatedAt = time.Now()

	if err := s.storage.Categories().Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", category.ID).Msg("Category updated")
	return category, nil
}

// DeleteCategory removes a category none of whose subcategories classify a
// transaction.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.storage.Categories().Get(ctx, id)
	if err != nil {
		return err
	}

	subIDs := make(map[string]bool, len(category.Subcategories))
	for _, sub := range category.Subcategories {
		subIDs[sub.ID] = true
	}
	referenced, err := s.anySubcategoryUsed(ctx, subIDs)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: category %s classifies existing transactions", models.ErrHasDependents, id)
	}

	if err := s.storage.Categories().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("Category deleted")
	return nil
}

func (s *Service) anySubcategoryUsed(ctx context.Context, subIDs map[string]bool) (bool, error) {
	if len(subIDs) == 0 {
		return false, nil
	}

	incomes, err := s.storage.Transactions().ListIncomes(ctx, interfaces.TransactionFilter{})
	if err != nil {
		return false, err
	}
	for _, in := range incomes {
		if subIDs[in.SubcategoryID] {
			return true, nil
		}
	}

	expenses, err := s.storage.Transactions().ListExpenses(ctx, interfaces.TransactionFilter{})
	if err != nil {
		return false, err
	}
	for _, ex := range expenses {
		if subIDs[ex.SubcategoryID] {
			return true, nil
		}
	}

	expected, err := s.storage.Transactions().ListExpected(ctx, 0, 0)
	if err != nil {
		return false, err
	}
	for _, ee := range expected {
		if subIDs[ee.SubcategoryID] {
			return true, nil
		}
	}
	return false, nil
}

// ResolveRole finds the subcategory classifying a lifecycle event. The role
// tag is authoritative; data created before roles existed falls back to the
// legacy name convention. A miss returns "" with no error so lifecycle
// entries degrade to unclassified instead of failing.
func (s *Service) ResolveRole(ctx context.Context, kind models.CategoryKind, role models.SubcategoryRole) (string, error) {
	if role == models.RoleNone || role == "" {
		return "", nil
	}
	if !models.ValidSubcategoryRole(role) {
		return "", fmt.Errorf("%w: invalid subcategory role %q", models.ErrValidation, role)
	}

	categories, err := s.storage.Categories().List(ctx, kind)
	if err != nil {
		return "", err
	}

	for _, cat := range categories {
		for _, sub := range cat.Subcategories {
			if sub.Role == role {
				return sub.ID, nil
			}
		}
	}

	legacy := models.LegacyRoleNames[role]
	for _, cat := range categories {
		for _, sub := range cat.Subcategories {
			if strings.Contains(strings.ToLower(sub.Name), legacy) {
				return sub.ID, nil
			}
		}
	}

	s.logger.Debug().Str("kind", string(kind)).Str("role", string(role)).
		Msg("No subcategory for role; entry will be unclassified")
	return "", nil
}
