package services

import (
	"strings"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/state"
	"expensetracker/internal/uuid"
)

const defaultCategoryColor = "#6B7280"

// categoryService handles category-related business logic. Categories are
// shared by every user; a signed-in session is still required.
type categoryService struct {
	store state.Dispatcher
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(store state.Dispatcher) CategoryServicer {
	return &categoryService{store: store}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(userID, name string, categoryType models.CategoryType, color string) (*models.Category, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported category type")
	}
	if nameTaken(st.Categories, name, "") {
		return nil, apperrors.ErrDuplicateCategory
	}
	if color == "" {
		color = defaultCategoryColor
	}

	category := models.Category{
		ID:    uuid.New(),
		Name:  name,
		Color: color,
		Type:  categoryType,
	}
	s.store.Dispatch(state.AddCategory{Category: category})
	return &category, nil
}

// GetCategories lists the categories, optionally only those usable for a
// transaction type.
func (s *categoryService) GetCategories(userID string, forType *models.TransactionType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	categories := st.Categories
	if forType != nil {
		categories = nil
		for _, c := range st.Categories {
			if c.Accepts(*forType) {
				categories = append(categories, c)
			}
		}
	}

	result := pagination.Page(categories, page)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	category, ok := st.FindCategory(categoryID)
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &category, nil
}

// UpdateCategory updates an existing category. Transactions referencing it
// are left as they are, even when the new type no longer accepts them.
func (s *categoryService) UpdateCategory(userID, categoryID string, upd CategoryUpdate) (*models.Category, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	category, ok := st.FindCategory(categoryID)
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		if nameTaken(st.Categories, name, categoryID) {
			return nil, apperrors.ErrDuplicateCategory
		}
		category.Name = name
	}
	if upd.Type != nil {
		if !upd.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported category type")
		}
		category.Type = *upd.Type
	}
	if upd.Color != nil && *upd.Color != "" {
		category.Color = *upd.Color
	}

	s.store.Dispatch(state.UpdateCategory{Category: category})
	return &category, nil
}

// DeleteCategory deletes a category. Transactions referencing it keep the
// dangling id and show up as uncategorized. Deleting an unknown id changes
// nothing.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return err
	}

	if _, ok := st.FindCategory(categoryID); !ok {
		return nil
	}
	s.store.Dispatch(state.DeleteCategory{ID: categoryID})
	return nil
}

// nameTaken reports whether another category already uses name, ignoring case.
func nameTaken(categories []models.Category, name, exceptID string) bool {
	for _, c := range categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
