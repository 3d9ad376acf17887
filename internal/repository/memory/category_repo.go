package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
)

type categoryRepository struct {
	s *Store
}

func (r *categoryRepository) CreateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := *category
	row.ID = r.s.categories.nextID()
	r.s.categories.rows[row.ID] = row

	r.s.log.Debugf("Repository: Category created with ID: %d, Name: %s", row.ID, row.Name)
	return &row, nil
}

func (r *categoryRepository) GetCategoryByID(_ context.Context, id int64) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.categories.rows[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	return &row, nil
}

func (r *categoryRepository) UpdateCategory(_ context.Context, category *domain.Category) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories.rows[category.ID]; !ok {
		r.s.log.Debugf("Repository: Category with ID %d not found for update (0 rows affected)", category.ID)
		return 0, nil
	}
	r.s.categories.rows[category.ID] = *category
	return 1, nil
}

// DeleteCategory leaves products that point at id untouched.
func (r *categoryRepository) DeleteCategory(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories.rows[id]; !ok {
		return 0, nil
	}
	delete(r.s.categories.rows, id)
	return 1, nil
}

func (r *categoryRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.s.categories.rows))
	for _, c := range r.s.categories.rows {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}
