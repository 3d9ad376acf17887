package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
)

type productRepository struct {
	s *Store
}

func (r *productRepository) CreateProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := *product
	row.ID = r.s.products.nextID()
	r.s.products.rows[row.ID] = row

	r.s.log.Debugf("Repository: Product created with ID: %d, Name: %s, CategoryID: %d", row.ID, row.Name, row.CategoryID)
	return &row, nil
}

func (r *productRepository) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.products.rows[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return &row, nil
}

func (r *productRepository) UpdateProduct(_ context.Context, product *domain.Product) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products.rows[product.ID]; !ok {
		r.s.log.Debugf("Repository: Product with ID %d not found for update (0 rows affected)", product.ID)
		return 0, nil
	}
	r.s.products.rows[product.ID] = *product
	return 1, nil
}

func (r *productRepository) DeleteProduct(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products.rows[id]; !ok {
		return 0, nil
	}
	delete(r.s.products.rows, id)
	return 1, nil
}

func (r *productRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.s.products.rows))
	for _, p := range r.s.products.rows {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
