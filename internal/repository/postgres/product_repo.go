package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type postgresProductRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sqlx.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, price, category_id)
        VALUES ($1, $2, $3)
        RETURNING id`

	created := *product
	err := r.db.QueryRowxContext(ctx, query, product.Name, product.Price, product.CategoryID).Scan(&created.ID)
	if err != nil {
		r.log.Errorf("Repository: Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	r.log.Infof("Repository: Product created successfully with ID: %d, Name: %s", created.ID, created.Name)
	return &created, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
        SELECT id, name, price, category_id
        FROM products
        WHERE id = $1`

	product := &domain.Product{}
	if err := r.db.GetContext(ctx, product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found", id)
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	query := `UPDATE products SET name = $1, price = $2, category_id = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, product.Name, product.Price, product.CategoryID, product.ID)
	if err != nil {
		r.log.Errorf("Repository: Failed to update product ID %d: %v", product.ID, err)
		return 0, fmt.Errorf("could not update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not confirm product update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Product with ID %d not found for update (0 rows affected)", product.ID)
	}
	return rowsAffected, nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete product ID %d: %v", id, err)
		return 0, fmt.Errorf("could not delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
	}
	return rowsAffected, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
        SELECT id, name, price, category_id
        FROM products
        ORDER BY id ASC`

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		r.log.Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}

	r.log.Debugf("Repository: Retrieved %d products", len(products))
	return products, nil
}
