package domain

import "context"

// ProductRepository stores products. CategoryID is stored as given.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) (int64, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)
	ListProducts(ctx context.Context) ([]Product, error)
}
