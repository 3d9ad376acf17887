package domain

import "context"

// CategoryRepository stores categories. Update and Delete report the number of
// affected rows; zero is not an error.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) (int64, error)
	DeleteCategory(ctx context.Context, id int64) (int64, error)
	ListCategories(ctx context.Context) ([]Category, error)
}
