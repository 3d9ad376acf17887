// Package memory keeps users, categories and products in process memory.
// One Store owns all three tables behind a single lock; the repository
// views it hands out share that lock.
package memory

import (
	"sync"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/sirupsen/logrus"
)

type table[T any] struct {
	rows   map[int64]T
	lastID int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) nextID() int64 {
	t.lastID++
	return t.lastID
}

type Store struct {
	mu         sync.RWMutex
	users      *table[domain.User]
	categories *table[domain.Category]
	products   *table[domain.Product]
	log        *logrus.Logger
}

func NewStore(logger *logrus.Logger) *Store {
	return &Store{
		users:      newTable[domain.User](),
		categories: newTable[domain.Category](),
		products:   newTable[domain.Product](),
		log:        logger,
	}
}

func (s *Store) Users() domain.UserRepository {
	return &userRepository{s: s}
}

func (s *Store) Categories() domain.CategoryRepository {
	return &categoryRepository{s: s}
}

func (s *Store) Products() domain.ProductRepository {
	return &productRepository{s: s}
}
