package domain

type Product struct {
	ID         int64   `json:"id"         db:"id"`
	Name       string  `json:"name"       db:"name"`
	Price      float64 `json:"price"      db:"price"`
	CategoryID int64   `json:"categoryId" db:"category_id"` // not checked against categories
}

type Category struct {
	ID   int64  `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}
