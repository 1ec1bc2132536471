package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     slug        TEXT NOT NULL UNIQUE,
//     title       TEXT NOT NULL,
//     price       NUMERIC NOT NULL,
//     image       TEXT,
//     category    TEXT,
//     description TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string    `gorm:"column:slug;type:text;uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title"`
	Price       float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	Image       string    `gorm:"column:image;type:text" json:"image"`
	Category    string    `gorm:"column:category;type:text" json:"category"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
