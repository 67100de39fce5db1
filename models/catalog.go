package models

import "github.com/shopspring/decimal"

type Category struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// Food is a catalog entry as stored; FoodDetail carries its resolved category.
type Food struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	CategoryID  uint            `json:"category_id"`
	Count       int             `json:"count"`
	IsAlcohol   bool            `json:"is_alcohol"`
	Price       decimal.Decimal `json:"price"`
}

type FoodDetail struct {
	Food
	Category Category `json:"category"`
}

type CategoryInput struct {
	Title       string  `json:"title" validate:"required,max=128"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
}

type FoodInput struct {
	Title       string          `json:"title" validate:"required,max=128"`
	Description *string         `json:"description" validate:"omitempty,max=1024"`
	CategoryID  uint            `json:"category_id" validate:"required"`
	Count       int             `json:"count" validate:"gte=0"`
	IsAlcohol   bool            `json:"is_alcohol"`
	Price       decimal.Decimal `json:"price"`
}

// FoodFilter narrows the global food listing. Zero value matches everything.
type FoodFilter struct {
	CategoryID  *uint
	Search      string
	InStockOnly bool
}

// PreviewOf names the entity a preview image belongs to.
type PreviewOf string

const (
	PreviewOfCategory PreviewOf = "category"
	PreviewOfFood     PreviewOf = "food"
)

func ParsePreviewOf(s string) (PreviewOf, bool) {
	switch PreviewOf(s) {
	case PreviewOfCategory, PreviewOfFood:
		return PreviewOf(s), true
	}
	return "", false
}
