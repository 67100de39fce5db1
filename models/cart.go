package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Address struct {
	ID        uint    `json:"id"`
	UserID    uint    `json:"user_id"`
	Locality  string  `json:"locality"`
	Street    string  `json:"street"`
	House     int     `json:"house"`
	Corps     *string `json:"corps,omitempty"`
	Apartment *string `json:"apartment,omitempty"`
}

type AddressInput struct {
	Locality  string  `json:"locality" validate:"required,max=128"`
	Street    string  `json:"street" validate:"required,max=128"`
	House     int     `json:"house" validate:"required,gt=0"`
	Corps     *string `json:"corps" validate:"omitempty,max=16"`
	Apartment *string `json:"apartment" validate:"omitempty,max=16"`
}

// CartItem is unique per (UserID, FoodID).
type CartItem struct {
	ID      uint      `json:"id"`
	UserID  uint      `json:"user_id"`
	FoodID  uint      `json:"food_id"`
	Count   int       `json:"count"`
	AddTime time.Time `json:"add_time"`
}

type CartLine struct {
	CartItem
	Food       FoodDetail      `json:"food"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type Cart struct {
	Lines      []CartLine      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartItemInput struct {
	FoodID uint `json:"food_id" validate:"required"`
	Count  int  `json:"count" validate:"required,gt=0"`
}

// Favorite is unique per (UserID, FoodID).
type Favorite struct {
	ID      uint      `json:"id"`
	UserID  uint      `json:"user_id"`
	FoodID  uint      `json:"food_id"`
	AddTime time.Time `json:"add_time"`
}

type FavoriteDetail struct {
	Favorite
	Food FoodDetail `json:"food"`
}
