package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderState is derived from the rider and completion columns of an order.
type OrderState string

const (
	StatePlaced    OrderState = "PLACED"
	StateTaken     OrderState = "TAKEN"
	StateCompleted OrderState = "COMPLETED"
	// StateCancelled is terminal: a cancelled order no longer exists.
	StateCancelled OrderState = "CANCELLED"
)

type Order struct {
	ID            uint       `json:"id"`
	CustomerID    uint       `json:"customer_id"`
	AddressID     uint       `json:"address_id"`
	CreateTime    time.Time  `json:"create_time"`
	RiderID       *uint      `json:"rider_id,omitempty"`
	CompletedTime *time.Time `json:"completed_time,omitempty"`
}

func (o Order) State() OrderState {
	switch {
	case o.CompletedTime != nil:
		return StateCompleted
	case o.RiderID != nil:
		return StateTaken
	default:
		return StatePlaced
	}
}

// OrderItem freezes the count and unit price at the moment the order was placed.
type OrderItem struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"order_id"`
	FoodID    uint            `json:"food_id"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderLine struct {
	OrderItem
	Food       FoodDetail      `json:"food"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderDetail struct {
	Order
	State      OrderState      `json:"state"`
	Customer   User            `json:"customer"`
	Address    Address         `json:"address"`
	Rider      *User           `json:"rider,omitempty"`
	Items      []OrderLine     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Feedback   *Feedback       `json:"feedback,omitempty"`
}

type Feedback struct {
	ID      uint    `json:"id"`
	OrderID uint    `json:"order_id"`
	Rating  *int16  `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

type FeedbackInput struct {
	OrderID uint    `json:"order_id" validate:"required"`
	Rating  *int16  `json:"rating"`
	Comment *string `json:"comment" validate:"omitempty,max=2048"`
}

type Notification struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	SentTime    time.Time `json:"sent_time"`
}

type NotificationInput struct {
	Title       string  `json:"title" validate:"required,max=256"`
	Description *string `json:"description" validate:"omitempty,max=4096"`
}
