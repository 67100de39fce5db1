package store

import (
	"context"
	"fmt"

	"gogo-delivery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Checkout turns the user's cart into an order in one transaction and returns
// the order ID. Each order item freezes the food's current count and price.
func (s *Store) Checkout(ctx context.Context, userID, addressID uint) (uint, error) {
	var orderID uint
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&addressRecord{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Count(&owned).Error; err != nil {
			return fmt.Errorf("failed to check address: %w", err)
		}
		if owned == 0 {
			return models.ErrForeignAddress
		}

		cart, err := loadCart(tx, userID, models.SortCartByAddTime, models.Ascending, true)
		if err != nil {
			return err
		}
		if len(cart.Lines) == 0 {
			return models.ErrEmptyCart
		}

		order := orderRecord{CustomerID: userID, AddressID: addressID, CreateTime: s.now()}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", translate(err))
		}

		items := make([]orderItemRecord, 0, len(cart.Lines))
		lineIDs := make([]uint, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			lineIDs = append(lineIDs, line.ID)
			items = append(items, orderItemRecord{
				OrderID:   order.ID,
				FoodID:    line.FoodID,
				Count:     line.Count,
				UnitPrice: line.Food.Price,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", translate(err))
		}

		// rows added after the locked read stay in the cart
		if err := tx.Where("user_id = ? AND id IN ?", userID, lineIDs).Delete(&cartItemRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}
