package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gogo-delivery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxRating = 5

// TakeOrder assigns the rider to a placed order; false when it is already claimed or gone.
func (s *Store) TakeOrder(ctx context.Context, riderID, orderID uint) (bool, error) {
	return affected(s.conn(ctx).Model(&orderRecord{}).
		Where("id = ? AND rider_id IS NULL AND completed_time IS NULL", orderID).
		Update("rider_id", riderID))
}

// CompleteOrder marks the rider's own taken order completed.
func (s *Store) CompleteOrder(ctx context.Context, riderID, orderID uint) (bool, error) {
	return affected(s.conn(ctx).Model(&orderRecord{}).
		Where("id = ? AND rider_id = ? AND completed_time IS NULL", orderID, riderID).
		Update("completed_time", s.now()))
}

// CancelOrder deletes the customer's order while no rider has claimed it.
func (s *Store) CancelOrder(ctx context.Context, customerID, orderID uint) (bool, error) {
	var cancelled bool
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := affected(tx.Where("id = ? AND customer_id = ? AND rider_id IS NULL", orderID, customerID).
			Delete(&orderRecord{}))
		if err != nil || !ok {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&orderItemRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&feedbackRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete feedback: %w", err)
		}
		cancelled = true
		return nil
	})
	return cancelled, err
}

// AddFeedback attaches feedback to a completed order the customer owns, once.
func (s *Store) AddFeedback(ctx context.Context, customerID uint, in models.FeedbackInput) (uint, error) {
	comment := in.Comment
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}
	if in.Rating == nil && comment == nil {
		return 0, models.ErrEmptyFeedback
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > maxRating) {
		return 0, models.ErrInvalidRating
	}

	var id uint
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var order orderRecord
		err := tx.Where("id = ? AND customer_id = ? AND completed_time IS NOT NULL", in.OrderID, customerID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrFeedbackNotAllowed
		}
		if err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}

		var existing int64
		if err := tx.Model(&feedbackRecord{}).Where("order_id = ?", order.ID).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check feedback: %w", err)
		}
		if existing > 0 {
			return models.ErrFeedbackExists
		}

		rec := feedbackRecord{OrderID: order.ID, Rating: in.Rating, Comment: comment}
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			if errors.Is(translate(err), ErrDuplicate) {
				return models.ErrFeedbackExists
			}
			return fmt.Errorf("failed to add feedback: %w", err)
		}
		id = rec.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
