package store

import (
	"context"
	"fmt"

	"gogo-delivery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) UserNotifications(ctx context.Context, userID uint) ([]models.Notification, error) {
	var recs []notificationRecord
	if err := s.conn(ctx).Where("user_id = ?", userID).Order("sent_time desc, id desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return mapAll(recs, toNotification), nil
}

// AddNotification stores a notification for one user. The target must exist.
func (s *Store) AddNotification(ctx context.Context, userID uint, in models.NotificationInput) (models.Notification, error) {
	rec := notificationRecord{UserID: userID, Title: in.Title, Description: in.Description, SentTime: s.now()}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return models.Notification{}, fmt.Errorf("failed to add notification: %w", translate(err))
	}
	return toNotification(rec), nil
}

// Broadcast stores one notification per user holding the role, all or none.
func (s *Store) Broadcast(ctx context.Context, role models.UserRole, in models.NotificationInput) ([]models.Notification, error) {
	var sent []models.Notification
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var userIDs []uint
		if err := tx.Model(&userRecord{}).Where("role = ?", string(role)).Order("id").Pluck("id", &userIDs).Error; err != nil {
			return fmt.Errorf("failed to query recipients: %w", err)
		}
		if len(userIDs) == 0 {
			return nil
		}
		now := s.now()
		recs := make([]notificationRecord, 0, len(userIDs))
		for _, id := range userIDs {
			recs = append(recs, notificationRecord{UserID: id, Title: in.Title, Description: in.Description, SentTime: now})
		}
		if err := tx.Omit(clause.Associations).Create(&recs).Error; err != nil {
			return fmt.Errorf("failed to add notifications: %w", translate(err))
		}
		sent = mapAll(recs, toNotification)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sent == nil {
		sent = []models.Notification{}
	}
	return sent, nil
}
