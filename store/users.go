package store

import (
	"context"
	"fmt"

	"gogo-delivery/models"

	"gorm.io/gorm/clause"
)

// CreateUser inserts a user and returns its ID; a taken username yields ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u models.User) (uint, error) {
	rec := userRecord{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BirthDate:    u.BirthDate,
		Role:         string(u.Role),
	}
	if rec.Role == "" {
		rec.Role = string(models.RoleCustomer)
	}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("failed to create user: %w", translate(err))
	}
	return rec.ID, nil
}

func (s *Store) UserByName(ctx context.Context, username string) (models.User, error) {
	var rec userRecord
	if err := s.conn(ctx).Where("username = ?", username).Take(&rec).Error; err != nil {
		return models.User{}, translate(err)
	}
	return toUser(rec), nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (models.User, error) {
	var rec userRecord
	if err := s.conn(ctx).Take(&rec, id).Error; err != nil {
		return models.User{}, translate(err)
	}
	return toUser(rec), nil
}

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var recs []userRecord
	if err := s.conn(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return mapAll(recs, toUser), nil
}

func (s *Store) SetUserRole(ctx context.Context, userID uint, role models.UserRole) (bool, error) {
	return affected(s.conn(ctx).Model(&userRecord{}).Where("id = ?", userID).Update("role", string(role)))
}
