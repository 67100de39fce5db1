package store

import (
	"context"
	"fmt"

	"gogo-delivery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) Favorites(ctx context.Context, userID uint) ([]models.FavoriteDetail, error) {
	db := s.conn(ctx)
	var rows []favoriteRecord
	if err := db.Where("user_id = ?", userID).Order("add_time, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.FoodID)
	}
	food, err := foodByIDs(db, ids)
	if err != nil {
		return nil, err
	}
	return stitchFavorites(rows, food)
}

func stitchFavorites(rows []favoriteRecord, food lookup[models.FoodDetail]) ([]models.FavoriteDetail, error) {
	out := make([]models.FavoriteDetail, 0, len(rows))
	for _, r := range rows {
		f, err := food.resolve(r.FoodID, fmt.Sprintf("favorite %d", r.ID))
		if err != nil {
			return nil, err
		}
		out = append(out, models.FavoriteDetail{Favorite: toFavorite(r), Food: f})
	}
	return out, nil
}

func (s *Store) IsFavorite(ctx context.Context, userID, foodID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&favoriteRecord{}).
		Where("user_id = ? AND food_id = ?", userID, foodID).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

func (s *Store) AddFavorite(ctx context.Context, userID, foodID uint) (uint, error) {
	return s.addFavorite(s.conn(ctx), userID, foodID)
}

func (s *Store) addFavorite(db *gorm.DB, userID, foodID uint) (uint, error) {
	rec := favoriteRecord{UserID: userID, FoodID: foodID, AddTime: s.now()}
	if err := db.Omit(clause.Associations).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("failed to add favorite: %w", translate(err))
	}
	return rec.ID, nil
}

func (s *Store) DeleteFavorite(ctx context.Context, userID, foodID uint) (bool, error) {
	return deleteFavorite(s.conn(ctx), userID, foodID)
}

func deleteFavorite(db *gorm.DB, userID, foodID uint) (bool, error) {
	return affected(db.Where("user_id = ? AND food_id = ?", userID, foodID).Delete(&favoriteRecord{}))
}

// ToggleFavorite flips the favorite mark and reports whether the food is a favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, userID, foodID uint) (bool, error) {
	var marked bool
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := deleteFavorite(tx, userID, foodID)
		if err != nil || removed {
			return err
		}
		if _, err := s.addFavorite(tx, userID, foodID); err != nil {
			return err
		}
		marked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return marked, nil
}
