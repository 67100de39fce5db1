package store

import (
	"context"
	"fmt"

	"gogo-delivery/models"

	"gorm.io/gorm/clause"
)

func (s *Store) UserAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	var recs []addressRecord
	if err := s.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return mapAll(recs, toAddress), nil
}

func (s *Store) AddAddress(ctx context.Context, userID uint, in models.AddressInput) (uint, error) {
	rec := addressRecord{
		UserID:    userID,
		Locality:  in.Locality,
		Street:    in.Street,
		House:     in.House,
		Corps:     in.Corps,
		Apartment: in.Apartment,
	}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("failed to add address: %w", translate(err))
	}
	return rec.ID, nil
}

func (s *Store) UpdateAddress(ctx context.Context, userID, id uint, in models.AddressInput) (bool, error) {
	return affected(s.conn(ctx).Model(&addressRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"locality":  in.Locality,
			"street":    in.Street,
			"house":     in.House,
			"corps":     in.Corps,
			"apartment": in.Apartment,
		}))
}

// DeleteAddress fails with a store error while an order still points at the address.
func (s *Store) DeleteAddress(ctx context.Context, userID, id uint) (bool, error) {
	return affected(s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&addressRecord{}))
}
