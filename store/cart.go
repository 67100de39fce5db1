package store

import (
	"context"
	"fmt"

	"gogo-delivery/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) Cart(ctx context.Context, userID uint, by models.SortCartBy, order models.SortOrder) (models.Cart, error) {
	return loadCart(s.conn(ctx), userID, by, order, false)
}

// loadCart reads the user's cart rows, then the food they reference, and
// stitches both into priced lines. With lock set the cart rows are selected
// FOR UPDATE where the dialect supports it.
func loadCart(db *gorm.DB, userID uint, by models.SortCartBy, order models.SortOrder, lock bool) (models.Cart, error) {
	q := db.Where("user_id = ?", userID).Order("id")
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []cartItemRecord
	if err := q.Find(&rows).Error; err != nil {
		return models.Cart{}, fmt.Errorf("failed to query cart: %w", err)
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.FoodID)
	}
	food, err := foodByIDs(db, ids)
	if err != nil {
		return models.Cart{}, err
	}
	cart, err := stitchCart(rows, food)
	if err != nil {
		return models.Cart{}, err
	}
	models.SortCartLines(cart.Lines, by, order)
	return cart, nil
}

func stitchCart(rows []cartItemRecord, food lookup[models.FoodDetail]) (models.Cart, error) {
	cart := models.Cart{Lines: make([]models.CartLine, 0, len(rows)), TotalPrice: decimal.Zero}
	seen := uniqueRefs{}
	for _, r := range rows {
		referrer := fmt.Sprintf("cart item %d", r.ID)
		if err := seen.claim(r.FoodID, "food", referrer); err != nil {
			return models.Cart{}, err
		}
		f, err := food.resolve(r.FoodID, referrer)
		if err != nil {
			return models.Cart{}, err
		}
		total := f.Price.Mul(decimal.NewFromInt(int64(r.Count)))
		cart.Lines = append(cart.Lines, models.CartLine{CartItem: toCartItem(r), Food: f, TotalPrice: total})
		cart.TotalPrice = cart.TotalPrice.Add(total)
	}
	return cart, nil
}

func (s *Store) IsInCart(ctx context.Context, userID, foodID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&cartItemRecord{}).
		Where("user_id = ? AND food_id = ?", userID, foodID).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check cart: %w", err)
	}
	return n > 0, nil
}

// AddCartItem inserts a new line; a second line for the same food yields ErrDuplicate.
func (s *Store) AddCartItem(ctx context.Context, userID uint, in models.CartItemInput) (uint, error) {
	rec := cartItemRecord{UserID: userID, FoodID: in.FoodID, Count: in.Count, AddTime: s.now()}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("failed to add cart item: %w", translate(err))
	}
	return rec.ID, nil
}

func (s *Store) UpdateCartItem(ctx context.Context, userID, foodID uint, count int) (bool, error) {
	return affected(s.conn(ctx).Model(&cartItemRecord{}).
		Where("user_id = ? AND food_id = ?", userID, foodID).
		Update("count", count))
}

func (s *Store) DeleteCartItem(ctx context.Context, userID, foodID uint) (bool, error) {
	return affected(s.conn(ctx).Where("user_id = ? AND food_id = ?", userID, foodID).Delete(&cartItemRecord{}))
}
