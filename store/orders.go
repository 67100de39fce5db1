package store

import (
	"context"
	"fmt"

	"gogo-delivery/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Orders lists every order matching the filter, newest first.
func (s *Store) Orders(ctx context.Context, filter models.OrdersFilter) ([]models.OrderDetail, error) {
	return s.orders(s.conn(ctx), filter, func(q *gorm.DB) *gorm.DB { return q })
}

func (s *Store) UserOrders(ctx context.Context, userID uint, filter models.OrdersFilter) ([]models.OrderDetail, error) {
	return s.orders(s.conn(ctx), filter, func(q *gorm.DB) *gorm.DB { return q.Where("customer_id = ?", userID) })
}

// UserOrder returns nil when the user owns no order with that ID.
func (s *Store) UserOrder(ctx context.Context, userID, orderID uint) (*models.OrderDetail, error) {
	list, err := s.orders(s.conn(ctx), models.OrdersAll, func(q *gorm.DB) *gorm.DB {
		return q.Where("id = ? AND customer_id = ?", orderID, userID)
	})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

func (s *Store) orders(db *gorm.DB, filter models.OrdersFilter, scope func(*gorm.DB) *gorm.DB) ([]models.OrderDetail, error) {
	var rows []orderRecord
	if err := scope(db.Model(&orderRecord{})).Order("create_time desc, id desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	kept := rows[:0]
	for _, r := range rows {
		if filter.Fits(toOrder(r)) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return []models.OrderDetail{}, nil
	}
	parts, err := loadOrderParts(db, kept)
	if err != nil {
		return nil, err
	}
	return stitchOrders(kept, parts)
}

// orderParts holds every set an order page references, each fetched by one batched query.
type orderParts struct {
	users     lookup[models.User]
	addresses lookup[models.Address]
	food      lookup[models.FoodDetail]
	items     []orderItemRecord
	feedback  []feedbackRecord
}

func loadOrderParts(db *gorm.DB, orders []orderRecord) (orderParts, error) {
	var (
		parts      orderParts
		orderIDs   []uint
		userIDs    []uint
		addressIDs []uint
	)
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		userIDs = append(userIDs, o.CustomerID)
		if o.RiderID != nil {
			userIDs = append(userIDs, *o.RiderID)
		}
		addressIDs = append(addressIDs, o.AddressID)
	}

	var users []userRecord
	if err := db.Where("id IN ?", distinct(userIDs)).Find(&users).Error; err != nil {
		return parts, fmt.Errorf("failed to query order users: %w", err)
	}
	parts.users = newLookup("user", mapAll(users, toUser), func(u models.User) uint { return u.ID })

	var addresses []addressRecord
	if err := db.Where("id IN ?", distinct(addressIDs)).Find(&addresses).Error; err != nil {
		return parts, fmt.Errorf("failed to query order addresses: %w", err)
	}
	parts.addresses = newLookup("address", mapAll(addresses, toAddress), func(a models.Address) uint { return a.ID })

	if err := db.Where("order_id IN ?", orderIDs).Order("id").Find(&parts.items).Error; err != nil {
		return parts, fmt.Errorf("failed to query order items: %w", err)
	}
	foodIDs := make([]uint, 0, len(parts.items))
	for _, it := range parts.items {
		foodIDs = append(foodIDs, it.FoodID)
	}
	food, err := foodByIDs(db, foodIDs)
	if err != nil {
		return parts, err
	}
	parts.food = food

	if err := db.Where("order_id IN ?", orderIDs).Find(&parts.feedback).Error; err != nil {
		return parts, fmt.Errorf("failed to query feedback: %w", err)
	}
	return parts, nil
}

func stitchOrders(orders []orderRecord, parts orderParts) ([]models.OrderDetail, error) {
	itemsByOrder := make(map[uint][]orderItemRecord, len(orders))
	for _, it := range parts.items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}
	feedbackByOrder := make(map[uint]models.Feedback, len(parts.feedback))
	for _, f := range parts.feedback {
		feedbackByOrder[f.OrderID] = toFeedback(f)
	}

	out := make([]models.OrderDetail, 0, len(orders))
	for _, r := range orders {
		referrer := fmt.Sprintf("order %d", r.ID)
		d := models.OrderDetail{Order: toOrder(r), TotalPrice: decimal.Zero}
		d.State = d.Order.State()

		var err error
		if d.Customer, err = parts.users.resolve(r.CustomerID, referrer); err != nil {
			return nil, err
		}
		if d.Address, err = parts.addresses.resolve(r.AddressID, referrer); err != nil {
			return nil, err
		}
		if r.RiderID != nil {
			rider, err := parts.users.resolve(*r.RiderID, referrer)
			if err != nil {
				return nil, err
			}
			d.Rider = &rider
		}

		seen := uniqueRefs{}
		d.Items = make([]models.OrderLine, 0, len(itemsByOrder[r.ID]))
		for _, it := range itemsByOrder[r.ID] {
			if err := seen.claim(it.FoodID, "food", referrer); err != nil {
				return nil, err
			}
			f, err := parts.food.resolve(it.FoodID, fmt.Sprintf("order item %d", it.ID))
			if err != nil {
				return nil, err
			}
			total := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Count)))
			d.Items = append(d.Items, models.OrderLine{OrderItem: toOrderItem(it), Food: f, TotalPrice: total})
			d.TotalPrice = d.TotalPrice.Add(total)
		}

		if fb, ok := feedbackByOrder[r.ID]; ok {
			d.Feedback = &fb
		}
		out = append(out, d)
	}
	return out, nil
}
