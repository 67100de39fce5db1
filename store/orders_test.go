package store

import (
	"testing"

	"gogo-delivery/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.customer, f.pizza, 3)
	f.addToCart(t, f.customer, f.soda, 2)
	before, err := f.s.Cart(f.ctx, f.customer, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)

	id, err := f.s.Checkout(f.ctx, f.customer, f.address)
	require.NoError(t, err)
	require.NotZero(t, id)

	after, err := f.s.Cart(f.ctx, f.customer, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)
	require.Empty(t, after.Lines, "checkout clears the cart")

	order, err := f.s.UserOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, models.StatePlaced, order.State)
	require.Nil(t, order.Rider)
	require.Equal(t, "alice", order.Customer.Username)
	require.Equal(t, f.address, order.Address.ID)
	require.Len(t, order.Items, len(before.Lines))

	counts := map[uint]int{}
	for _, it := range order.Items {
		counts[it.FoodID] = it.Count
	}
	for _, line := range before.Lines {
		assert.Equal(t, line.Count, counts[line.FoodID])
	}
	assert.True(t, order.TotalPrice.Equal(before.TotalPrice), "order %s, cart %s", order.TotalPrice, before.TotalPrice)
}

func TestCheckoutKeepsLinesAddedAfterRead(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.customer, f.pizza, 1)

	// a cart line committed right after checkout reads the cart
	const hook = "test:late_cart_add"
	added := false
	require.NoError(t, f.s.db.Callback().Query().After("gorm:query").Register(hook, func(db *gorm.DB) {
		if added || db.Statement.Table != "cart_items" {
			return
		}
		added = true
		late := cartItemRecord{UserID: f.customer, FoodID: f.soda, Count: 2, AddTime: f.s.now()}
		require.NoError(t, db.Session(&gorm.Session{NewDB: true}).Omit(clause.Associations).Create(&late).Error)
	}))
	t.Cleanup(func() { _ = f.s.db.Callback().Query().Remove(hook) })

	id, err := f.s.Checkout(f.ctx, f.customer, f.address)
	require.NoError(t, err)
	require.True(t, added)

	order, err := f.s.UserOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, f.pizza, order.Items[0].FoodID)

	cart, err := f.s.Cart(f.ctx, f.customer, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1, "the late line is neither ordered nor dropped")
	assert.Equal(t, f.soda, cart.Lines[0].FoodID)
	assert.Equal(t, 2, cart.Lines[0].Count)
}

func TestCheckoutKeepsPriceSnapshot(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder(t)

	_, err := f.s.UpdateFood(f.ctx, f.pizza, models.FoodInput{Title: "Margherita", CategoryID: f.pizzas, Count: 1, Price: dec("99.00")})
	require.NoError(t, err)

	order, err := f.s.UserOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	assert.True(t, order.TotalPrice.Equal(dec("15.70")), "got %s", order.TotalPrice)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.s.Checkout(f.ctx, f.customer, f.address)
	require.ErrorIs(t, err, models.ErrEmptyCart)

	orders, err := f.s.UserOrders(f.ctx, f.customer, models.OrdersAll)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCheckoutForeignAddress(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.other, f.pizza, 1)

	_, err := f.s.Checkout(f.ctx, f.other, f.address)
	require.ErrorIs(t, err, models.ErrForeignAddress)

	cart, err := f.s.Cart(f.ctx, f.other, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1, "failed checkout leaves the cart intact")
}

func TestOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder(t)

	ok, err := f.s.CompleteOrder(f.ctx, f.rider, id)
	require.NoError(t, err)
	require.False(t, ok, "an unclaimed order cannot be completed")

	ok, err = f.s.TakeOrder(f.ctx, f.rider, id)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.s.TakeOrder(f.ctx, f.rider2, id)
	require.NoError(t, err)
	require.False(t, ok, "a claimed order cannot be taken twice")

	ok, err = f.s.CancelOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	require.False(t, ok, "a claimed order cannot be cancelled")

	ok, err = f.s.CompleteOrder(f.ctx, f.rider2, id)
	require.NoError(t, err)
	require.False(t, ok, "only the assignee completes")
	ok, err = f.s.CompleteOrder(f.ctx, f.rider, id)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.s.CompleteOrder(f.ctx, f.rider, id)
	require.NoError(t, err)
	require.False(t, ok)

	order, err := f.s.UserOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	require.Equal(t, models.StateCompleted, order.State)
	require.NotNil(t, order.Rider)
	require.Equal(t, "rick", order.Rider.Username)
	require.NotNil(t, order.CompletedTime)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder(t)

	ok, err := f.s.CancelOrder(f.ctx, f.other, id)
	require.NoError(t, err)
	require.False(t, ok, "only the owner cancels")

	ok, err = f.s.CancelOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	require.True(t, ok)

	order, err := f.s.UserOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	require.Nil(t, order)

	// the cancelled order no longer pins its food
	ok, err = f.s.DeleteFood(f.ctx, f.pizza)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOrdersFilter(t *testing.T) {
	f := newFixture(t)
	placed := f.placeOrder(t)
	taken := f.placeOrder(t)
	completed := f.placeOrder(t)

	for _, id := range []uint{taken, completed} {
		ok, err := f.s.TakeOrder(f.ctx, f.rider, id)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := f.s.CompleteOrder(f.ctx, f.rider, completed)
	require.NoError(t, err)
	require.True(t, ok)

	ids := func(list []models.OrderDetail) []uint {
		out := make([]uint, 0, len(list))
		for _, o := range list {
			out = append(out, o.ID)
		}
		return out
	}

	all, err := f.s.Orders(f.ctx, models.OrdersAll)
	require.NoError(t, err)
	require.Equal(t, []uint{completed, taken, placed}, ids(all), "newest first")

	inProgress, err := f.s.Orders(f.ctx, models.OrdersInProgress)
	require.NoError(t, err)
	require.Equal(t, []uint{taken}, ids(inProgress))

	done, err := f.s.UserOrders(f.ctx, f.customer, models.OrdersCompleted)
	require.NoError(t, err)
	require.Equal(t, []uint{completed}, ids(done))

	none, err := f.s.UserOrders(f.ctx, f.other, models.OrdersAll)
	require.NoError(t, err)
	require.Empty(t, none)

	foreign, err := f.s.UserOrder(f.ctx, f.other, placed)
	require.NoError(t, err)
	require.Nil(t, foreign)
}

func TestFeedback(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder(t)
	rating := int16(5)
	comment := "tasty"

	_, err := f.s.AddFeedback(f.ctx, f.customer, models.FeedbackInput{OrderID: id})
	require.ErrorIs(t, err, models.ErrEmptyFeedback)

	blank := "   "
	_, err = f.s.AddFeedback(f.ctx, f.customer, models.FeedbackInput{OrderID: id, Comment: &blank})
	require.ErrorIs(t, err, models.ErrEmptyFeedback)

	tooHigh := int16(6)
	_, err = f.s.AddFeedback(f.ctx, f.customer, models.FeedbackInput{OrderID: id, Rating: &tooHigh})
	require.ErrorIs(t, err, models.ErrInvalidRating)

	_, err = f.s.AddFeedback(f.ctx, f.customer, models.FeedbackInput{OrderID: id, Rating: &rating})
	require.ErrorIs(t, err, models.ErrFeedbackNotAllowed, "order is not completed yet")

	_, err = f.s.TakeOrder(f.ctx, f.rider, id)
	require.NoError(t, err)
	_, err = f.s.CompleteOrder(f.ctx, f.rider, id)
	require.NoError(t, err)

	_, err = f.s.AddFeedback(f.ctx, f.other, models.FeedbackInput{OrderID: id, Rating: &rating})
	require.ErrorIs(t, err, models.ErrFeedbackNotAllowed, "order is not owned by the caller")

	fid, err := f.s.AddFeedback(f.ctx, f.customer, models.FeedbackInput{OrderID: id, Rating: &rating, Comment: &comment})
	require.NoError(t, err)
	require.NotZero(t, fid)

	_, err = f.s.AddFeedback(f.ctx, f.customer, models.FeedbackInput{OrderID: id, Comment: &comment})
	require.ErrorIs(t, err, models.ErrFeedbackExists)

	order, err := f.s.UserOrder(f.ctx, f.customer, id)
	require.NoError(t, err)
	require.NotNil(t, order.Feedback)
	require.Equal(t, rating, *order.Feedback.Rating)
	require.Equal(t, comment, *order.Feedback.Comment)
}

func TestStitchOrdersFaults(t *testing.T) {
	key := func(u models.User) uint { return u.ID }
	users := newLookup("user", []models.User{{ID: 1, Username: "alice"}}, key)
	addresses := newLookup("address", []models.Address{{ID: 1, UserID: 1}}, func(a models.Address) uint { return a.ID })
	food := newLookup("food", []models.FoodDetail{{Food: models.Food{ID: 1, Price: dec("1")}}}, func(f models.FoodDetail) uint { return f.ID })
	orders := []orderRecord{{ID: 10, CustomerID: 1, AddressID: 1}}

	t.Run("missing address", func(t *testing.T) {
		parts := orderParts{users: users, addresses: newLookup("address", nil, func(a models.Address) uint { return a.ID }), food: food}
		_, err := stitchOrders(orders, parts)
		require.ErrorIs(t, err, ErrConsistency)
	})

	t.Run("missing rider", func(t *testing.T) {
		rider := uint(2)
		taken := []orderRecord{{ID: 10, CustomerID: 1, AddressID: 1, RiderID: &rider}}
		_, err := stitchOrders(taken, orderParts{users: users, addresses: addresses, food: food})
		require.ErrorIs(t, err, ErrConsistency)
	})

	t.Run("duplicate food line", func(t *testing.T) {
		parts := orderParts{users: users, addresses: addresses, food: food, items: []orderItemRecord{
			{ID: 1, OrderID: 10, FoodID: 1, Count: 1, UnitPrice: dec("1")},
			{ID: 2, OrderID: 10, FoodID: 1, Count: 1, UnitPrice: dec("1")},
		}}
		_, err := stitchOrders(orders, parts)
		require.ErrorIs(t, err, ErrConsistency)
	})

	t.Run("snapshot price", func(t *testing.T) {
		parts := orderParts{users: users, addresses: addresses, food: food, items: []orderItemRecord{
			{ID: 1, OrderID: 10, FoodID: 1, Count: 2, UnitPrice: dec("3.25")},
		}}
		out, err := stitchOrders(orders, parts)
		require.NoError(t, err)
		require.True(t, out[0].TotalPrice.Equal(dec("6.50")))
		require.Equal(t, models.StatePlaced, out[0].State)
	})
}
