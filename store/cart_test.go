package store

import (
	"testing"

	"gogo-delivery/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotals(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.customer, f.pizza, 3)

	cart, err := f.s.Cart(f.ctx, f.customer, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	line := cart.Lines[0]
	assert.Equal(t, f.pizza, line.Food.ID)
	assert.Equal(t, "Pizza", line.Food.Category.Title)
	assert.True(t, line.TotalPrice.Equal(dec("13.50")), "got %s", line.TotalPrice)
	assert.True(t, cart.TotalPrice.Equal(dec("13.50")), "got %s", cart.TotalPrice)

	f.addToCart(t, f.customer, f.soda, 2)
	cart, err = f.s.Cart(f.ctx, f.customer, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)
	assert.True(t, cart.TotalPrice.Equal(dec("15.70")), "got %s", cart.TotalPrice)
}

func TestCartEmpty(t *testing.T) {
	f := newFixture(t)
	cart, err := f.s.Cart(f.ctx, f.customer, models.SortCartByCount, models.Descending)
	require.NoError(t, err)
	require.Empty(t, cart.Lines)
	require.True(t, cart.TotalPrice.IsZero())
}

func TestCartSorting(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.customer, f.soda, 5)
	f.addToCart(t, f.customer, f.pizza, 1)

	byTime, err := f.s.Cart(f.ctx, f.customer, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)
	require.Equal(t, f.soda, byTime.Lines[0].FoodID)

	byCount, err := f.s.Cart(f.ctx, f.customer, models.SortCartByCount, models.Ascending)
	require.NoError(t, err)
	require.Equal(t, f.pizza, byCount.Lines[0].FoodID)

	byCountDesc, err := f.s.Cart(f.ctx, f.customer, models.SortCartByCount, models.Descending)
	require.NoError(t, err)
	require.Equal(t, f.soda, byCountDesc.Lines[0].FoodID)
}

func TestCartUniqueness(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.customer, f.pizza, 1)

	_, err := f.s.AddCartItem(f.ctx, f.customer, models.CartItemInput{FoodID: f.pizza, Count: 2})
	require.ErrorIs(t, err, ErrDuplicate)

	// another user may hold the same food
	f.addToCart(t, f.other, f.pizza, 1)

	in, err := f.s.IsInCart(f.ctx, f.customer, f.pizza)
	require.NoError(t, err)
	require.True(t, in)
	in, err = f.s.IsInCart(f.ctx, f.customer, f.soda)
	require.NoError(t, err)
	require.False(t, in)
}

func TestCartMutations(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.customer, f.pizza, 1)

	ok, err := f.s.UpdateCartItem(f.ctx, f.customer, f.pizza, 4)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.s.UpdateCartItem(f.ctx, f.customer, f.soda, 4)
	require.NoError(t, err)
	require.False(t, ok)

	cart, err := f.s.Cart(f.ctx, f.customer, models.SortCartByAddTime, models.Ascending)
	require.NoError(t, err)
	require.Equal(t, 4, cart.Lines[0].Count)

	ok, err = f.s.DeleteCartItem(f.ctx, f.customer, f.pizza)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.s.DeleteCartItem(f.ctx, f.customer, f.pizza)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = f.s.AddCartItem(f.ctx, f.customer, models.CartItemInput{FoodID: 9999, Count: 1})
	require.ErrorIs(t, err, ErrReference)
}

func TestStitchCartFaults(t *testing.T) {
	food := newLookup("food", []models.FoodDetail{
		{Food: models.Food{ID: 1, Price: dec("2.00")}},
	}, func(f models.FoodDetail) uint { return f.ID })

	t.Run("missing food", func(t *testing.T) {
		_, err := stitchCart([]cartItemRecord{{ID: 1, FoodID: 2, Count: 1}}, food)
		require.ErrorIs(t, err, ErrConsistency)
	})

	t.Run("duplicate food", func(t *testing.T) {
		_, err := stitchCart([]cartItemRecord{
			{ID: 1, FoodID: 1, Count: 1},
			{ID: 2, FoodID: 1, Count: 2},
		}, food)
		require.ErrorIs(t, err, ErrConsistency)
	})

	t.Run("ok", func(t *testing.T) {
		cart, err := stitchCart([]cartItemRecord{{ID: 1, FoodID: 1, Count: 3}}, food)
		require.NoError(t, err)
		require.True(t, cart.TotalPrice.Equal(dec("6")))
	})
}

func TestFavorites(t *testing.T) {
	f := newFixture(t)

	_, err := f.s.AddFavorite(f.ctx, f.customer, f.pizza)
	require.NoError(t, err)
	_, err = f.s.AddFavorite(f.ctx, f.customer, f.pizza)
	require.ErrorIs(t, err, ErrDuplicate)

	fav, err := f.s.IsFavorite(f.ctx, f.customer, f.pizza)
	require.NoError(t, err)
	require.True(t, fav)

	marked, err := f.s.ToggleFavorite(f.ctx, f.customer, f.soda)
	require.NoError(t, err)
	require.True(t, marked)

	list, err := f.s.Favorites(f.ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Margherita", list[0].Food.Title)
	require.Equal(t, "Drinks", list[1].Food.Category.Title)

	marked, err = f.s.ToggleFavorite(f.ctx, f.customer, f.soda)
	require.NoError(t, err)
	require.False(t, marked)

	ok, err := f.s.DeleteFavorite(f.ctx, f.customer, f.pizza)
	require.NoError(t, err)
	require.True(t, ok)

	list, err = f.s.Favorites(f.ctx, f.customer)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestStitchFavoritesMissingFood(t *testing.T) {
	food := newLookup("food", nil, func(f models.FoodDetail) uint { return f.ID })
	_, err := stitchFavorites([]favoriteRecord{{ID: 3, FoodID: 7}}, food)
	require.ErrorIs(t, err, ErrConsistency)
}
