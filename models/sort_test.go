package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(title string, count int, price string) FoodDetail {
	return FoodDetail{Food: Food{Title: title, Count: count, Price: decimal.RequireFromString(price)}}
}

func foodTitles(list []FoodDetail) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.Title)
	}
	return out
}

func TestSortFood(t *testing.T) {
	list := []FoodDetail{food("b", 2, "10.00"), food("a", 3, "2.50"), food("c", 1, "9.99")}

	SortFood(list, SortFoodByTitle, Ascending)
	assert.Equal(t, []string{"a", "b", "c"}, foodTitles(list))

	SortFood(list, SortFoodByPrice, Ascending)
	assert.Equal(t, []string{"a", "c", "b"}, foodTitles(list))

	SortFood(list, SortFoodByCount, Descending)
	assert.Equal(t, []string{"a", "b", "c"}, foodTitles(list))
}

func TestDescendingMirrorsAscending(t *testing.T) {
	// equal keys keep their relative order ascending and appear reversed descending
	asc := []FoodDetail{food("x", 1, "1"), food("y", 1, "1"), food("z", 0, "1")}
	desc := append([]FoodDetail(nil), asc...)

	SortFood(asc, SortFoodByCount, Ascending)
	SortFood(desc, SortFoodByCount, Descending)

	require.Equal(t, []string{"z", "x", "y"}, foodTitles(asc))
	require.Equal(t, []string{"y", "x", "z"}, foodTitles(desc))
}

func TestSortCartLines(t *testing.T) {
	now := time.Now()
	lines := []CartLine{
		{CartItem: CartItem{FoodID: 1, Count: 5, AddTime: now.Add(2 * time.Minute)}},
		{CartItem: CartItem{FoodID: 2, Count: 1, AddTime: now}},
		{CartItem: CartItem{FoodID: 3, Count: 3, AddTime: now.Add(time.Minute)}},
	}
	ids := func() []uint {
		out := []uint{}
		for _, l := range lines {
			out = append(out, l.FoodID)
		}
		return out
	}

	SortCartLines(lines, SortCartByAddTime, Ascending)
	assert.Equal(t, []uint{2, 3, 1}, ids())

	SortCartLines(lines, SortCartByCount, Descending)
	assert.Equal(t, []uint{1, 3, 2}, ids())
}

func TestSortUsersAbsentNamesFirst(t *testing.T) {
	ann, zed := "Ann", "Zed"
	users := []User{
		{Username: "u1", FirstName: &zed},
		{Username: "u2"},
		{Username: "u3", FirstName: &ann},
	}

	SortUsers(users, SortUsersByFirstName, Ascending)
	assert.Equal(t, "u2", users[0].Username)
	assert.Equal(t, "u3", users[1].Username)
	assert.Equal(t, "u1", users[2].Username)

	SortUsers(users, SortUsersByUsername, Descending)
	assert.Equal(t, "u3", users[0].Username)
}

func TestOrdersFilterFits(t *testing.T) {
	rider := uint(7)
	done := time.Now()
	placed := Order{}
	taken := Order{RiderID: &rider}
	completed := Order{RiderID: &rider, CompletedTime: &done}

	cases := []struct {
		filter OrdersFilter
		order  Order
		want   bool
	}{
		{OrdersAll, placed, true},
		{OrdersAll, taken, true},
		{OrdersAll, completed, true},
		{OrdersInProgress, placed, false},
		{OrdersInProgress, taken, true},
		{OrdersInProgress, completed, false},
		{OrdersCompleted, placed, false},
		{OrdersCompleted, taken, false},
		{OrdersCompleted, completed, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.filter.Fits(tc.order), "%s on %s", tc.filter, tc.order.State())
	}
}

func TestOrderState(t *testing.T) {
	rider := uint(1)
	done := time.Now()
	assert.Equal(t, StatePlaced, Order{}.State())
	assert.Equal(t, StateTaken, Order{RiderID: &rider}.State())
	assert.Equal(t, StateCompleted, Order{RiderID: &rider, CompletedTime: &done}.State())
}

func TestParseEnums(t *testing.T) {
	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, order)

	by, err := ParseSortFoodBy("price")
	require.NoError(t, err)
	assert.Equal(t, SortFoodByPrice, by)

	filter, err := ParseOrdersFilter("in_progress")
	require.NoError(t, err)
	assert.Equal(t, OrdersInProgress, filter)

	_, err = ParseSortCartBy("weight")
	assert.Error(t, err)

	role, err := ParseUserRole("rider")
	require.NoError(t, err)
	assert.Equal(t, RoleRider, role)
	_, err = ParseUserRole("admin")
	assert.Error(t, err)

	_, ok := ParsePreviewOf("user")
	assert.False(t, ok)
}
