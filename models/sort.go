package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type SortFoodBy string

const (
	SortFoodByTitle SortFoodBy = "title"
	SortFoodByCount SortFoodBy = "count"
	SortFoodByPrice SortFoodBy = "price"
)

type SortCartBy string

const (
	SortCartByCount   SortCartBy = "count"
	SortCartByAddTime SortCartBy = "add_time"
)

type SortUsersBy string

const (
	SortUsersByUsername  SortUsersBy = "username"
	SortUsersByFirstName SortUsersBy = "first_name"
	SortUsersByLastName  SortUsersBy = "last_name"
)

// OrdersFilter selects orders by their lifecycle columns after they are fetched.
type OrdersFilter string

const (
	OrdersAll        OrdersFilter = "all"
	OrdersInProgress OrdersFilter = "in_progress"
	OrdersCompleted  OrdersFilter = "completed"
)

func (by SortFoodBy) Compare(a, b Food) int {
	switch by {
	case SortFoodByCount:
		return cmp.Compare(a.Count, b.Count)
	case SortFoodByPrice:
		return a.Price.Cmp(b.Price)
	default:
		return strings.Compare(a.Title, b.Title)
	}
}

func (by SortCartBy) Compare(a, b CartItem) int {
	switch by {
	case SortCartByCount:
		return cmp.Compare(a.Count, b.Count)
	default:
		return a.AddTime.Compare(b.AddTime)
	}
}

func (by SortUsersBy) Compare(a, b User) int {
	switch by {
	case SortUsersByFirstName:
		return compareOptional(a.FirstName, b.FirstName)
	case SortUsersByLastName:
		return compareOptional(a.LastName, b.LastName)
	default:
		return strings.Compare(a.Username, b.Username)
	}
}

// compareOptional orders absent values before present ones.
func compareOptional(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}

func (f OrdersFilter) Fits(o Order) bool {
	switch f {
	case OrdersInProgress:
		return o.RiderID != nil && o.CompletedTime == nil
	case OrdersCompleted:
		return o.CompletedTime != nil
	default:
		return true
	}
}

// sortStable sorts in place and reverses the whole result for Descending, so a
// descending list is always the exact mirror of the ascending one.
func sortStable[T any](list []T, compare func(a, b T) int, order SortOrder) {
	slices.SortStableFunc(list, compare)
	if order == Descending {
		slices.Reverse(list)
	}
}

func SortFood(list []FoodDetail, by SortFoodBy, order SortOrder) {
	sortStable(list, func(a, b FoodDetail) int { return by.Compare(a.Food, b.Food) }, order)
}

func SortCartLines(lines []CartLine, by SortCartBy, order SortOrder) {
	sortStable(lines, func(a, b CartLine) int { return by.Compare(a.CartItem, b.CartItem) }, order)
}

func SortUsers(list []User, by SortUsersBy, order SortOrder) {
	sortStable(list, by.Compare, order)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

func ParseSortFoodBy(s string) (SortFoodBy, error) {
	switch SortFoodBy(s) {
	case "", SortFoodByTitle:
		return SortFoodByTitle, nil
	case SortFoodByCount, SortFoodByPrice:
		return SortFoodBy(s), nil
	}
	return "", fmt.Errorf("unknown food sort key %q", s)
}

func ParseSortCartBy(s string) (SortCartBy, error) {
	switch SortCartBy(s) {
	case "", SortCartByAddTime:
		return SortCartByAddTime, nil
	case SortCartByCount:
		return SortCartByCount, nil
	}
	return "", fmt.Errorf("unknown cart sort key %q", s)
}

func ParseSortUsersBy(s string) (SortUsersBy, error) {
	switch SortUsersBy(s) {
	case "", SortUsersByUsername:
		return SortUsersByUsername, nil
	case SortUsersByFirstName, SortUsersByLastName:
		return SortUsersBy(s), nil
	}
	return "", fmt.Errorf("unknown user sort key %q", s)
}

func ParseOrdersFilter(s string) (OrdersFilter, error) {
	switch OrdersFilter(s) {
	case "", OrdersAll:
		return OrdersAll, nil
	case OrdersInProgress, OrdersCompleted:
		return OrdersFilter(s), nil
	}
	return "", fmt.Errorf("unknown orders filter %q", s)
}
