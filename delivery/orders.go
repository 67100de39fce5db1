package delivery

import (
	"context"

	"gogo-delivery/models"
	"gogo-delivery/policy"

	"github.com/sirupsen/logrus"
)

// MakeOrder checks out the user's cart to the given address and returns the order ID.
func (c *Client) MakeOrder(ctx context.Context, username string, addressID uint) (uint, error) {
	user, err := c.actor(ctx, username, policy.PlaceOrder)
	if err != nil {
		return 0, err
	}
	id, err := c.store.Checkout(ctx, user.ID, addressID)
	if err != nil {
		return 0, err
	}
	c.log.WithFields(logrus.Fields{"username": username, "order_id": id}).Info("order placed")
	return id, nil
}

func (c *Client) Orders(ctx context.Context, username string, filter models.OrdersFilter) ([]models.OrderDetail, error) {
	if _, err := c.actor(ctx, username, policy.ListAllOrders); err != nil {
		return nil, err
	}
	return c.store.Orders(ctx, filter)
}

func (c *Client) UserOrders(ctx context.Context, username string, filter models.OrdersFilter) ([]models.OrderDetail, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.store.UserOrders(ctx, user.ID, filter)
}

// UserOrder returns nil when the user owns no such order.
func (c *Client) UserOrder(ctx context.Context, username string, orderID uint) (*models.OrderDetail, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.store.UserOrder(ctx, user.ID, orderID)
}

// transition resolves the user and checks the lifecycle table for the move.
func (c *Client) transition(ctx context.Context, username string, from, to models.OrderState) (models.User, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if err := policy.CanTransition(from, to, user.Role); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Client) TakeOrder(ctx context.Context, username string, orderID uint) (bool, error) {
	rider, err := c.transition(ctx, username, models.StatePlaced, models.StateTaken)
	if err != nil {
		return false, err
	}
	ok, err := c.store.TakeOrder(ctx, rider.ID, orderID)
	if err != nil {
		return false, err
	}
	if ok {
		c.log.WithFields(logrus.Fields{"username": username, "order_id": orderID}).Info("order taken")
	}
	return ok, nil
}

func (c *Client) CompleteOrder(ctx context.Context, username string, orderID uint) (bool, error) {
	rider, err := c.transition(ctx, username, models.StateTaken, models.StateCompleted)
	if err != nil {
		return false, err
	}
	ok, err := c.store.CompleteOrder(ctx, rider.ID, orderID)
	if err != nil {
		return false, err
	}
	if ok {
		c.log.WithFields(logrus.Fields{"username": username, "order_id": orderID}).Info("order completed")
	}
	return ok, nil
}

func (c *Client) CancelOrder(ctx context.Context, username string, orderID uint) (bool, error) {
	user, err := c.transition(ctx, username, models.StatePlaced, models.StateCancelled)
	if err != nil {
		return false, err
	}
	ok, err := c.store.CancelOrder(ctx, user.ID, orderID)
	if err != nil {
		return false, err
	}
	if ok {
		c.log.WithFields(logrus.Fields{"username": username, "order_id": orderID}).Info("order cancelled")
	}
	return ok, nil
}

func (c *Client) AddFeedback(ctx context.Context, username string, in models.FeedbackInput) (uint, error) {
	if err := c.check(in); err != nil {
		return 0, err
	}
	user, err := c.user(ctx, username)
	if err != nil {
		return 0, err
	}
	id, err := c.store.AddFeedback(ctx, user.ID, in)
	if err != nil {
		return 0, err
	}
	c.log.WithFields(logrus.Fields{"username": username, "order_id": in.OrderID, "feedback_id": id}).Info("feedback added")
	return id, nil
}
