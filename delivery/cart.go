package delivery

import (
	"context"

	"gogo-delivery/models"

	"github.com/sirupsen/logrus"
)

func (c *Client) IsUserFavorite(ctx context.Context, username string, foodID uint) (bool, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	return c.store.IsFavorite(ctx, user.ID, foodID)
}

func (c *Client) UserFavorites(ctx context.Context, username string) ([]models.FavoriteDetail, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.store.Favorites(ctx, user.ID)
}

func (c *Client) AddUserFavorite(ctx context.Context, username string, foodID uint) (uint, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return 0, err
	}
	id, err := c.store.AddFavorite(ctx, user.ID, foodID)
	if err != nil {
		return 0, mapDuplicate(err, models.ErrAlreadyFavorite)
	}
	return id, nil
}

func (c *Client) DeleteUserFavorite(ctx context.Context, username string, foodID uint) (bool, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	return c.store.DeleteFavorite(ctx, user.ID, foodID)
}

// ToggleUserFavorite reports whether the food is a favorite after the call.
func (c *Client) ToggleUserFavorite(ctx context.Context, username string, foodID uint) (bool, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	return c.store.ToggleFavorite(ctx, user.ID, foodID)
}

func (c *Client) IsInUserCart(ctx context.Context, username string, foodID uint) (bool, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	return c.store.IsInCart(ctx, user.ID, foodID)
}

func (c *Client) UserCart(ctx context.Context, username string, by models.SortCartBy, order models.SortOrder) (models.Cart, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return models.Cart{}, err
	}
	return c.store.Cart(ctx, user.ID, by, order)
}

func (c *Client) AddUserCartItem(ctx context.Context, username string, in models.CartItemInput) (uint, error) {
	if in.Count <= 0 {
		return 0, models.ErrInvalidCount
	}
	if err := c.check(in); err != nil {
		return 0, err
	}
	user, err := c.user(ctx, username)
	if err != nil {
		return 0, err
	}
	id, err := c.store.AddCartItem(ctx, user.ID, in)
	if err != nil {
		return 0, mapDuplicate(err, models.ErrAlreadyInCart)
	}
	c.log.WithFields(logrus.Fields{"username": username, "food_id": in.FoodID, "count": in.Count}).Info("cart item added")
	return id, nil
}

func (c *Client) UpdateUserCartItem(ctx context.Context, username string, foodID uint, count int) (bool, error) {
	if count <= 0 {
		return false, models.ErrInvalidCount
	}
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	return c.store.UpdateCartItem(ctx, user.ID, foodID, count)
}

func (c *Client) DeleteUserCartItem(ctx context.Context, username string, foodID uint) (bool, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	return c.store.DeleteCartItem(ctx, user.ID, foodID)
}
