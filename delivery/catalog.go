package delivery

import (
	"context"
	"io"

	"gogo-delivery/models"
	"gogo-delivery/policy"

	"github.com/sirupsen/logrus"
)

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return c.store.Categories(ctx)
}

func (c *Client) AddCategory(ctx context.Context, username string, in models.CategoryInput, preview io.Reader) (uint, error) {
	if err := c.check(in); err != nil {
		return 0, err
	}
	if _, err := c.actor(ctx, username, policy.ManageCatalog); err != nil {
		return 0, err
	}
	data, err := c.readPreview(preview)
	if err != nil {
		return 0, err
	}
	id, err := c.store.AddCategory(ctx, in, data)
	if err != nil {
		return 0, err
	}
	c.log.WithFields(logrus.Fields{"username": username, "category_id": id}).Info("category added")
	return id, nil
}

func (c *Client) UpdateCategory(ctx context.Context, username string, id uint, in models.CategoryInput) (bool, error) {
	if err := c.check(in); err != nil {
		return false, err
	}
	if _, err := c.actor(ctx, username, policy.ManageCatalog); err != nil {
		return false, err
	}
	return c.store.UpdateCategory(ctx, id, in)
}

// DeleteCategory also drops the category's food, so the whole preview cache is purged.
func (c *Client) DeleteCategory(ctx context.Context, username string, id uint) (bool, error) {
	if _, err := c.actor(ctx, username, policy.ManageCatalog); err != nil {
		return false, err
	}
	ok, err := c.store.DeleteCategory(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		c.previews.Purge()
		c.log.WithFields(logrus.Fields{"username": username, "category_id": id}).Info("category deleted")
	}
	return ok, nil
}

func (c *Client) FoodInCategory(ctx context.Context, categoryID uint, by models.SortFoodBy, order models.SortOrder) ([]models.FoodDetail, error) {
	return c.store.FoodInCategory(ctx, categoryID, by, order)
}

func (c *Client) Foods(ctx context.Context, filter models.FoodFilter, by models.SortFoodBy, order models.SortOrder) ([]models.FoodDetail, error) {
	return c.store.Foods(ctx, filter, by, order)
}

func (c *Client) checkFood(in models.FoodInput) error {
	if err := c.check(in); err != nil {
		return err
	}
	if in.Price.IsNegative() {
		return models.ErrInvalidPrice
	}
	return nil
}

func (c *Client) AddFood(ctx context.Context, username string, in models.FoodInput, preview io.Reader) (uint, error) {
	if err := c.checkFood(in); err != nil {
		return 0, err
	}
	if _, err := c.actor(ctx, username, policy.ManageCatalog); err != nil {
		return 0, err
	}
	data, err := c.readPreview(preview)
	if err != nil {
		return 0, err
	}
	id, err := c.store.AddFood(ctx, in, data)
	if err != nil {
		return 0, err
	}
	c.log.WithFields(logrus.Fields{"username": username, "food_id": id}).Info("food added")
	return id, nil
}

func (c *Client) UpdateFood(ctx context.Context, username string, id uint, in models.FoodInput) (bool, error) {
	if err := c.checkFood(in); err != nil {
		return false, err
	}
	if _, err := c.actor(ctx, username, policy.ManageCatalog); err != nil {
		return false, err
	}
	return c.store.UpdateFood(ctx, id, in)
}

func (c *Client) DeleteFood(ctx context.Context, username string, id uint) (bool, error) {
	if _, err := c.actor(ctx, username, policy.ManageCatalog); err != nil {
		return false, err
	}
	ok, err := c.store.DeleteFood(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		c.previews.Remove(previewKey{of: models.PreviewOfFood, id: id})
		c.log.WithFields(logrus.Fields{"username": username, "food_id": id}).Info("food deleted")
	}
	return ok, nil
}

// Preview returns the image stored with a category or food; nil when there is none.
func (c *Client) Preview(ctx context.Context, of models.PreviewOf, id uint) ([]byte, error) {
	key := previewKey{of: of, id: id}
	if data, ok := c.previews.Get(key); ok {
		return data, nil
	}
	data, err := c.store.Preview(ctx, of, id)
	if err != nil || data == nil {
		return nil, err
	}
	c.previews.Add(key, data)
	return data, nil
}
