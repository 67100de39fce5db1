package store

import (
	"context"
	"fmt"
	"strings"

	"gogo-delivery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const previewColumn = "preview"

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	recs, err := categoryRows(s.conn(ctx))
	if err != nil {
		return nil, err
	}
	return mapAll(recs, toCategory), nil
}

func categoryRows(db *gorm.DB) ([]categoryRecord, error) {
	var recs []categoryRecord
	if err := db.Omit(previewColumn).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return recs, nil
}

func (s *Store) AddCategory(ctx context.Context, in models.CategoryInput, preview []byte) (uint, error) {
	rec := categoryRecord{Title: in.Title, Description: in.Description, Preview: preview}
	if err := s.conn(ctx).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("failed to add category: %w", translate(err))
	}
	return rec.ID, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id uint, in models.CategoryInput) (bool, error) {
	return affected(s.conn(ctx).Model(&categoryRecord{}).Where("id = ?", id).
		Updates(map[string]any{"title": in.Title, "description": in.Description}))
}

// DeleteCategory removes the category together with its food.
func (s *Store) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	return affected(s.conn(ctx).Delete(&categoryRecord{}, id))
}

// FoodInCategory lists a category's food, each stitched to its category.
func (s *Store) FoodInCategory(ctx context.Context, categoryID uint, by models.SortFoodBy, order models.SortOrder) ([]models.FoodDetail, error) {
	return s.Foods(ctx, models.FoodFilter{CategoryID: &categoryID}, by, order)
}

func (s *Store) Foods(ctx context.Context, filter models.FoodFilter, by models.SortFoodBy, order models.SortOrder) ([]models.FoodDetail, error) {
	food, err := loadFood(s.conn(ctx), func(q *gorm.DB) *gorm.DB {
		if filter.CategoryID != nil {
			q = q.Where("category_id = ?", *filter.CategoryID)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(search))+"%")
		}
		if filter.InStockOnly {
			q = q.Where("count > 0")
		}
		return q
	})
	if err != nil {
		return nil, err
	}
	models.SortFood(food, by, order)
	return food, nil
}

// loadFood fetches food rows narrowed by scope, then every category, and
// stitches them. A food whose category vanished in between is a consistency fault.
func loadFood(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]models.FoodDetail, error) {
	var rows []foodRecord
	if err := scope(db.Model(&foodRecord{}).Omit(previewColumn)).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query food: %w", err)
	}
	if len(rows) == 0 {
		return []models.FoodDetail{}, nil
	}
	categories, err := categoryRows(db)
	if err != nil {
		return nil, err
	}
	return stitchFood(rows, categories)
}

func stitchFood(rows []foodRecord, categories []categoryRecord) ([]models.FoodDetail, error) {
	byID := newLookup("category", mapAll(categories, toCategory), func(c models.Category) uint { return c.ID })
	out := make([]models.FoodDetail, 0, len(rows))
	for _, r := range rows {
		category, err := byID.resolve(r.CategoryID, fmt.Sprintf("food %d", r.ID))
		if err != nil {
			return nil, err
		}
		out = append(out, models.FoodDetail{Food: toFood(r), Category: category})
	}
	return out, nil
}

// foodByIDs loads the referenced food as a lookup for cart, favorite and order stitching.
func foodByIDs(db *gorm.DB, ids []uint) (lookup[models.FoodDetail], error) {
	key := func(f models.FoodDetail) uint { return f.ID }
	if len(ids) == 0 {
		return newLookup("food", nil, key), nil
	}
	food, err := loadFood(db, func(q *gorm.DB) *gorm.DB { return q.Where("id IN ?", distinct(ids)) })
	if err != nil {
		return lookup[models.FoodDetail]{}, err
	}
	return newLookup("food", food, key), nil
}

func (s *Store) AddFood(ctx context.Context, in models.FoodInput, preview []byte) (uint, error) {
	rec := foodRecord{
		Title:       in.Title,
		Description: in.Description,
		Preview:     preview,
		CategoryID:  in.CategoryID,
		Count:       in.Count,
		IsAlcohol:   in.IsAlcohol,
		Price:       in.Price,
	}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("failed to add food: %w", translate(err))
	}
	return rec.ID, nil
}

// UpdateFood changes the live catalog entry; already placed order lines keep their snapshot.
func (s *Store) UpdateFood(ctx context.Context, id uint, in models.FoodInput) (bool, error) {
	return affected(s.conn(ctx).Model(&foodRecord{}).Where("id = ?", id).
		Updates(map[string]any{
			"title":       in.Title,
			"description": in.Description,
			"category_id": in.CategoryID,
			"count":       in.Count,
			"is_alcohol":  in.IsAlcohol,
			"price":       in.Price,
		}))
}

// DeleteFood fails with a store error once the food is part of a placed order.
func (s *Store) DeleteFood(ctx context.Context, id uint) (bool, error) {
	return affected(s.conn(ctx).Delete(&foodRecord{}, id))
}

// Preview returns the stored image bytes, or nil when the entity or image is absent.
func (s *Store) Preview(ctx context.Context, of models.PreviewOf, id uint) ([]byte, error) {
	var model any = &categoryRecord{}
	if of == models.PreviewOfFood {
		model = &foodRecord{}
	}
	var previews [][]byte
	if err := s.conn(ctx).Model(model).Where("id = ?", id).Pluck(previewColumn, &previews).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s preview: %w", of, err)
	}
	if len(previews) == 0 {
		return nil, nil
	}
	return previews[0], nil
}
