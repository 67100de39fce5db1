package store

import "gogo-delivery/models"

func toUser(r userRecord) models.User {
	return models.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		BirthDate:    r.BirthDate,
		Role:         models.UserRole(r.Role),
	}
}

func toCategory(r categoryRecord) models.Category {
	return models.Category{ID: r.ID, Title: r.Title, Description: r.Description}
}

func toFood(r foodRecord) models.Food {
	return models.Food{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Count:       r.Count,
		IsAlcohol:   r.IsAlcohol,
		Price:       r.Price,
	}
}

func toAddress(r addressRecord) models.Address {
	return models.Address{
		ID:        r.ID,
		UserID:    r.UserID,
		Locality:  r.Locality,
		Street:    r.Street,
		House:     r.House,
		Corps:     r.Corps,
		Apartment: r.Apartment,
	}
}

func toCartItem(r cartItemRecord) models.CartItem {
	return models.CartItem{ID: r.ID, UserID: r.UserID, FoodID: r.FoodID, Count: r.Count, AddTime: r.AddTime}
}

func toFavorite(r favoriteRecord) models.Favorite {
	return models.Favorite{ID: r.ID, UserID: r.UserID, FoodID: r.FoodID, AddTime: r.AddTime}
}

func toOrder(r orderRecord) models.Order {
	return models.Order{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		AddressID:     r.AddressID,
		CreateTime:    r.CreateTime,
		RiderID:       r.RiderID,
		CompletedTime: r.CompletedTime,
	}
}

func toOrderItem(r orderItemRecord) models.OrderItem {
	return models.OrderItem{ID: r.ID, OrderID: r.OrderID, FoodID: r.FoodID, Count: r.Count, UnitPrice: r.UnitPrice}
}

func toFeedback(r feedbackRecord) models.Feedback {
	return models.Feedback{ID: r.ID, OrderID: r.OrderID, Rating: r.Rating, Comment: r.Comment}
}

func toNotification(r notificationRecord) models.Notification {
	return models.Notification{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		SentTime:    r.SentTime,
	}
}

func mapAll[R, M any](records []R, fn func(R) M) []M {
	out := make([]M, 0, len(records))
	for _, r := range records {
		out = append(out, fn(r))
	}
	return out
}
