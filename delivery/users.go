package delivery

import (
	"context"
	"errors"
	"fmt"

	"gogo-delivery/models"
	"gogo-delivery/policy"
	"gogo-delivery/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SignUp registers a customer and returns its ID.
func (c *Client) SignUp(ctx context.Context, in models.SignUpInput) (uint, error) {
	if err := c.check(in); err != nil {
		return 0, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}
	id, err := c.store.CreateUser(ctx, models.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BirthDate:    in.BirthDate,
		Role:         models.RoleCustomer,
	})
	if err != nil {
		return 0, mapDuplicate(err, models.ErrUsernameTaken)
	}
	c.log.WithFields(logrus.Fields{"username": in.Username, "user_id": id}).Info("user signed up")
	return id, nil
}

// CheckCredentials reports whether the password matches the user's digest.
// An unknown username is a mismatch, not an error.
func (c *Client) CheckCredentials(ctx context.Context, username, password string) (bool, error) {
	user, err := c.store.UserByName(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		c.log.WithField("username", username).Warn("login attempt for unknown user")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		c.log.WithField("username", username).Warn("wrong password")
		return false, nil
	}
	return true, nil
}

func (c *Client) CurrentUser(ctx context.Context, username string) (models.User, error) {
	return c.user(ctx, username)
}

func (c *Client) UserByName(ctx context.Context, name string) (models.User, error) {
	return c.store.UserByName(ctx, name)
}

func (c *Client) UserByID(ctx context.Context, id uint) (models.User, error) {
	return c.store.UserByID(ctx, id)
}

func (c *Client) Users(ctx context.Context, username string, by models.SortUsersBy, order models.SortOrder) ([]models.User, error) {
	if _, err := c.actor(ctx, username, policy.ListUsers); err != nil {
		return nil, err
	}
	users, err := c.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	models.SortUsers(users, by, order)
	return users, nil
}

// SetUserRole lets a manager change another user's role.
func (c *Client) SetUserRole(ctx context.Context, username, target string, role models.UserRole) (bool, error) {
	manager, err := c.actor(ctx, username, policy.ChangeRole)
	if err != nil {
		return false, err
	}
	if target == manager.Username {
		return false, models.ErrSelfRoleChange
	}
	if _, err := models.ParseUserRole(string(role)); err != nil {
		return false, &models.RuleError{Reason: err.Error()}
	}
	user, err := c.store.UserByName(ctx, target)
	if err != nil {
		return false, fmt.Errorf("failed to resolve user %q: %w", target, err)
	}
	ok, err := c.store.SetUserRole(ctx, user.ID, role)
	if err != nil {
		return false, err
	}
	if ok {
		c.log.WithFields(logrus.Fields{"username": username, "target": target, "role": role}).Info("user role changed")
	}
	return ok, nil
}

func (c *Client) UserAddresses(ctx context.Context, username string) ([]models.Address, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.store.UserAddresses(ctx, user.ID)
}

func (c *Client) AddUserAddress(ctx context.Context, username string, in models.AddressInput) (uint, error) {
	if err := c.check(in); err != nil {
		return 0, err
	}
	user, err := c.user(ctx, username)
	if err != nil {
		return 0, err
	}
	id, err := c.store.AddAddress(ctx, user.ID, in)
	if err != nil {
		return 0, err
	}
	c.log.WithFields(logrus.Fields{"username": username, "address_id": id}).Info("address added")
	return id, nil
}

func (c *Client) UpdateUserAddress(ctx context.Context, username string, id uint, in models.AddressInput) (bool, error) {
	if err := c.check(in); err != nil {
		return false, err
	}
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	return c.store.UpdateAddress(ctx, user.ID, id, in)
}

func (c *Client) DeleteUserAddress(ctx context.Context, username string, id uint) (bool, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return false, err
	}
	ok, err := c.store.DeleteAddress(ctx, user.ID, id)
	if err != nil {
		return false, err
	}
	if ok {
		c.log.WithFields(logrus.Fields{"username": username, "address_id": id}).Info("address deleted")
	}
	return ok, nil
}
