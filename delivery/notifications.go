package delivery

import (
	"context"
	"fmt"

	"gogo-delivery/models"
	"gogo-delivery/policy"

	"github.com/sirupsen/logrus"
)

// SendDirectNotification stores a notification for one user and publishes it after commit.
func (c *Client) SendDirectNotification(ctx context.Context, username, target string, in models.NotificationInput) (uint, error) {
	if err := c.check(in); err != nil {
		return 0, err
	}
	if _, err := c.actor(ctx, username, policy.SendNotification); err != nil {
		return 0, err
	}
	recipient, err := c.store.UserByName(ctx, target)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve user %q: %w", target, err)
	}
	n, err := c.store.AddNotification(ctx, recipient.ID, in)
	if err != nil {
		return 0, err
	}
	c.log.WithFields(logrus.Fields{"username": username, "target": target, "notification_id": n.ID}).Info("notification sent")
	c.publish(ctx, n)
	return n.ID, nil
}

// BroadcastNotification notifies every user holding the role and returns how many were notified.
func (c *Client) BroadcastNotification(ctx context.Context, username string, role models.UserRole, in models.NotificationInput) (int, error) {
	if err := c.check(in); err != nil {
		return 0, err
	}
	if _, err := models.ParseUserRole(string(role)); err != nil {
		return 0, &models.RuleError{Reason: err.Error()}
	}
	if _, err := c.actor(ctx, username, policy.Broadcast); err != nil {
		return 0, err
	}
	sent, err := c.store.Broadcast(ctx, role, in)
	if err != nil {
		return 0, err
	}
	c.log.WithFields(logrus.Fields{"username": username, "role": role, "recipients": len(sent)}).Info("notification broadcast")
	c.publish(ctx, sent...)
	return len(sent), nil
}

func (c *Client) UserNotifications(ctx context.Context, username string) ([]models.Notification, error) {
	user, err := c.user(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.store.UserNotifications(ctx, user.ID)
}
