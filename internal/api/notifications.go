package api

import (
	"context"
	"time"
)

// Notification is a server-generated message for the user.
type Notification struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifications lists the user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var result struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := c.get(ctx, "/notifications", nil, &result); err != nil {
		return nil, err
	}
	return result.Notifications, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/notifications/"+id+"/read", nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/notifications/read-all", nil, nil)
}
