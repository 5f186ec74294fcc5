// Package notifications publishes moderation events to per-user Redis
// channels so clients and workers can react without polling.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"medialane/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Event types published by the admin surface.
const (
	ArticleApproved   = "article.approved"
	ArticleDisabled   = "article.disabled"
	ArticleFeatured   = "article.featured"
	ArticleUnfeatured = "article.unfeatured"
	VideoApproved     = "video.approved"
	VideoDisabled     = "video.disabled"
	AccountBlocked    = "account.blocked"
	AccountUnblocked  = "account.unblocked"
)

// Event is the JSON payload of a notification.
type Event struct {
	Type       string    `json:"type"`
	ResourceID uint      `json:"resourceId"`
	Slug       string    `json:"slug,omitempty"`
	At         time.Time `json:"at"`
}

// UserChannel is the channel carrying events for one user.
func UserChannel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, now: time.Now}
}

// PublishUser sends an event to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, event Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if event.At.IsZero() {
		event.At = n.now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// Notify publishes and logs failures instead of returning them. Delivery is
// best effort; the moderation action already succeeded.
func (n *Notifier) Notify(ctx context.Context, userID uint, event Event) {
	if err := n.PublishUser(ctx, userID, event); err != nil {
		middleware.Logger.WarnContext(ctx, "notification publish failed",
			"type", event.Type, "user_id", userID, "error", err)
	}
}

// StartUserSubscriber subscribes to every user channel and calls onMessage
// for each incoming event until ctx is done.
func (n *Notifier) StartUserSubscriber(
	ctx context.Context, onMessage func(userChannel string, event Event),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*")
	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("dropping malformed notification", "channel", msg.Channel, "error", err)
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in notification subscriber",
								"panic", r, "stack", string(debug.Stack()))
						}
					}()
					onMessage(msg.Channel, event)
				}()
			}
		}
	}()

	return nil
}
