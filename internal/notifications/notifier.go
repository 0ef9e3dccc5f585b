// Package notifications publishes user-facing events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// EventRequestReviewed is the type of ReviewEvent payloads.
const EventRequestReviewed = "request_reviewed"

// ReviewEvent tells an organizer that one of their requests was reviewed.
type ReviewEvent struct {
	Type   string `json:"type"`
	Kind   string `json:"kind"`
	ID     uint   `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishReviewed announces a review decision to the request owner.
func (n *Notifier) PublishReviewed(ctx context.Context, ownerUserID uint, ev ReviewEvent) error {
	ev.Type = EventRequestReviewed
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.PublishUser(ctx, ownerUserID, string(payload))
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
