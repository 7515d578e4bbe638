package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ThoughtKeyPrefix  = "thought:%d"
	RecentThoughtsKey = "thoughts:recent"
)

const (
	ThoughtTTL = 5 * time.Minute
	ListTTL    = 30 * time.Second
)

func ThoughtKey(thoughtID uint) string {
	return fmt.Sprintf(ThoughtKeyPrefix, thoughtID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateThought(ctx context.Context, thoughtID uint) {
	Invalidate(ctx, ThoughtKey(thoughtID))
}

func InvalidateRecentThoughts(ctx context.Context) {
	Invalidate(ctx, RecentThoughtsKey)
}
