package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	MayKeyPrefix    = "may:%d"
	LatestMayPrefix = "may:latest"
)

const (
	UserTTL      = 5 * time.Minute
	MayTTL       = 10 * time.Minute
	LatestMayTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func MayKey(mayID uint) string {
	return fmt.Sprintf(MayKeyPrefix, mayID)
}

func LatestMayKey() string {
	return LatestMayPrefix
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateMay(ctx context.Context, mayID uint) {
	Invalidate(ctx, MayKey(mayID))
	Invalidate(ctx, LatestMayKey())
}
