package ports

import (
	"context"
	"time"
)

// IMatchCache is a best-effort read-through cache for match results.
// Implementations swallow their own failures; a miss and a broken cache
// look the same to the caller.
type IMatchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}
