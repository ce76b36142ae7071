package rate

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter: fixed window en proceso, contadores sobre go-cache.
// El janitor de go-cache limpia ventanas vencidas solo.
type MemoryLimiter struct {
	c      *gocache.Cache
	prefix string
	max    int64
	window time.Duration
}

func NewMemoryLimiter(prefix string, q Quota) *MemoryLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &MemoryLimiter{
		c:      gocache.New(q.Window, time.Minute),
		prefix: prefix,
		max:    q.Max,
		window: q.Window,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(l.window)
	winEnd := winStart.Add(l.window)
	ck := fmt.Sprintf("%s%s:%d", l.prefix, key, winStart.Unix())

	var hits int64
	// Add falla si la key ya existe; en ese caso incrementamos.
	if err := l.c.Add(ck, int64(1), winEnd.Sub(now)); err == nil {
		hits = 1
	} else {
		n, ierr := l.c.IncrementInt64(ck, 1)
		if ierr != nil {
			// La entrada expiró entre Add e Increment: arrancar ventana nueva.
			l.c.Set(ck, int64(1), winEnd.Sub(now))
			n = 1
		}
		hits = n
	}

	allowed := hits <= l.max
	remaining := l.max - hits
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:     allowed,
		Remaining:   remaining,
		CurrentHits: hits,
		WindowTTL:   winEnd.Sub(now),
	}
	if !allowed {
		res.RetryAfter = winEnd.Sub(now)
	}
	return res, nil
}
