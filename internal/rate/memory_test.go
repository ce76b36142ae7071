package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_EnforcesQuota(t *testing.T) {
	l := NewMemoryLimiter("test:", Quota{Max: 3, Window: time.Hour})
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow err: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d within quota must pass", i)
		}
		if res.Remaining != int64(3-i) {
			t.Fatalf("request %d: remaining got %d want %d", i, res.Remaining, 3-i)
		}
	}

	res, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("Allow err: %v", err)
	}
	if res.Allowed {
		t.Fatal("request over quota must be rejected")
	}
	if res.Remaining != 0 {
		t.Fatalf("remaining after rejection got %d want 0", res.Remaining)
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("RetryAfter must be positive, got %v", res.RetryAfter)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter("test:", Quota{Max: 1, Window: time.Hour})
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "1.1.1.1"); !res.Allowed {
		t.Fatal("first hit for key A must pass")
	}
	if res, _ := l.Allow(ctx, "1.1.1.1"); res.Allowed {
		t.Fatal("second hit for key A must be rejected")
	}
	// Otra IP no comparte el contador
	if res, _ := l.Allow(ctx, "2.2.2.2"); !res.Allowed {
		t.Fatal("first hit for key B must pass")
	}
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	l := NewMemoryLimiter("test:", Quota{Max: 1, Window: 200 * time.Millisecond})
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "1.2.3.4"); !res.Allowed {
		t.Fatal("first hit must pass")
	}
	if res, _ := l.Allow(ctx, "1.2.3.4"); res.Allowed {
		t.Fatal("second hit in the same window must be rejected")
	}

	// Pasada la ventana el contador arranca de cero.
	time.Sleep(250 * time.Millisecond)
	if res, _ := l.Allow(ctx, "1.2.3.4"); !res.Allowed {
		t.Fatal("hit in a fresh window must pass")
	}
}
