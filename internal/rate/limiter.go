// Package rate implementa limitación de requests por ventana fija (fixed window).
//
// Hay dos backends con el mismo algoritmo (contador por key + inicio de
// ventana, expirando al cerrar la ventana):
//
//   - memory: contadores en proceso (go-cache). Cada listener tiene su propia
//     cuota; no se comparte estado entre procesos.
//   - redis: INCR + EXPIRE, para compartir cuotas entre los listeners de
//     product y auth cuando corren como procesos separados.
package rate

import (
	"context"
	"time"
)

// Result contiene el resultado de una consulta al limiter.
type Result struct {
	Allowed     bool
	Remaining   int64
	RetryAfter  time.Duration
	WindowTTL   time.Duration
	CurrentHits int64
}

// Limiter decide si un request identificado por key puede pasar ahora.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Quota define una clase de cuota: máximo de requests por ventana.
type Quota struct {
	Max    int64
	Window time.Duration
}
