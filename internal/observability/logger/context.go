package logger

import (
	"context"

	"go.uber.org/zap"
)

// Clave privada: solo este paquete puede guardar o pisar el logger del contexto.
type ctxKey struct{}

// ToContext guarda un logger scoped en el contexto. El middleware de logging
// lo usa para que handlers y services hereden los campos del request.
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From devuelve el logger del contexto, o el singleton si no hay ninguno.
// Siempre devuelve un logger usable, el caller no chequea nil.
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return L()
	}
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return L()
}
