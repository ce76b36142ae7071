package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/store/core"
)

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = "cassandra"

	_, err := Open(context.Background(), cfg)
	if !errors.Is(err, core.ErrNotImplemented) {
		t.Fatalf("unknown driver: got %v want ErrNotImplemented", err)
	}
}
