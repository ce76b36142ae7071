// Seeder de desarrollo: carga productos de muestra y un usuario demo a
// través del mismo store que usa el API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/security/password"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/core"
)

var sampleProducts = []core.CreateProductInput{
	{Name: "Yerba mate orgánica 1kg", Description: "Yerba sin humo, estacionada 18 meses", Price: 8.50, Category: "almacen"},
	{Name: "Café de especialidad 250g", Description: "Tueste medio, notas a chocolate", Price: 12.00, Category: "almacen"},
	{Name: "Mochila urbana 25L", Description: "Resistente al agua, bolsillo para notebook", Price: 45.99, Category: "accesorios"},
	{Name: "Botella térmica 1L", Description: "Acero inoxidable, 24h frío / 12h calor", Price: 19.90, Category: "accesorios"},
	{Name: "Auriculares inalámbricos", Description: "Cancelación de ruido, 30h de batería", Price: 79.00, Category: "electronica"},
	{Name: "Cargador USB-C 65W", Description: "GaN, carga rápida para notebook y celular", Price: 35.00, Category: "electronica"},
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close(context.Background()) }()

	for _, in := range sampleProducts {
		p, err := repo.Products().Create(ctx, in)
		if err != nil {
			return fmt.Errorf("create product %q: %w", in.Name, err)
		}
		fmt.Printf("product %s  %s\n", p.ID, p.Name)
	}

	// Usuario demo (idempotente: si ya existe lo dejamos como está).
	demoUser := envOr("SEED_USERNAME", "demo")
	demoPass := envOr("SEED_PASSWORD", "demo1234")
	phc, err := password.Hash(password.Default, demoPass)
	if err != nil {
		return err
	}
	u, err := repo.Users().Create(ctx, demoUser, phc)
	switch {
	case err == nil:
		fmt.Printf("user %s  %s\n", u.ID, u.Username)
	case errors.Is(err, core.ErrDuplicate):
		fmt.Printf("user %s already exists, skipped\n", demoUser)
	default:
		return fmt.Errorf("create user %q: %w", demoUser, err)
	}

	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
