// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/househunt/go-backend/internal/config"
	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/property"
	"github.com/househunt/go-backend/internal/user"
)

var demoProperties = []property.Property{
	{
		Title:       "Cozy Apartment in Banjara Hills",
		Description: "A peaceful 2BHK with great view.",
		Location:    "Hyderabad",
		Rent:        20000,
		Type:        property.TypeApartment,
	},
	{
		Title:       "Luxury Villa in Jubilee Hills",
		Description: "Spacious 5BHK with a pool and garden.",
		Location:    "Hyderabad",
		Rent:        120000,
		Type:        property.TypeVilla,
	},
	{
		Title:       "1BHK Near Hitech City",
		Description: "Perfect for working professionals.",
		Location:    "Hyderabad",
		Rent:        15000,
		Type:        property.TypeApartment,
	},
}

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	reset := flag.Bool("reset", false, "delete every existing property first")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	if err := run(*configPath, *reset); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, reset bool) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	if err := core.Migrate(ctx, db.DB); err != nil {
		return err
	}

	owner, err := user.NewRepository(db.DB).FirstByRole(ctx, user.RoleOwner)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("no owner user found, register an owner first")
	}
	if err != nil {
		return err
	}

	var inserted int
	err = core.InTx(ctx, db.DB, func(tx *sqlx.Tx) error {
		repo := property.NewRepository(tx)

		if reset {
			removed, err := repo.DeleteAll(ctx)
			if err != nil {
				return err
			}
			slog.Info("cleared properties", "count", removed)
		}

		for _, demo := range demoProperties {
			p := demo
			p.ID = uuid.New().String()
			p.OwnerID = owner.ID
			if err := repo.Create(ctx, &p); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("demo properties inserted",
		"count", inserted,
		"owner_id", owner.ID,
	)
	return nil
}
