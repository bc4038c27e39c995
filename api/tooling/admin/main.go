// This program performs administrative tasks for the dienstplan service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	"github.com/wachdienst/dienstplan/app/sdk/auth"
	"github.com/wachdienst/dienstplan/business/sdk/dbmigrate"
	"github.com/wachdienst/dienstplan/business/sdk/sqldb"
	"github.com/wachdienst/dienstplan/business/types/role"
	"github.com/wachdienst/dienstplan/foundation/keystore"
	"github.com/wachdienst/dienstplan/foundation/logger"
)

type Config struct {
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"foundation/zarf/keys"`
		ActiveKID  string `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string `envconfig:"AUTH_ISSUER" default:"https://wachdienst.de/auth/"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"dienstplan"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, seed, gentoken")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, cfg)
	case "seed":
		return runSeed(ctx, cfg)
	case "gentoken":
		return runGenToken(cfg, log, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func openDB(cfg Config) (*sqlx.DB, error) {
	return sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
}

func runMigrate(ctx context.Context, cfg Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	if err := dbmigrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runSeed(ctx context.Context, cfg Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	if err := dbmigrate.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	fmt.Println("seed data complete")
	return nil
}

func runGenToken(cfg Config, log *logger.Logger, args []string) error {
	cmd := flag.NewFlagSet("gentoken", flag.ExitOnError)
	actorIDStr := cmd.String("actor-id", "", "Actor UUID (Required)")
	tenantIDStr := cmd.String("tenant-id", "", "Tenant UUID (Required)")
	kindStr := cmd.String("kind", "employee", "Actor kind (provider, employee)")
	roleStr := cmd.String("role", "worker", "Employee role (worker, team_lead, obj_lead)")
	cmd.Parse(args)

	if *actorIDStr == "" || *tenantIDStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required IDs")
	}

	actorID, err := uuid.Parse(*actorIDStr)
	if err != nil {
		return fmt.Errorf("invalid actor uuid: %w", err)
	}

	tenantID, err := uuid.Parse(*tenantIDStr)
	if err != nil {
		return fmt.Errorf("invalid tenant uuid: %w", err)
	}

	kind, err := auth.ParseKind(*kindStr)
	if err != nil {
		return fmt.Errorf("invalid kind: %w", err)
	}

	actor := auth.Actor{
		ID:       actorID,
		Kind:     kind,
		TenantID: tenantID,
	}

	if kind == auth.KindEmployee {
		r, err := role.Parse(*roleStr)
		if err != nil {
			return fmt.Errorf("invalid role: %w", err)
		}
		actor.Role = r
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	ath, err := auth.New(auth.Config{
		Log:       log,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
		ActiveKID: cfg.Auth.ActiveKID,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	token, err := ath.GenerateToken(actor)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Printf("\nTOKEN:\n%s\n", token)
	return nil
}
