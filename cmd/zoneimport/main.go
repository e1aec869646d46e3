// zoneimport moves zone maps between YAML files and PostgreSQL.
//
// Usage:
//
//	go run ./cmd/zoneimport -file data/zones.yaml
//	go run ./cmd/zoneimport -file data/zones.yaml -dry-run
//	go run ./cmd/zoneimport -export data/zones.yaml -map "Kessel Valley"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/frontline/internal/config"
	"github.com/udisondev/frontline/internal/data"
	"github.com/udisondev/frontline/internal/db"
	"github.com/udisondev/frontline/internal/game/gamemode"
	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/model"
)

func main() {
	file := flag.String("file", "", "zone YAML file to import")
	export := flag.String("export", "", "write zones from the database to this YAML file")
	mapName := flag.String("map", "", "map name for -export")
	cfgPath := flag.String("config", config.ResolvePath("config/frontline.yaml"), "server config (database and gamemode)")
	dryRun := flag.Bool("dry-run", false, "validate the file and build a test rotation without touching the database")
	flag.Parse()

	if (*file == "") == (*export == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -file and -export is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	if *file != "" {
		err = importFile(ctx, *cfgPath, *file, *dryRun)
	} else {
		err = exportFile(ctx, *cfgPath, *export, *mapName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func importFile(ctx context.Context, cfgPath, path string, dryRun bool) error {
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	models, err := data.LoadZoneFile(path)
	if err != nil {
		return err
	}
	flags, err := checkPlayable(cfg.Gamemode, models)
	if err != nil {
		return err
	}
	fmt.Printf("zones:     %d\n", len(models))
	fmt.Printf("flags:     %d\n", flags)

	if dryRun {
		fmt.Println("(dry-run, database not modified)")
		return nil
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if err := database.Zones().SaveAll(ctx, models); err != nil {
		return err
	}
	fmt.Printf("imported:  %d\n", len(models))
	return nil
}

// checkPlayable loads the zones and rolls one rotation, so a map that can
// never start a match is rejected before it reaches the database.
func checkPlayable(cfg config.Gamemode, models []zone.Model) (int, error) {
	zones := zone.NewManager(zone.Options{PerimeterSpacing: cfg.PerimeterSpacing})
	if err := zones.Load(models); err != nil {
		return 0, err
	}

	game, err := gamemode.New(cfg, zones, model.NewRegistry())
	if err != nil {
		return 0, err
	}
	if err := game.Load(); err != nil {
		return 0, err
	}
	if err := game.StartMatch(); err != nil {
		return 0, fmt.Errorf("map cannot start a match: %w", err)
	}
	return len(game.Flags()), nil
}

func exportFile(ctx context.Context, cfgPath, path, mapName string) error {
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	models, err := database.Zones().LoadAll(ctx)
	if err != nil {
		return err
	}
	if err := data.WriteZoneFile(path, mapName, models); err != nil {
		return err
	}
	fmt.Printf("exported:  %d\n", len(models))
	return nil
}
