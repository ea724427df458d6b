package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eveoffline/server/internal/component"
	"github.com/eveoffline/server/internal/config"
	"github.com/eveoffline/server/internal/core/ecs"
	"github.com/eveoffline/server/internal/core/event"
	"github.com/eveoffline/server/internal/data"
	"github.com/eveoffline/server/internal/game"
	gonet "github.com/eveoffline/server/internal/net"
	"github.com/eveoffline/server/internal/persist"
	"github.com/eveoffline/server/internal/scripting"
	"github.com/eveoffline/server/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName, systemName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           EVE OFFLINE  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      authoritative space sim server       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mServer:\033[0m %s \033[90m(system: %s)\033[0m\n\n", serverName, systemName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config. A missing file is fine: defaults boot a playable server.
	cfgPath := "config/server.toml"
	if p := os.Getenv("EVEOFFLINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Defaults()
		cfg.Server.StartTime = time.Now().Unix()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.SystemName)

	// 3. Optional PostgreSQL for accounts and characters
	var acctRepo *persist.AccountRepo
	var charRepo *persist.CharacterRepo
	if cfg.Database.Enabled {
		printSection("Database")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		fmt.Println()

		acctRepo = persist.NewAccountRepo(db)
		charRepo = persist.NewCharacterRepo(db)
	}

	// 4. Load static data
	printSection("Data")

	shipTable, err := data.LoadShipTable(cfg.Game.ShipFile)
	if err != nil {
		return fmt.Errorf("load ship table: %w", err)
	}
	printStat("Ship hulls", shipTable.Count())

	spawnList, err := data.LoadSpawnList(cfg.Game.SpawnFile)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}
	printStat("NPC spawns", len(spawnList))

	universe, err := data.LoadUniverse(cfg.Game.UniverseFile)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}
	printStat("Solar systems", universe.Count())

	sys := universe.Get(cfg.Server.SystemName)
	if sys == nil {
		return fmt.Errorf("system %q not in universe catalog", cfg.Server.SystemName)
	}

	luaEngine, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua scripts loaded")
	fmt.Println()

	// 5. World, stores, event bus
	world := ecs.NewWorld()
	stores := component.NewStores(world)
	bus := event.NewBus()

	// 6. Network server
	netServer, err := gonet.NewServer(
		cfg.Network.BindAddress,
		cfg.Network.MaxConnections,
		cfg.Network.InQueueSize,
		cfg.Network.OutQueueSize,
		cfg.Network.MaxLineBytes,
		cfg.Network.WriteTimeout,
		log,
	)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	netServer.Start()

	// 7. Simulation systems
	movementSys := system.NewMovementSystem(world, stores, log)
	targetingSys := system.NewTargetingSystem(world, stores)
	capacitorSys := system.NewCapacitorSystem(stores)
	shieldSys := system.NewShieldRechargeSystem(stores)
	combatSys := system.NewCombatSystem(world, stores, bus, luaEngine, log)
	weaponSys := system.NewWeaponSystem(world, stores, capacitorSys, combatSys)
	aiSys := system.NewAISystem(world, stores, movementSys, targetingSys, shieldSys)
	cleanupSys := system.NewCleanupSystem(world)

	zones := make([]system.CollisionZone, 0, len(sys.Celestials))
	for _, cel := range sys.Celestials {
		zones = append(zones, system.CollisionZone{
			Name: cel.Name, X: cel.X, Y: cel.Y, Z: cel.Z, Radius: cel.Radius,
		})
	}
	movementSys.SetCollisionZones(zones)

	// 8. Game session layer
	g := game.NewGame(world, stores, cfg, shipTable, bus, luaEngine, netServer, movementSys, log)
	if charRepo != nil {
		g.SetRepos(acctRepo, charRepo)
	}
	combatSys.SetBroadcaster(g)
	cleanupSys.SetBroadcaster(g)

	// 9. World snapshot, then deterministic seeding around it
	printSection("World")

	codec := persist.NewCodec(world, stores, log)
	if cfg.Persistence.LoadOnBoot {
		if err := codec.LoadWorld(cfg.Persistence.WorldFile); err != nil {
			return fmt.Errorf("load world: %w", err)
		}
	}
	g.SeedUniverse(sys)
	g.SpawnNPCs(spawnList)
	printStat("Entities", world.Count())
	fmt.Println()

	persistSys := system.NewPersistenceSystem(
		cfg.Persistence.AutosaveInterval,
		func() error { return codec.SaveWorld(cfg.Persistence.WorldFile) },
		log,
	)
	if charRepo != nil {
		persistSys.SetCharacterSaver(g.SaveCharacters)
	}

	// Registration order is execution order within a phase. Regen before
	// AI so behavior decisions see this tick's shields and capacitor.
	world.AddSystem(system.NewInputSystem(netServer, g, cfg.Network.MaxMessagesPerTick))
	world.AddSystem(system.NewEventDispatchSystem(bus))
	world.AddSystem(capacitorSys)
	world.AddSystem(shieldSys)
	world.AddSystem(aiSys)
	world.AddSystem(targetingSys)
	world.AddSystem(movementSys)
	world.AddSystem(weaponSys)
	world.AddSystem(combatSys)
	world.AddSystem(system.NewOutputSystem(netServer, g))
	world.AddSystem(persistSys)
	world.AddSystem(cleanupSys)

	// 10. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("Server ready")
	printReady(fmt.Sprintf("listening on %s", netServer.Addr().String()))
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Network.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			world.Update(cfg.Network.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			if err := codec.SaveWorld(cfg.Persistence.WorldFile); err != nil {
				log.Error("final save failed", zap.Error(err))
			}
			if err := g.SaveCharacters(); err != nil {
				log.Error("character save failed", zap.Error(err))
			}
			netServer.Stop()
			log.Info("server stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
