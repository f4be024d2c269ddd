// Command campaignd runs a campaign for a configured number of game days,
// saving state to SQLite as it goes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/engine"
	"github.com/talgya/warmarch/internal/rules"
	"github.com/talgya/warmarch/internal/scenario"
	"github.com/talgya/warmarch/internal/store"
)

func main() {
	// Missing .env is fine, the environment itself still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("campaignd failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DatabasePath, "run_id", db.RunID())

	r := rules.Default()
	c, err := loadOrGenerate(cfg, db, r)
	if err != nil {
		return err
	}

	eng := engine.New(c, r, logger)
	eng.OnDay = func(day int, summary engine.DaySummary) {
		report(c, day, summary)
		if cfg.SaveEvery > 0 && day%cfg.SaveEvery == 0 {
			if err := db.SaveCampaign(c); err != nil {
				slog.Error("periodic save failed", "day", day, "error", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("running campaign",
		"campaign", c.Name,
		"from_day", c.CurrentDay,
		"days", cfg.Days,
	)

	runErr := eng.RunDays(ctx, cfg.Days)
	if runErr != nil {
		slog.Warn("run interrupted", "reason", runErr)
	}

	if err := db.SaveCampaign(c); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	slog.Info("campaign stopped", "day", c.CurrentDay)
	return nil
}

// loadOrGenerate restores the campaign for the configured seed, or creates
// a fresh one when the database has no snapshot for it.
func loadOrGenerate(cfg *config.Config, db *store.DB, r rules.Rules) (*campaign.Campaign, error) {
	id := campaign.CampaignID(cfg.CampaignSeed)
	if c, err := db.LoadCampaign(id); err == nil {
		slog.Info("campaign restored", "campaign", c.Name, "day", c.CurrentDay)
		return c, nil
	}

	slog.Info("no saved campaign, generating", "seed", cfg.CampaignSeed)
	gen := scenario.Default()
	gen.Name = cfg.CampaignName
	gen.Seed = cfg.CampaignSeed
	gen.Width = cfg.MapWidth
	gen.Height = cfg.MapHeight
	gen.Factions = cfg.Factions
	gen.Rules = r

	c, err := scenario.Generate(gen)
	if err != nil {
		return nil, fmt.Errorf("generate scenario: %w", err)
	}
	slog.Info("campaign generated",
		"hexes", len(c.Map.Hexes),
		"strongholds", len(c.Strongholds),
		"factions", len(c.Factions),
		"armies", len(c.Armies),
	)
	if err := db.SaveCampaign(c); err != nil {
		return nil, fmt.Errorf("initial save: %w", err)
	}
	return c, nil
}

// report logs the end-of-day state of every army still in the field.
func report(c *campaign.Campaign, day int, summary engine.DaySummary) {
	slog.Info("day complete",
		"day", day,
		"orders_executed", summary.OrdersExecuted,
		"orders_failed", summary.OrdersFailed,
		"messages_delivered", summary.MessagesDelivered,
		"armies_starving", summary.ArmiesStarving,
		"events", summary.EventsEmitted,
	)
	for _, army := range c.Armies {
		if army.Status == campaign.Routed {
			continue
		}
		slog.Info("army report",
			"army", army.Name,
			"soldiers", humanize.Comma(int64(army.TotalSoldiers())),
			"supplies", humanize.Comma(int64(army.SuppliesCurrent)),
			"morale", fmt.Sprintf("%d/%d", army.MoraleCurrent, army.MoraleMax),
			"status", army.Status,
		)
	}
}
