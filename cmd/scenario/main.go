// Command scenario generates a fresh campaign from the configured seed and
// writes it to the database, printing a summary of what the seed produced.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/rules"
	"github.com/talgya/warmarch/internal/scenario"
	"github.com/talgya/warmarch/internal/store"
)

func main() {
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

	gen := scenario.Default()
	gen.Name = cfg.CampaignName
	gen.Seed = cfg.CampaignSeed
	gen.Width = cfg.MapWidth
	gen.Height = cfg.MapHeight
	gen.Factions = cfg.Factions
	gen.Rules = rules.Default()

	c, err := scenario.Generate(gen)
	if err != nil {
		slog.Error("generation failed", "seed", gen.Seed, "error", err)
		os.Exit(1)
	}

	printSummary(c)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("create data dir", "error", err)
			os.Exit(1)
		}
	}
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.SaveCampaign(c); err != nil {
		slog.Error("save failed", "error", err)
		os.Exit(1)
	}
	slog.Info("campaign written", "path", cfg.DatabasePath, "campaign", c.ID)
}

func printSummary(c *campaign.Campaign) {
	terrain := make(map[campaign.HexTerrain]int)
	settled := 0
	for _, hx := range c.Map.Hexes {
		terrain[hx.Terrain]++
		if hx.Settlement > 0 {
			settled++
		}
	}

	kinds := []campaign.HexTerrain{
		campaign.Flatland, campaign.Hills, campaign.Forest,
		campaign.Mountain, campaign.Water, campaign.Coast,
	}
	for _, t := range kinds {
		slog.Info("terrain", "type", t.String(), "hexes", terrain[t])
	}
	slog.Info("settlement", "settled_hexes", settled, "roads", len(c.Map.Roads))

	holds := make([]*campaign.Stronghold, 0, len(c.Strongholds))
	for _, sh := range c.Strongholds {
		holds = append(holds, sh)
	}
	sort.Slice(holds, func(i, j int) bool { return holds[i].ID < holds[j].ID })
	for _, sh := range holds {
		faction := c.Factions[sh.ControllingFactionID]
		name := "unclaimed"
		if faction != nil {
			name = faction.Name
		}
		slog.Info("stronghold",
			"name", sh.Name,
			"type", sh.Type.String(),
			"faction", name,
			"supplies", humanize.Comma(int64(sh.SuppliesHeld)),
		)
	}

	for _, army := range c.Armies {
		slog.Info("starting army",
			"name", army.Name,
			"soldiers", humanize.Comma(int64(army.TotalSoldiers())),
			"supplies", humanize.Comma(int64(army.SuppliesCurrent)),
		)
	}
}
