package scenario

import (
	"encoding/json"
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
)

func TestGenerateValidation(t *testing.T) {
	cfg := Default()
	cfg.Width = 4
	if _, err := Generate(cfg); err == nil {
		t.Error("undersized map should be rejected")
	}

	cfg = Default()
	cfg.Factions = 1
	if _, err := Generate(cfg); err == nil {
		t.Error("single faction should be rejected")
	}

	cfg = Default()
	cfg.Factions = 7
	if _, err := Generate(cfg); err == nil {
		t.Error("more factions than the seed table should be rejected")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.Height = 32, 24

	first, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Error("same seed produced different campaigns")
	}
}

func TestGenerateShape(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.Height = 32, 24
	cfg.Factions = 2

	c, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(c.Map.Hexes) != 24*20 {
		t.Errorf("hexes = %d, want %d", len(c.Map.Hexes), 24*20)
	}
	if len(c.Factions) != 2 {
		t.Errorf("factions = %d, want 2", len(c.Factions))
	}
	if len(c.UnitTypes) == 0 || len(c.ShipTypes) == 0 {
		t.Error("catalogs should be populated")
	}
	if c.Season != campaign.Spring {
		t.Errorf("season = %v, want spring", c.Season)
	}

	// Every faction fields one starting army and holds at least one
	// stronghold, with its capital a city.
	for id, faction := range c.Factions {
		var armies, strongholds, cities int
		for _, a := range c.Armies {
			commander := c.Commanders[a.CommanderID]
			if commander != nil && commander.FactionID == id && a.Name != "" {
				armies++
			}
		}
		for _, s := range c.Strongholds {
			if s.ControllingFactionID == id {
				strongholds++
				if s.Type == campaign.City {
					cities++
				}
			}
		}
		if armies < 1 {
			t.Errorf("faction %s fields no army", faction.Name)
		}
		if strongholds < 1 {
			t.Errorf("faction %s holds no stronghold", faction.Name)
		}
		if cities < 1 {
			t.Errorf("faction %s has no capital city", faction.Name)
		}
	}

	for _, s := range c.Strongholds {
		hx := c.Map.Hexes[s.HexID]
		if hx == nil {
			t.Fatalf("stronghold %d on missing hex", s.ID)
		}
		if hx.Terrain == campaign.Water {
			t.Errorf("stronghold %d stands in water", s.ID)
		}
		if s.CurrentThreshold != s.Threshold {
			t.Errorf("stronghold %d thresholds diverge untouched", s.ID)
		}
		if hx.ControllingFactionID == nil || *hx.ControllingFactionID != s.ControllingFactionID {
			t.Errorf("stronghold %d hex not controlled by its faction", s.ID)
		}
	}
}

func TestGeneratedArmiesAreSupplied(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.Height = 32, 24

	c, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(c.Armies) == 0 {
		t.Fatal("no starting armies generated")
	}
	for _, a := range c.Armies {
		if a.TotalSoldiers() == 0 {
			t.Errorf("army %s is empty", a.Name)
		}
		if a.SuppliesCapacity <= 0 || a.DailySupplyConsumption <= 0 {
			t.Errorf("army %s has no supply figures", a.Name)
		}
		if a.SuppliesCurrent <= 0 || a.SuppliesCurrent > a.SuppliesCapacity {
			t.Errorf("army %s supplies %d outside (0, %d]", a.Name, a.SuppliesCurrent, a.SuppliesCapacity)
		}
		if a.MoraleCurrent != a.MoraleResting {
			t.Errorf("army %s starts off its resting morale", a.Name)
		}
	}
}
