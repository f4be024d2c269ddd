package store

import (
	"path/filepath"
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "warmarch.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleCampaign() *campaign.Campaign {
	c := campaign.New(11, "The Long March")
	c.CurrentDay = 4
	c.Map.Hexes[1] = &campaign.Hex{ID: 1, Q: 0, R: 0, Terrain: campaign.Flatland, Settlement: 500}
	c.Factions[1] = &campaign.Faction{ID: 1, Name: "Verath", Color: "#aa2222"}

	hex1 := campaign.HexID(1)
	c.Commanders[1] = &campaign.Commander{ID: 1, Name: "Marshal", FactionID: 1, CurrentHexID: &hex1}
	c.Armies[1] = &campaign.Army{
		ID: 1, Name: "First Host", CommanderID: 1, CurrentHexID: 1,
		MoraleCurrent: 9, MoraleResting: 9, MoraleMax: 12,
		SuppliesCurrent: 7000,
		Detachments:     []campaign.Detachment{{ID: 1, UnitTypeID: 1, Soldiers: 1200}},
	}

	armyID := campaign.ArmyID(1)
	c.Orders[1] = &campaign.Order{
		ID: 1, ArmyID: &armyID, CommanderID: 1,
		Kind: campaign.OrderMove, Status: campaign.OrderCompleted,
		IssuedSeq: 1,
		Result:    &campaign.OrderResult{Detail: "moved to hex 2 via 1 leg(s)"},
	}

	c.EmitEvent("weather_change", "weather changed to rain", map[string]any{"weather_type": "rain"})
	c.EmitEvent("harry", "harrying success", nil)
	return c
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	c := sampleCampaign()

	if err := db.SaveCampaign(c); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	loaded, err := db.LoadCampaign(11)
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if loaded.Name != "The Long March" || loaded.CurrentDay != 4 {
		t.Errorf("loaded = %s day %d", loaded.Name, loaded.CurrentDay)
	}
	if len(loaded.Armies) != 1 || loaded.Armies[1].Detachments[0].Soldiers != 1200 {
		t.Error("army snapshot did not survive the round trip")
	}
	if loaded.Map.Hexes[1] == nil || loaded.Map.Hexes[1].Settlement != 500 {
		t.Error("map snapshot did not survive the round trip")
	}
	order := loaded.Orders[1]
	if order == nil || order.Status != campaign.OrderCompleted || order.Result == nil {
		t.Errorf("order snapshot = %+v", order)
	}
}

func TestLoadMissingCampaign(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadCampaign(404); err == nil {
		t.Fatal("loading an unknown campaign should fail")
	}
}

func TestSaveIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	c := sampleCampaign()

	if err := db.SaveCampaign(c); err != nil {
		t.Fatalf("first save: %v", err)
	}
	c.CurrentDay = 9
	c.EmitEvent("siege_gates_opened", "stronghold gates opened under siege", nil)
	if err := db.SaveCampaign(c); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := db.LoadCampaign(11)
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if loaded.CurrentDay != 9 {
		t.Errorf("day = %d, want latest save", loaded.CurrentDay)
	}

	// Events insert with IGNORE, so re-saving must not duplicate them.
	events, err := db.RecentEvents(11, 10)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("events = %d, want 3", len(events))
	}
	if events[0].Type != "siege_gates_opened" {
		t.Errorf("newest event = %q", events[0].Type)
	}
}

func TestListCampaigns(t *testing.T) {
	db := openTestDB(t)

	first := sampleCampaign()
	second := campaign.New(12, "Northern Front")
	if err := db.SaveCampaign(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.SaveCampaign(second); err != nil {
		t.Fatalf("save: %v", err)
	}

	list, err := db.ListCampaigns()
	if err != nil {
		t.Fatalf("ListCampaigns: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("campaigns = %d, want 2", len(list))
	}
	if list[0].ID != 11 || list[1].ID != 12 {
		t.Errorf("order = %d, %d", list[0].ID, list[1].ID)
	}
	if list[1].Name != "Northern Front" || list[1].Status != "active" {
		t.Errorf("summary = %+v", list[1])
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("schema_version", "1"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := db.SaveMeta("schema_version", "2"); err != nil {
		t.Fatalf("SaveMeta overwrite: %v", err)
	}
	got, err := db.GetMeta("schema_version")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if got != "2" {
		t.Errorf("value = %q, want 2", got)
	}
	if _, err := db.GetMeta("missing"); err == nil {
		t.Error("missing key should error")
	}
}
