package orders

import (
	"strings"
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rules"
)

func testContext() (Context, *campaign.Campaign) {
	c := campaign.New(1, "dispatch test")
	c.CurrentDay = 5
	for q := 0; q < 5; q++ {
		id := campaign.HexID(q + 1)
		f := campaign.FactionID(2)
		hx := &campaign.Hex{ID: id, Q: q, R: 0, Terrain: campaign.Flatland, HasRoad: true}
		if q >= 2 {
			hx.ControllingFactionID = &f
		}
		c.Map.Hexes[id] = hx
	}
	c.UnitTypes[1] = &campaign.UnitType{
		ID: 1, Name: "Levy", Category: "infantry",
		BattleMultiplier: 1.0, SupplyCostPerDay: 1, CanTravelOffroad: true,
	}
	c.Factions[1] = &campaign.Faction{ID: 1, Name: "Verath"}
	c.Factions[2] = &campaign.Faction{ID: 2, Name: "Maraz"}

	hex1, hex3 := campaign.HexID(1), campaign.HexID(3)
	c.Commanders[1] = &campaign.Commander{ID: 1, Name: "Attacker", FactionID: 1, CurrentHexID: &hex1}
	c.Commanders[2] = &campaign.Commander{ID: 2, Name: "Castellan", FactionID: 2, CurrentHexID: &hex3}

	c.Armies[1] = fieldArmy(1, 1, 1)
	c.Armies[2] = fieldArmy(2, 2, 3)

	garrison := campaign.ArmyID(2)
	c.Strongholds[1] = &campaign.Stronghold{
		ID: 1, Name: "Stonegate", HexID: 3, Type: campaign.Town,
		ControllingFactionID: 2, DefensiveBonus: 1,
		Threshold: 10, CurrentThreshold: 10,
		GarrisonArmyID: &garrison,
	}
	return Context{Campaign: c, Part: campaign.Morning, Rules: rules.Default()}, c
}

func fieldArmy(id campaign.ArmyID, commander campaign.CommanderID, hex campaign.HexID) *campaign.Army {
	return &campaign.Army{
		ID: id, CommanderID: commander, CurrentHexID: hex,
		Status:                  campaign.Idle,
		MoraleCurrent:           9,
		MoraleResting:           9,
		MoraleMax:               12,
		MovementPointsRemaining: 1.0,
		SuppliesCurrent:         1000,
		SuppliesCapacity:        20000,
		NoncombatantCount:       200,
		Detachments: []campaign.Detachment{
			{ID: campaign.DetachmentID(id * 10), UnitTypeID: 1, Soldiers: 1000},
		},
	}
}

func newOrder(id campaign.OrderID, kind campaign.OrderKind, armyID campaign.ArmyID, params map[string]any) *campaign.Order {
	o := &campaign.Order{ID: id, CommanderID: 1, Kind: kind, Parameters: params}
	if armyID != 0 {
		a := armyID
		o.ArmyID = &a
	}
	return o
}

func TestExecuteOrderTerminalNoop(t *testing.T) {
	ctx, _ := testContext()
	order := newOrder(1, campaign.OrderRest, 1, nil)
	order.Status = campaign.OrderCompleted

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted || result.Detail != "order already resolved" {
		t.Errorf("got %+v", result)
	}
}

func TestExecuteOrderArmyMissing(t *testing.T) {
	ctx, _ := testContext()
	order := newOrder(1, campaign.OrderRest, 9, nil)

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderFailed || result.Detail != "army 9 not found" {
		t.Errorf("got %+v", result)
	}
	if order.Status != campaign.OrderFailed || order.Result == nil {
		t.Error("failure should be written back onto the order")
	}
}

func TestExecuteOrderUnknownKind(t *testing.T) {
	ctx, _ := testContext()
	order := newOrder(1, campaign.OrderKind(99), 1, nil)

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderFailed {
		t.Fatalf("status = %v", result.Status)
	}
	if !strings.HasPrefix(result.Detail, "unsupported order type") {
		t.Errorf("detail = %q", result.Detail)
	}
}

func TestMoveOrderPlansRouteToDestination(t *testing.T) {
	ctx, c := testContext()
	c.Map.Roads = []campaign.RoadEdge{
		{FromHexID: 1, ToHexID: 2, Status: "open"},
		{FromHexID: 2, ToHexID: 3, Status: "open"},
	}
	order := newOrder(1, campaign.OrderMove, 1, map[string]any{
		"destination_hex_id": 3,
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted {
		t.Fatalf("move failed: %s", result.Detail)
	}
	if result.Detail != "moved to hex 3 via 2 leg(s)" {
		t.Errorf("detail = %q", result.Detail)
	}

	army := c.Armies[1]
	if army.CurrentHexID != 3 {
		t.Errorf("army at hex %d, want 3", army.CurrentHexID)
	}
	// Two 6-mile road legs consume the whole 12-mile road day.
	if army.MovementPointsRemaining != 0 {
		t.Errorf("movement remaining = %v, want 0", army.MovementPointsRemaining)
	}
}

func TestMoveOrderDestinationUnknownHex(t *testing.T) {
	ctx, _ := testContext()
	order := newOrder(1, campaign.OrderMove, 1, map[string]any{
		"destination_hex_id": 99,
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderFailed {
		t.Fatalf("status = %v, want failed", result.Status)
	}
	if !strings.Contains(result.Detail, "route destination hex 99 not found") {
		t.Errorf("detail = %q", result.Detail)
	}
}

func TestMoveOrderAlongRoad(t *testing.T) {
	ctx, c := testContext()
	order := newOrder(1, campaign.OrderMove, 1, map[string]any{
		"legs": []map[string]any{{"to_hex_id": 2, "distance_miles": 12}},
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted {
		t.Fatalf("move failed: %s", result.Detail)
	}
	if result.Detail != "moved to hex 2 via 1 leg(s)" {
		t.Errorf("detail = %q", result.Detail)
	}

	army := c.Armies[1]
	if army.CurrentHexID != 2 {
		t.Errorf("army at hex %d, want 2", army.CurrentHexID)
	}
	if army.Status != campaign.Marching {
		t.Errorf("status = %v, want marching", army.Status)
	}
	// A full 12-mile road day uses the whole allowance.
	if army.MovementPointsRemaining != 0 {
		t.Errorf("movement remaining = %v, want 0", army.MovementPointsRemaining)
	}
	if army.DaysMarchedThisWeek != 1 {
		t.Errorf("days marched = %d, want 1", army.DaysMarchedThisWeek)
	}
}

func TestMoveOrderRejectsUnknownField(t *testing.T) {
	ctx, _ := testContext()
	order := newOrder(1, campaign.OrderMove, 1, map[string]any{
		"legs":  []map[string]any{{"to_hex_id": 2, "distance_miles": 12}},
		"bogus": true,
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderFailed {
		t.Fatal("unknown payload field should fail the order")
	}
	if !strings.Contains(result.Detail, "decode parameters") {
		t.Errorf("detail = %q", result.Detail)
	}
}

func TestMoveOrderExceedsAllowance(t *testing.T) {
	ctx, _ := testContext()
	order := newOrder(1, campaign.OrderMove, 1, map[string]any{
		"legs": []map[string]any{
			{"to_hex_id": 2, "distance_miles": 12},
			{"to_hex_id": 3, "distance_miles": 12},
		},
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderFailed || result.Detail != "movement exceeds daily allowance" {
		t.Errorf("got %+v", result)
	}
}

func TestRestOrderRestoresMorale(t *testing.T) {
	ctx, c := testContext()
	c.Armies[1].MoraleCurrent = 5
	order := newOrder(1, campaign.OrderRest, 1, map[string]any{"duration_days": 3})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted || result.Detail != "resting for 3 day(s)" {
		t.Fatalf("got %+v", result)
	}

	army := c.Armies[1]
	if army.Status != campaign.Resting {
		t.Errorf("status = %v, want resting", army.Status)
	}
	if army.MoraleCurrent != 9 {
		t.Errorf("morale = %d, want restored to 9", army.MoraleCurrent)
	}
	if army.RestDurationDays == nil || *army.RestDurationDays != 3 {
		t.Error("rest duration not recorded")
	}
}

func TestRestOrderBlockedWhenHarriedToday(t *testing.T) {
	ctx, c := testContext()
	c.Armies[1].StatusEffects.Harried = &campaign.HarriedEffect{Day: c.CurrentDay}
	order := newOrder(1, campaign.OrderRest, 1, nil)

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderFailed || result.Detail != "army is harried and cannot rest today" {
		t.Errorf("got %+v", result)
	}
}

func TestSupplyTransferClampsToStockAndCapacity(t *testing.T) {
	ctx, c := testContext()
	c.Armies[1].SuppliesCurrent = 100
	c.Armies[2].SuppliesCapacity = 1000
	c.Armies[2].SuppliesCurrent = 940

	order := newOrder(1, campaign.OrderSupplyTransfer, 1, map[string]any{
		"target_army_id": 2, "amount": 500,
	})
	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted || result.Detail != "transferred 60 supplies to army 2" {
		t.Fatalf("got %+v", result)
	}
	if c.Armies[1].SuppliesCurrent != 40 || c.Armies[2].SuppliesCurrent != 1000 {
		t.Errorf("supplies = %d / %d", c.Armies[1].SuppliesCurrent, c.Armies[2].SuppliesCurrent)
	}
}

func TestSupplyTransferNothingToGive(t *testing.T) {
	ctx, c := testContext()
	c.Armies[2].SuppliesCurrent = c.Armies[2].SuppliesCapacity

	order := newOrder(1, campaign.OrderSupplyTransfer, 1, map[string]any{
		"target_army_id": 2, "amount": 200,
	})
	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderFailed || result.Detail != "no supplies transferable" {
		t.Errorf("got %+v", result)
	}
}

func TestBesiegeOpensSiege(t *testing.T) {
	ctx, c := testContext()
	order := newOrder(1, campaign.OrderBesiege, 1, map[string]any{
		"stronghold_id": 1, "siege_engines": 2,
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted || result.Detail != "besieging stronghold 1" {
		t.Fatalf("got %+v", result)
	}
	if len(c.Sieges) != 1 {
		t.Fatalf("sieges = %d, want 1", len(c.Sieges))
	}
	for _, s := range c.Sieges {
		if s.StrongholdID != 1 || len(s.AttackerArmyIDs) != 1 || s.AttackerArmyIDs[0] != 1 {
			t.Errorf("siege = %+v", s)
		}
		if s.CurrentThreshold != 10 || s.SiegeEnginesCount != 2 {
			t.Errorf("siege figures = %+v", s)
		}
	}
	if c.Armies[1].Status != campaign.Besieging {
		t.Errorf("army status = %v, want besieging", c.Armies[1].Status)
	}
}

func TestAssaultCapturesStronghold(t *testing.T) {
	ctx, c := testContext()
	order := newOrder(1, campaign.OrderAssault, 1, map[string]any{
		"stronghold_id":       1,
		"attacker_fixed_roll": 12,
		"defender_fixed_roll": 2,
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted {
		t.Fatalf("assault failed: %s", result.Detail)
	}
	if !strings.HasPrefix(result.Detail, "assault result: attacker") {
		t.Fatalf("detail = %q", result.Detail)
	}

	sh := c.Strongholds[1]
	if sh.ControllingFactionID != 1 {
		t.Errorf("stronghold faction = %d, want 1", sh.ControllingFactionID)
	}
	if !sh.GatesOpen {
		t.Error("captured stronghold should stand open")
	}
	if sh.GarrisonArmyID == nil || *sh.GarrisonArmyID != 1 {
		t.Error("victor should garrison the stronghold")
	}

	attacker, defender := c.Armies[1], c.Armies[2]
	// Winner loses 5%; the loser takes 20% then the extra assault toll.
	if got := attacker.Detachments[0].Soldiers; got != 950 {
		t.Errorf("attacker soldiers = %d, want 950", got)
	}
	if got := defender.Detachments[0].Soldiers; got != 720 {
		t.Errorf("defender soldiers = %d, want 720", got)
	}
	if defender.Status != campaign.Routed {
		t.Errorf("defender status = %v, want routed", defender.Status)
	}
	// Town capture brings camp followers in proportion to the train.
	if attacker.NoncombatantCount != 220 {
		t.Errorf("noncombatants = %d, want 220", attacker.NoncombatantCount)
	}

	castellan := c.Commanders[2]
	escaped := castellan.Status == campaign.CommanderEscaped
	captured := castellan.Status == campaign.CommanderCaptured
	if escaped == captured {
		t.Errorf("castellan should either escape or be captured: %+v", castellan)
	}
	if escaped && castellan.CurrentHexID != nil {
		t.Errorf("escaped castellan still placed at hex %d", *castellan.CurrentHexID)
	}
}

func TestAssaultRepelled(t *testing.T) {
	ctx, c := testContext()
	order := newOrder(1, campaign.OrderAssault, 1, map[string]any{
		"stronghold_id":       1,
		"attacker_fixed_roll": 6,
		"defender_fixed_roll": 7,
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted || result.Detail != "assault result: defender" {
		t.Fatalf("got %+v", result)
	}

	sh := c.Strongholds[1]
	if sh.ControllingFactionID != 2 {
		t.Errorf("stronghold should hold, faction = %d", sh.ControllingFactionID)
	}
	// Beaten attacker pays the extra assault toll on top of battle losses.
	if got := c.Armies[1].Detachments[0].Soldiers; got != 810 {
		t.Errorf("attacker soldiers = %d, want 810", got)
	}
	if got := c.Armies[2].Detachments[0].Soldiers; got != 950 {
		t.Errorf("defender soldiers = %d, want 950", got)
	}
	if c.Armies[1].Status != campaign.Idle {
		t.Errorf("attacker status = %v, want idle", c.Armies[1].Status)
	}
}

func TestSendMessageOrder(t *testing.T) {
	ctx, c := testContext()
	order := newOrder(1, campaign.OrderSendMessage, 1, map[string]any{
		"recipient_id": 2, "content": "hold the gate",
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderCompleted {
		t.Fatalf("got %+v", result)
	}
	if len(c.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(c.Messages))
	}
	for _, msg := range c.Messages {
		if msg.SenderID != 1 || msg.RecipientID != 2 || msg.Status != campaign.MessageInTransit {
			t.Errorf("message = %+v", msg)
		}
	}
}

func TestHarryOrderValidation(t *testing.T) {
	ctx, _ := testContext()

	order := newOrder(1, campaign.OrderHarry, 1, map[string]any{"target_army_id": 2})
	if result := ExecuteOrder(ctx, order); result.Status != campaign.OrderFailed ||
		result.Detail != "harry order requires detachment_ids" {
		t.Errorf("got %+v", result)
	}

	order = newOrder(2, campaign.OrderHarry, 1, map[string]any{
		"target_army_id": 2, "detachment_ids": []int{999},
	})
	if result := ExecuteOrder(ctx, order); result.Status != campaign.OrderFailed ||
		result.Detail != "no matching detachments for harrying" {
		t.Errorf("got %+v", result)
	}
}

func TestRaiseArmyTwoPhase(t *testing.T) {
	ctx, c := testContext()
	// Settle the stronghold's catchment for the muster.
	c.Map.Hexes[3].Settlement = 600
	c.Strongholds[1].ControllingFactionID = 2

	order := newOrder(1, campaign.OrderRaiseArmy, 0, map[string]any{
		"stronghold_id":         1,
		"new_commander_id":      2,
		"infantry_unit_type_id": 1,
		"army_name":             "Second Host",
	})

	result := ExecuteOrder(ctx, order)
	if result.Status != campaign.OrderExecuting {
		t.Fatalf("start phase: %+v", result)
	}
	if order.Scheduled == nil {
		t.Fatal("order should link its recruitment project")
	}
	wantDay := c.CurrentDay + ctx.Rules.Recruitment.MusterDurationDays
	if order.ExecuteDay == nil || *order.ExecuteDay != wantDay {
		t.Errorf("ExecuteDay = %v, want %d", order.ExecuteDay, wantDay)
	}

	// Re-running before the muster finishes keeps the order alive.
	mid := ExecuteOrder(ctx, order)
	if mid.Status != campaign.OrderExecuting {
		t.Fatalf("mid phase: %+v", mid)
	}

	c.CurrentDay = wantDay
	done := ExecuteOrder(ctx, order)
	if done.Status != campaign.OrderCompleted {
		t.Fatalf("completion phase: %+v", done)
	}
	if !strings.Contains(done.Detail, "Second Host") {
		t.Errorf("detail = %q", done.Detail)
	}

	var raised *campaign.Army
	for _, a := range c.Armies {
		if a.Name == "Second Host" {
			raised = a
		}
	}
	if raised == nil {
		t.Fatal("mustered army not found")
	}
	if raised.Detachments[0].Soldiers != 600 {
		t.Errorf("soldiers = %d, want 600", raised.Detachments[0].Soldiers)
	}
	if len(c.Recruitments) != 0 {
		t.Error("finished project should be removed")
	}
}
