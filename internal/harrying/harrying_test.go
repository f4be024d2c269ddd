package harrying

import (
	"errors"
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
)

func testCampaign() (*campaign.Campaign, *campaign.Army, *campaign.Army) {
	c := campaign.New(1, "harrying test")
	c.CurrentDay = 10
	c.UnitTypes[1] = &campaign.UnitType{ID: 1, Name: "Levy", Category: "infantry"}
	c.UnitTypes[2] = &campaign.UnitType{
		ID: 2, Name: "Outriders", Category: "cavalry",
		SpecialAbilities: map[string]bool{campaign.AbilitySkirmisher: true},
	}

	attacker := &campaign.Army{
		ID: 1, CurrentHexID: 1, MoraleCurrent: 9, MoraleResting: 9, MoraleMax: 12,
		MovementPointsRemaining: 1.0,
		SuppliesCapacity:        5000,
	}
	target := &campaign.Army{
		ID: 2, CurrentHexID: 2, MoraleCurrent: 9, MoraleResting: 9, MoraleMax: 12,
		MovementPointsRemaining: 1.0,
		SuppliesCurrent:         3000,
		SuppliesCapacity:        5000,
		LootCarried:             400,
		NoncombatantCount:       200,
		Detachments: []campaign.Detachment{
			{ID: 10, UnitTypeID: 1, Soldiers: 800},
		},
	}
	c.Armies[1] = attacker
	c.Armies[2] = target
	return c, attacker, target
}

func TestResolveInputValidation(t *testing.T) {
	c, attacker, target := testCampaign()

	if _, err := Resolve(c, attacker, target, nil, ObjectiveKill); !errors.Is(err, ErrNoDetachments) {
		t.Errorf("empty raid: err = %v", err)
	}

	empty := []*campaign.Detachment{{ID: 1, UnitTypeID: 2, Soldiers: 0}}
	if _, err := Resolve(c, attacker, target, empty, ObjectiveKill); !errors.Is(err, ErrNoSoldiers) {
		t.Errorf("soldierless raid: err = %v", err)
	}

	riders := []*campaign.Detachment{{ID: 1, UnitTypeID: 2, Soldiers: 100}}
	if _, err := Resolve(c, attacker, target, riders, "burn"); !errors.Is(err, ErrUnknownObjective) {
		t.Errorf("bad objective: err = %v", err)
	}
}

func TestResolveMarksBothArmies(t *testing.T) {
	c, attacker, target := testCampaign()
	riders := []*campaign.Detachment{{ID: 1, UnitTypeID: 2, Soldiers: 100}}

	result, err := Resolve(c, attacker, target, riders, ObjectiveKill)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Win or lose, the raid costs the attacker its day and slows the target.
	if attacker.Status != campaign.Harrying {
		t.Errorf("attacker status = %v, want harrying", attacker.Status)
	}
	if attacker.MovementPointsRemaining != 0 {
		t.Errorf("attacker movement = %v, want 0", attacker.MovementPointsRemaining)
	}
	harried := target.StatusEffects.Harried
	if harried == nil {
		t.Fatal("target should carry a harried effect")
	}
	if harried.Day != 10 || harried.Objective != ObjectiveKill || harried.Penalty != 0.5 {
		t.Errorf("harried effect = %+v", harried)
	}
	if target.MovementPointsRemaining > 0.5 {
		t.Errorf("target movement = %v, want capped at 0.5", target.MovementPointsRemaining)
	}

	if result.Roll < 1 || result.Roll > 6 {
		t.Errorf("roll %d outside 1d6", result.Roll)
	}
	// Skirmisher cavalry: +1 and +2.
	if result.Modifier != 3 {
		t.Errorf("modifier = %d, want 3", result.Modifier)
	}
}

func TestResolveKillOutcomes(t *testing.T) {
	c, attacker, target := testCampaign()
	riders := []*campaign.Detachment{{ID: 1, UnitTypeID: 2, Soldiers: 100}}

	result, err := Resolve(c, attacker, target, riders, ObjectiveKill)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Success {
		// 20% of the raiding force in kills.
		if result.InflictedCasualties != 20 {
			t.Errorf("casualties = %d, want 20", result.InflictedCasualties)
		}
		if target.TotalSoldiers() != 780 {
			t.Errorf("target soldiers = %d, want 780", target.TotalSoldiers())
		}
	} else {
		if result.AttackerLosses != 20 {
			t.Errorf("losses = %d, want 20", result.AttackerLosses)
		}
		if riders[0].Soldiers != 80 {
			t.Errorf("raider soldiers = %d, want 80", riders[0].Soldiers)
		}
	}
}

func TestResolveDeterminism(t *testing.T) {
	run := func() Result {
		c, attacker, target := testCampaign()
		riders := []*campaign.Detachment{{ID: 1, UnitTypeID: 2, Soldiers: 100}}
		result, err := Resolve(c, attacker, target, riders, ObjectiveSteal)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		return result
	}
	first, second := run(), run()
	if first != second {
		t.Errorf("same-day raid diverged: %+v vs %+v", first, second)
	}
}

func TestStealRespectsCapacityAndStock(t *testing.T) {
	c, attacker, target := testCampaign()
	attacker.SuppliesCurrent = attacker.SuppliesCapacity
	riders := []*campaign.Detachment{{ID: 1, UnitTypeID: 2, Soldiers: 100}}

	result, err := Resolve(c, attacker, target, riders, ObjectiveSteal)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !result.Success {
		return
	}
	if result.SuppliesStolen != 0 {
		t.Errorf("full train cannot carry stolen supplies, got %d", result.SuppliesStolen)
	}
	if attacker.LootCarried != result.LootStolen {
		t.Errorf("attacker loot = %d, result says %d", attacker.LootCarried, result.LootStolen)
	}
	if target.LootCarried != 400-result.LootStolen {
		t.Errorf("target loot = %d", target.LootCarried)
	}
}

func TestCasualtiesSpillIntoNoncombatants(t *testing.T) {
	target := &campaign.Army{
		NoncombatantCount: 50,
		Detachments:       []campaign.Detachment{{ID: 1, UnitTypeID: 1, Soldiers: 30}},
	}
	applyCasualties(target, 45)
	if target.Detachments[0].Soldiers != 0 {
		t.Errorf("soldiers = %d, want 0", target.Detachments[0].Soldiers)
	}
	if target.NoncombatantCount != 35 {
		t.Errorf("noncombatants = %d, want 35", target.NoncombatantCount)
	}
}
