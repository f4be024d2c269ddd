package morale

import (
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
)

func testArmy() *campaign.Army {
	army := campaign.NewArmy(1, 1, 1)
	army.MoraleCurrent = 9
	army.MoraleResting = 9
	army.MoraleMax = 12
	army.SuppliesCurrent = 1000
	army.NoncombatantCount = 200
	army.Detachments = []campaign.Detachment{
		{ID: 1, UnitTypeID: 1, Soldiers: 1000},
		{ID: 2, UnitTypeID: 1, Soldiers: 500},
	}
	return army
}

func TestAdjustClamps(t *testing.T) {
	army := testArmy()
	Adjust(army, +10)
	if army.MoraleCurrent != 12 {
		t.Errorf("morale = %d, want clamped to max 12", army.MoraleCurrent)
	}
	Adjust(army, -20)
	if army.MoraleCurrent != 0 {
		t.Errorf("morale = %d, want clamped to 0", army.MoraleCurrent)
	}
}

func TestCheckExtremes(t *testing.T) {
	// 2d6 lies in [2, 12], so morale 12 always passes and morale 1 never does.
	success, roll, err := Check(12, "campaign:1:morning:check-high")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !success {
		t.Errorf("morale 12 should always pass, rolled %d", roll)
	}
	if roll < 2 || roll > 12 {
		t.Errorf("roll %d outside 2d6 range", roll)
	}

	success, roll, err = Check(1, "campaign:1:morning:check-low")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if success {
		t.Errorf("morale 1 should always fail, rolled %d", roll)
	}
}

func TestCheckDeterministic(t *testing.T) {
	_, first, err := Check(7, "campaign:5:evening:steady")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	_, second, err := Check(7, "campaign:5:evening:steady")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if first != second {
		t.Errorf("same seed rolled %d then %d", first, second)
	}
}

func TestApplyConsequenceDesertion(t *testing.T) {
	army := testArmy()
	report, err := ApplyConsequence(army, 8, nil, "test:desertion", 0)
	if err != nil {
		t.Fatalf("ApplyConsequence: %v", err)
	}
	if report.Consequence != Desertion {
		t.Fatalf("consequence = %v, want desertion", report.Consequence)
	}
	if report.LossPercentage != 0.10 {
		t.Errorf("LossPercentage = %v, want 0.10", report.LossPercentage)
	}
	if army.Detachments[0].Soldiers != 900 || army.Detachments[1].Soldiers != 450 {
		t.Errorf("soldiers = %d/%d, want 900/450",
			army.Detachments[0].Soldiers, army.Detachments[1].Soldiers)
	}
	if army.SuppliesCurrent != 900 {
		t.Errorf("supplies = %d, want 900", army.SuppliesCurrent)
	}
}

func TestApplyConsequenceMassDesertion(t *testing.T) {
	army := testArmy()
	report, err := ApplyConsequence(army, 3, nil, "test:mass", 0)
	if err != nil {
		t.Fatalf("ApplyConsequence: %v", err)
	}
	if report.Consequence != MassDesertion {
		t.Fatalf("consequence = %v, want mass_desertion", report.Consequence)
	}
	if army.Detachments[0].Soldiers != 700 {
		t.Errorf("soldiers = %d, want 700", army.Detachments[0].Soldiers)
	}
}

func TestApplyConsequenceCampFollowers(t *testing.T) {
	army := testArmy()
	report, err := ApplyConsequence(army, 10, nil, "test:followers", 0)
	if err != nil {
		t.Fatalf("ApplyConsequence: %v", err)
	}
	if report.Consequence != CampFollowers {
		t.Fatalf("consequence = %v, want camp_followers", report.Consequence)
	}
	if report.NoncombatantIncrease != 10 {
		t.Errorf("increase = %d, want 10", report.NoncombatantIncrease)
	}
	if army.NoncombatantCount != 210 {
		t.Errorf("noncombatants = %d, want 210", army.NoncombatantCount)
	}
}

func TestApplyConsequenceNoConsequences(t *testing.T) {
	army := testArmy()
	before := army.Detachments[0].Soldiers
	report, err := ApplyConsequence(army, 12, nil, "test:calm", 0)
	if err != nil {
		t.Fatalf("ApplyConsequence: %v", err)
	}
	if report.Consequence != NoConsequences {
		t.Fatalf("consequence = %v, want no_consequences", report.Consequence)
	}
	if army.Detachments[0].Soldiers != before {
		t.Error("no_consequences should not touch the army")
	}
}

func TestPoetSoftensConsequence(t *testing.T) {
	army := testArmy()
	traits := []campaign.Trait{{Name: campaign.TraitPoet}}
	report, err := ApplyConsequence(army, 10, traits, "test:poet", 0)
	if err != nil {
		t.Fatalf("ApplyConsequence: %v", err)
	}
	if report.Consequence != NoConsequences {
		t.Errorf("poet on a 10 should land on no_consequences, got %v", report.Consequence)
	}
}

func TestDetachmentDepartsRecordsReturn(t *testing.T) {
	army := testArmy()
	report, err := ApplyConsequence(army, 11, nil, "test:depart", 40)
	if err != nil {
		t.Fatalf("ApplyConsequence: %v", err)
	}
	if report.Consequence != DetachmentDeparts {
		t.Fatalf("consequence = %v, want detachment_departs", report.Consequence)
	}
	if report.DepartingDetachments != 1 {
		t.Fatalf("departing = %d, want 1", report.DepartingDetachments)
	}
	effect := army.StatusEffects.DepartedDetachments
	if effect == nil {
		t.Fatal("departed detachments not recorded")
	}
	if len(effect.DetachmentIDs) != 1 {
		t.Errorf("recorded ids = %v, want one", effect.DetachmentIDs)
	}
	// Return day is current day plus a 2d6 roll.
	if effect.ReturnDay < 42 || effect.ReturnDay > 52 {
		t.Errorf("ReturnDay = %d, want within [42, 52]", effect.ReturnDay)
	}
}
