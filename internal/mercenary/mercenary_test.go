package mercenary

import (
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rules"
)

func testCampaign(loot int) *campaign.Campaign {
	c := campaign.New(1, "mercenary test")
	c.CurrentDay = 1
	c.UnitTypes[1] = &campaign.UnitType{ID: 1, Name: "Free Spears", Category: "infantry"}
	c.UnitTypes[2] = &campaign.UnitType{ID: 2, Name: "Free Lances", Category: "cavalry"}

	armyID := campaign.ArmyID(1)
	c.Armies[armyID] = &campaign.Army{
		ID:            armyID,
		CurrentHexID:  1,
		MoraleCurrent: 9,
		MoraleResting: 9,
		MoraleMax:     12,
		LootCarried:   loot,
		Detachments: []campaign.Detachment{
			{ID: 1, UnitTypeID: 1, Soldiers: 100},
			{ID: 2, UnitTypeID: 2, Soldiers: 50},
		},
	}
	c.MercenaryContracts[1] = &campaign.MercenaryContract{
		ID:     1,
		ArmyID: &armyID,
		Status: campaign.ContractActive,
	}
	return c
}

func TestDailyUpkeepPaid(t *testing.T) {
	// 100 foot at 1 plus 50 horse at 3 is 250 a day.
	c := testCampaign(1000)

	if err := ProcessDailyUpkeep(c, rules.Default()); err != nil {
		t.Fatalf("ProcessDailyUpkeep: %v", err)
	}

	army := c.Armies[1]
	contract := c.MercenaryContracts[1]
	if army.LootCarried != 750 {
		t.Errorf("loot = %d, want 750", army.LootCarried)
	}
	if contract.Status != campaign.ContractActive || contract.DaysUnpaid != 0 {
		t.Errorf("contract = %+v, want paid and active", contract)
	}
	if contract.LastUpkeepDay != 1 {
		t.Errorf("LastUpkeepDay = %d, want 1", contract.LastUpkeepDay)
	}
	if army.MoraleCurrent != 9 {
		t.Errorf("paid mercenaries should not cost morale, got %d", army.MoraleCurrent)
	}
}

func TestDailyUpkeepMultipleDaysDue(t *testing.T) {
	c := testCampaign(1000)
	c.CurrentDay = 3

	if err := ProcessDailyUpkeep(c, rules.Default()); err != nil {
		t.Fatalf("ProcessDailyUpkeep: %v", err)
	}
	if got := c.Armies[1].LootCarried; got != 250 {
		t.Errorf("loot = %d, want 250 after three days at 250", got)
	}
}

func TestDailyUpkeepUnpaid(t *testing.T) {
	c := testCampaign(10)

	if err := ProcessDailyUpkeep(c, rules.Default()); err != nil {
		t.Fatalf("ProcessDailyUpkeep: %v", err)
	}

	army := c.Armies[1]
	contract := c.MercenaryContracts[1]
	if army.LootCarried != 10 {
		t.Errorf("partial payment should not be taken, loot = %d", army.LootCarried)
	}
	if contract.Status != campaign.ContractUnpaid {
		t.Errorf("status = %v, want unpaid", contract.Status)
	}
	if contract.DaysUnpaid != 1 {
		t.Errorf("DaysUnpaid = %d, want 1", contract.DaysUnpaid)
	}
	if army.MoraleCurrent != 8 {
		t.Errorf("morale = %d, want 8 after unpaid day", army.MoraleCurrent)
	}
	if army.StatusEffects.MercenariesDeserted != nil {
		t.Error("desertion should not happen inside the grace period")
	}
}

func TestNegotiatedRatesOverrideDefaults(t *testing.T) {
	c := testCampaign(1000)
	c.MercenaryContracts[1].NegotiatedRates = map[string]int{"infantry": 2, "cavalry": 4}

	if err := ProcessDailyUpkeep(c, rules.Default()); err != nil {
		t.Fatalf("ProcessDailyUpkeep: %v", err)
	}
	// 100*2 + 50*4 = 400.
	if got := c.Armies[1].LootCarried; got != 600 {
		t.Errorf("loot = %d, want 600", got)
	}
}

func TestUpkeepSkipsTerminatedAndDetached(t *testing.T) {
	c := testCampaign(1000)
	c.MercenaryContracts[1].Status = campaign.ContractTerminated
	c.MercenaryContracts[2] = &campaign.MercenaryContract{ID: 2, Status: campaign.ContractActive}

	if err := ProcessDailyUpkeep(c, rules.Default()); err != nil {
		t.Fatalf("ProcessDailyUpkeep: %v", err)
	}
	if got := c.Armies[1].LootCarried; got != 1000 {
		t.Errorf("terminated contract still charged, loot = %d", got)
	}
}

func TestDesertionOnlyAfterGrace(t *testing.T) {
	// Grace is three days unpaid. Run broke armies day by day and check no
	// desertion can fire before the threshold.
	c := testCampaign(0)
	r := rules.Default()

	for day := 1; day <= r.Mercenary.GraceDaysWithoutPay; day++ {
		c.CurrentDay = day
		if err := ProcessDailyUpkeep(c, r); err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		if c.Armies[1].StatusEffects.MercenariesDeserted != nil {
			t.Fatalf("deserted on day %d, inside grace", day)
		}
		if c.MercenaryContracts[1].Status != campaign.ContractUnpaid {
			t.Fatalf("day %d status = %v", day, c.MercenaryContracts[1].Status)
		}
	}

	// Past grace the roll is live. It may or may not desert on a given day,
	// but the same campaign state must resolve identically every time.
	replay := testCampaign(0)
	replay.MercenaryContracts[1].DaysUnpaid = r.Mercenary.GraceDaysWithoutPay
	replay.CurrentDay = 4
	replay.MercenaryContracts[1].LastUpkeepDay = 3

	c.CurrentDay = 4
	c.MercenaryContracts[1].DaysUnpaid = r.Mercenary.GraceDaysWithoutPay
	c.MercenaryContracts[1].LastUpkeepDay = 3
	c.Armies[1].MoraleCurrent = replay.Armies[1].MoraleCurrent

	if err := ProcessDailyUpkeep(c, r); err != nil {
		t.Fatalf("ProcessDailyUpkeep: %v", err)
	}
	if err := ProcessDailyUpkeep(replay, r); err != nil {
		t.Fatalf("ProcessDailyUpkeep: %v", err)
	}

	got := c.MercenaryContracts[1].Status
	want := replay.MercenaryContracts[1].Status
	if got != want {
		t.Errorf("desertion roll diverged: %v vs %v", got, want)
	}
}
