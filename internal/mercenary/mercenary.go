// Package mercenary manages hired-company upkeep: daily loot charges,
// unpaid-contract morale damage, and desertion once grace runs out.
package mercenary

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/morale"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

// ProcessDailyUpkeep charges every active contract its daily rate from the
// attached army's loot. Unpaid contracts cost morale, and after the grace
// period a 1-in-6 roll each day can end the contract outright.
func ProcessDailyUpkeep(c *campaign.Campaign, r rules.Rules) error {
	for _, contract := range c.MercenaryContracts {
		if contract.Status == campaign.ContractTerminated || contract.ArmyID == nil {
			continue
		}
		army := c.Armies[*contract.ArmyID]
		if army == nil {
			continue
		}

		daysDue := c.CurrentDay - contract.LastUpkeepDay
		if daysDue <= 0 {
			continue
		}

		totalDue := dailyUpkeepCost(c, contract, army, r) * daysDue
		if army.LootCarried >= totalDue {
			army.LootCarried -= totalDue
			contract.LastUpkeepDay = c.CurrentDay
			contract.DaysUnpaid = 0
			contract.Status = campaign.ContractActive
			continue
		}

		contract.DaysUnpaid += daysDue
		contract.Status = campaign.ContractUnpaid
		contract.LastUpkeepDay = c.CurrentDay
		morale.Adjust(army, -r.Mercenary.MoralePenaltyUnpaid)

		if contract.DaysUnpaid > r.Mercenary.GraceDaysWithoutPay {
			if err := maybeDesert(c, contract, army, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func dailyUpkeepCost(
	c *campaign.Campaign,
	contract *campaign.MercenaryContract,
	army *campaign.Army,
	r rules.Rules,
) int {
	infantry, cavalry := 0, 0
	for _, det := range army.Detachments {
		if c.UnitTypes[det.UnitTypeID].IsCavalry() {
			cavalry += det.Soldiers
		} else {
			infantry += det.Soldiers
		}
	}

	infantryRate := r.Mercenary.InfantryUpkeepPerDay
	cavalryRate := r.Mercenary.CavalryUpkeepPerDay
	if rate, ok := contract.NegotiatedRates["infantry"]; ok && rate > 0 {
		infantryRate = rate
	}
	if rate, ok := contract.NegotiatedRates["cavalry"]; ok && rate > 0 {
		cavalryRate = rate
	}
	return infantry*infantryRate + cavalry*cavalryRate
}

func maybeDesert(
	c *campaign.Campaign,
	contract *campaign.MercenaryContract,
	army *campaign.Army,
	r rules.Rules,
) error {
	seed := fmt.Sprintf("mercenary-desertion:%d:%d", contract.ID, c.CurrentDay)
	roll, err := rng.RollDice(seed, fmt.Sprintf("1d%d", r.Mercenary.DesertionChanceDenominator))
	if err != nil {
		return err
	}
	if roll.Total > r.Mercenary.DesertionChanceNumerator {
		return nil
	}

	contract.Status = campaign.ContractTerminated
	army.StatusEffects.MercenariesDeserted = &campaign.MercenaryDesertion{
		ContractID: contract.ID,
		Day:        c.CurrentDay,
	}
	morale.Adjust(army, -r.Mercenary.MoralePenaltyUnpaid)
	return nil
}
