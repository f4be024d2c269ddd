package engine

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/mercenary"
	"github.com/talgya/warmarch/internal/messaging"
	"github.com/talgya/warmarch/internal/morale"
	"github.com/talgya/warmarch/internal/naval"
	"github.com/talgya/warmarch/internal/siege"
	"github.com/talgya/warmarch/internal/supply"
	"github.com/talgya/warmarch/internal/weather"
)

const (
	forcedMarchFatigueDays = 3
	weatherExposureDays    = 2
	partDayFraction        = 0.25
)

// startOfDay rolls weather, refreshes every army's derived figures and
// movement budget, and settles overnight state: weekly counter resets,
// marching statuses back to idle, rest completion, forced-march fatigue,
// and the return of departed detachments.
func (e *Engine) startOfDay(day int) error {
	c := e.Campaign

	if _, err := weather.Generate(c, day); err != nil {
		return fmt.Errorf("generate weather: %w", err)
	}

	for _, army := range e.sortedArmies() {
		snapshot := supply.BuildSnapshot(c, army, e.Rules)
		army.SuppliesCapacity = snapshot.Capacity
		army.DailySupplyConsumption = snapshot.Consumption
		army.ColumnLengthMiles = snapshot.ColumnLengthMiles
		army.MovementPointsRemaining = 1.0

		if day > 0 && day%7 == 0 {
			army.DaysMarchedThisWeek = 0
		}

		switch army.Status {
		case campaign.Marching, campaign.ForcedMarch, campaign.NightMarch,
			campaign.Foraging, campaign.Torching, campaign.Harrying:
			army.Status = campaign.Idle
		case campaign.Resting:
			e.completeRest(army, day)
		}

		// A harried effect only bites on the day it was inflicted.
		if h := army.StatusEffects.Harried; h != nil && h.Day < day {
			army.StatusEffects.Harried = nil
		}

		for army.ForcedMarchDays >= 7 {
			morale.Adjust(army, -e.Rules.Morale.ForcedMarchLossPerWeek)
			army.ForcedMarchDays -= 7
		}

		if dd := army.StatusEffects.DepartedDetachments; dd != nil && dd.ReturnDay <= day {
			army.StatusEffects.DepartedDetachments = nil
			c.EmitEvent("detachments_returned", "departed detachments rejoined the army",
				map[string]any{"army_id": int64(army.ID)})
		}

		e.refreshSicknessFlag(army, day)
	}
	return nil
}

func (e *Engine) completeRest(army *campaign.Army, day int) {
	if army.RestStartedDay == nil || army.RestDurationDays == nil {
		army.Status = campaign.Idle
		return
	}
	if day >= *army.RestStartedDay+*army.RestDurationDays {
		army.Status = campaign.Idle
		army.RestStartedDay = nil
		army.RestDurationDays = nil
	}
}

// refreshSicknessFlag recomputes the daily sick-or-exhausted condition:
// battle yesterday, forced-march fatigue, starvation, undersupply, or
// sustained exposure to foul weather.
func (e *Engine) refreshSicknessFlag(army *campaign.Army, day int) {
	sick := false
	switch {
	case army.LastBattleDay != nil && *army.LastBattleDay == day-1:
		sick = true
	case army.Status == campaign.ForcedMarch && army.DaysMarchedThisWeek >= forcedMarchFatigueDays:
		sick = true
	case army.DaysWithoutSupplies > 0:
		sick = true
	case army.SuppliesCurrent < army.DailySupplyConsumption:
		sick = true
	case weather.ConsecutiveBadDays(e.Campaign, day) >= weatherExposureDays:
		sick = true
	}
	army.StatusEffects.SickOrExhausted = sick
}

// runPart advances couriers and fleets a quarter day, then executes the
// orders due in this part.
func (e *Engine) runPart(day int, part campaign.DayPart, summary *DaySummary) error {
	c := e.Campaign

	deliveredBefore := countDelivered(c)
	if err := messaging.AdvanceMessages(c, partDayFraction, e.Rules); err != nil {
		return fmt.Errorf("advance messages: %w", err)
	}
	summary.MessagesDelivered += countDelivered(c) - deliveredBefore

	naval.AdvanceShips(c, partDayFraction)

	e.executeOrders(day, part, summary)
	return nil
}

func countDelivered(c *campaign.Campaign) int {
	n := 0
	for _, msg := range c.Messages {
		if msg.Status == campaign.MessageDelivered {
			n++
		}
	}
	return n
}

// endOfDay consumes supplies with starvation fallout, charges mercenary
// upkeep, and advances sieges on their weekly cadence.
func (e *Engine) endOfDay(day int, summary *DaySummary) error {
	c := e.Campaign

	for _, army := range e.sortedArmies() {
		if err := e.consumeSupplies(army, day, summary); err != nil {
			return err
		}
	}

	if err := mercenary.ProcessDailyUpkeep(c, e.Rules); err != nil {
		return fmt.Errorf("mercenary upkeep: %w", err)
	}

	if (day+1)%7 == 0 {
		if err := e.advanceSieges(day, summary); err != nil {
			return err
		}
	}
	return nil
}

// consumeSupplies deducts the army's daily ration. Shortfall starves: one
// morale pip per day, a morale check whose failure applies the consequence
// table, and dissolution once the army has gone too long unfed.
func (e *Engine) consumeSupplies(army *campaign.Army, day int, summary *DaySummary) error {
	c := e.Campaign

	if army.SuppliesCurrent >= army.DailySupplyConsumption {
		army.SuppliesCurrent -= army.DailySupplyConsumption
		army.DaysWithoutSupplies = 0
		return nil
	}

	army.SuppliesCurrent = 0
	army.DaysWithoutSupplies++
	summary.ArmiesStarving++
	morale.Adjust(army, -e.Rules.Morale.StarvationLossPerDay)

	seed := fmt.Sprintf("starvation:%d:%d", army.ID, day)
	success, roll, err := morale.Check(army.MoraleCurrent, seed)
	if err != nil {
		return err
	}
	if !success {
		traits := c.TraitsFor(army)
		if _, err := morale.ApplyConsequence(army, roll, traits, seed+":consequence", day); err != nil {
			return err
		}
	}

	if army.DaysWithoutSupplies >= e.Rules.Morale.StarvationDissolutionDays {
		army.Status = campaign.Routed
		c.EmitEvent("army_dissolved", "army dissolved from starvation",
			map[string]any{"army_id": int64(army.ID), "days_without_supplies": army.DaysWithoutSupplies})
	}
	return nil
}

func (e *Engine) advanceSieges(day int, summary *DaySummary) error {
	c := e.Campaign
	for _, s := range e.sortedSieges() {
		if s.Status != campaign.SiegeOngoing {
			continue
		}
		result, err := siege.Advance(s, fmt.Sprintf("siege:%d:%d", s.ID, day), e.Rules)
		if err != nil {
			return fmt.Errorf("advance siege %d: %w", s.ID, err)
		}
		summary.SiegesAdvanced++
		if result.GatesOpened {
			if stronghold := c.Strongholds[s.StrongholdID]; stronghold != nil {
				stronghold.GatesOpen = true
			}
			c.EmitEvent("siege_gates_opened", "stronghold gates opened under siege",
				map[string]any{"siege_id": int64(s.ID), "stronghold_id": int64(s.StrongholdID)})
		}
	}
	return nil
}
