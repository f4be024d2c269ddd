package orders

import (
	"fmt"
	"strings"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/morale"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

const (
	assaultExtraLossPct   = 0.10
	commanderEscapeTarget = 3
	captureSupplyTown     = 10_000
	captureSupplyCity     = 100_000
	captureSupplyFortress = 1_000
	pillageMoraleBonus    = 2
)

// resolveStrongholdCapture runs the full consequence chain of a successful
// assault: control transfer, captured supplies, camp-follower gain, the
// pillage-or-discipline branch, and the defender commander's fate.
func resolveStrongholdCapture(
	ctx Context,
	attacker, defender *campaign.Army,
	stronghold *campaign.Stronghold,
	ongoing *campaign.Siege,
	pillage bool,
) (string, []campaign.Event, error) {
	c := ctx.Campaign
	commander := c.Commanders[attacker.CommanderID]

	if commander != nil {
		stronghold.ControllingFactionID = commander.FactionID
	}
	stronghold.GatesOpen = true
	garrisonID := attacker.ID
	stronghold.GarrisonArmyID = &garrisonID
	if ongoing != nil {
		ongoing.Status = campaign.SiegeSuccessfulAssault
	}

	var details []string
	var events []campaign.Event

	supplyDetail, supplyEvent, err := applyCaptureSupplies(c, stronghold, attacker, ongoing)
	if err != nil {
		return "", nil, err
	}
	if supplyDetail != "" {
		details = append(details, supplyDetail)
		events = append(events, supplyEvent)
	}

	if gain := noncombatantGain(stronghold.Type, attacker); gain > 0 {
		attacker.NoncombatantCount += gain
		details = append(details, fmt.Sprintf("gained %d camp followers", gain))
		events = append(events, c.EmitEvent("noncombatant_gain",
			"camp followers joined the army", map[string]any{"amount": gain}))
	}

	pillageDetail, pillageEvent, hasEvent, err := applyPostCaptureBehavior(
		ctx, commander, attacker, stronghold, pillage,
	)
	if err != nil {
		return "", nil, err
	}
	if pillageDetail != "" {
		details = append(details, pillageDetail)
	}
	if hasEvent {
		events = append(events, pillageEvent)
	}

	fateDetail, fateEvent, hasFate, err := resolveDefenderCommander(c, defender, commander)
	if err != nil {
		return "", nil, err
	}
	if fateDetail != "" {
		details = append(details, fateDetail)
	}
	if hasFate {
		events = append(events, fateEvent)
	}

	return joinDetails(details), events, nil
}

func applyCaptureSupplies(
	c *campaign.Campaign,
	stronghold *campaign.Stronghold,
	army *campaign.Army,
	ongoing *campaign.Siege,
) (string, campaign.Event, error) {
	weeks := 0
	if ongoing != nil {
		weeks = ongoing.WeeksElapsed
	}

	var multiplier int
	switch stronghold.Type {
	case campaign.Town:
		multiplier = captureSupplyTown
	case campaign.City:
		multiplier = captureSupplyCity
	case campaign.Fortress:
		multiplier = captureSupplyFortress
	}
	if multiplier <= 0 {
		return "", campaign.Event{}, nil
	}

	roll, err := rng.RollDice(fmt.Sprintf("capture-supply:%d:%d", stronghold.ID, weeks), "1d6")
	if err != nil {
		return "", campaign.Event{}, err
	}
	gain := rules.Max(0, roll.Total-weeks) * multiplier
	if gain <= 0 {
		return "", campaign.Event{}, nil
	}

	capacity := rules.Max(0, army.SuppliesCapacity-army.SuppliesCurrent)
	loaded := rules.Min(gain, capacity)
	army.SuppliesCurrent += loaded
	stored := gain - loaded
	stronghold.SuppliesHeld += stored

	detail := fmt.Sprintf("captured %d supplies", gain)
	if loaded > 0 {
		detail += fmt.Sprintf(" (%d loaded)", loaded)
	}
	event := c.EmitEvent("capture_supplies", detail, map[string]any{
		"amount": gain,
		"loaded": loaded,
		"stored": stored,
	})
	return detail, event, nil
}

// noncombatantGain sizes the camp-follower influx by stronghold type,
// against the army's noncombatant pool or its soldiers when it has none.
func noncombatantGain(strongholdType campaign.StrongholdType, army *campaign.Army) int {
	var ratio float64
	switch strongholdType {
	case campaign.Fortress:
		ratio = 0.05
	case campaign.Town:
		ratio = 0.10
	case campaign.City:
		ratio = 0.15
	}
	if ratio <= 0 {
		return 0
	}
	pool := army.NoncombatantCount
	if pool == 0 {
		pool = army.TotalSoldiers()
	}
	return rules.Max(1, int(float64(pool)*ratio+0.5))
}

// applyPostCaptureBehavior branches on the pillage flag: an authorised sack
// hauls half the stronghold's stores and lifts morale; denying the troops
// their plunder forces a discipline check.
func applyPostCaptureBehavior(
	ctx Context,
	commander *campaign.Commander,
	army *campaign.Army,
	stronghold *campaign.Stronghold,
	pillage bool,
) (string, campaign.Event, bool, error) {
	c := ctx.Campaign

	if pillage {
		lootTaken := stronghold.LootHeld / 2
		stronghold.LootHeld -= lootTaken
		army.LootCarried += lootTaken

		suppliesTaken := stronghold.SuppliesHeld / 2
		stronghold.SuppliesHeld -= suppliesTaken
		capacity := rules.Max(0, army.SuppliesCapacity-army.SuppliesCurrent)
		loaded := rules.Min(suppliesTaken, capacity)
		army.SuppliesCurrent += loaded

		morale.Adjust(army, pillageMoraleBonus)
		detail := fmt.Sprintf("pillage authorised (%d loot, %d supplies)", lootTaken, loaded)
		event := c.EmitEvent("pillage", detail, map[string]any{
			"loot":     lootTaken,
			"supplies": loaded,
		})
		return detail, event, true, nil
	}

	seed := fmt.Sprintf("discipline:%d:%d", army.ID, c.CurrentDay)
	success, roll, err := morale.Check(army.MoraleCurrent, seed)
	if err != nil {
		return "", campaign.Event{}, false, err
	}
	if success {
		return "", campaign.Event{}, false, nil
	}

	var traits []campaign.Trait
	if commander != nil {
		traits = commander.Traits
	}
	if _, err := morale.ApplyConsequence(army, roll, traits, seed+":consequence", c.CurrentDay); err != nil {
		return "", campaign.Event{}, false, err
	}
	event := c.EmitEvent("discipline_failed", "discipline check failed",
		map[string]any{"roll": roll})
	return "discipline check failed", event, true, nil
}

// resolveDefenderCommander rolls the defeated garrison commander's fate:
// slip away or fall into the victor's hands.
func resolveDefenderCommander(
	c *campaign.Campaign,
	defender *campaign.Army,
	attackerCommander *campaign.Commander,
) (string, campaign.Event, bool, error) {
	defenderCommander := c.Commanders[defender.CommanderID]
	if defenderCommander == nil {
		return "", campaign.Event{}, false, nil
	}

	roll, err := rng.RollDice(
		fmt.Sprintf("assault-escape:%d:%d", defenderCommander.ID, c.CurrentDay), "1d6",
	)
	if err != nil {
		return "", campaign.Event{}, false, err
	}

	if roll.Total <= commanderEscapeTarget {
		defenderCommander.Status = campaign.CommanderEscaped
		defenderCommander.CurrentHexID = nil
		event := c.EmitEvent("commander_escaped", "defender commander escaped",
			map[string]any{"commander_id": int64(defenderCommander.ID)})
		return "defender commander escaped", event, true, nil
	}

	defenderCommander.Status = campaign.CommanderCaptured
	if attackerCommander != nil {
		factionID := attackerCommander.FactionID
		defenderCommander.CapturedByFactionID = &factionID
	}
	event := c.EmitEvent("commander_captured", "defender commander captured",
		map[string]any{"commander_id": int64(defenderCommander.ID)})
	return "defender commander captured", event, true, nil
}

// applyAdditionalLosses trims every detachment by the percentage, floored at
// one soldier, and scales supplies to match.
func applyAdditionalLosses(army *campaign.Army, pct float64) {
	for i := range army.Detachments {
		reduced := int(float64(army.Detachments[i].Soldiers) * (1 - pct))
		army.Detachments[i].Soldiers = rules.Max(1, reduced)
	}
	army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - pct))
}

func joinDetails(details []string) string {
	return strings.Join(details, "; ")
}
