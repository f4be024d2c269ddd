// Package orders executes issued orders against the campaign aggregate.
// Every order kind has a handler; handlers validate the decoded payload,
// call into the rules subsystems, and report a terminal status with a
// human-readable detail. Validation failures fail the order, they never
// fault the engine.
package orders

import (
	"fmt"

	"github.com/talgya/warmarch/internal/battle"
	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/harrying"
	"github.com/talgya/warmarch/internal/messaging"
	"github.com/talgya/warmarch/internal/morale"
	"github.com/talgya/warmarch/internal/movement"
	"github.com/talgya/warmarch/internal/naval"
	"github.com/talgya/warmarch/internal/operations"
	"github.com/talgya/warmarch/internal/recruitment"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
	"github.com/talgya/warmarch/internal/siege"
	"github.com/talgya/warmarch/internal/supply"
)

// Context carries the shared state every handler needs.
type Context struct {
	Campaign *campaign.Campaign
	Part     campaign.DayPart
	Rules    rules.Rules
}

// ExecutionResult is the outcome of one order execution.
type ExecutionResult struct {
	Status campaign.OrderStatus
	Detail string
	Events []campaign.Event
}

func failure(detail string) ExecutionResult {
	return ExecutionResult{Status: campaign.OrderFailed, Detail: detail}
}

func completed(detail string, events ...campaign.Event) ExecutionResult {
	return ExecutionResult{Status: campaign.OrderCompleted, Detail: detail, Events: events}
}

// ExecuteOrder runs a pending or executing order through its handler and
// writes the resulting status and detail back onto the order. Terminal
// orders are left untouched.
func ExecuteOrder(ctx Context, order *campaign.Order) ExecutionResult {
	if order.Status.Terminal() {
		return ExecutionResult{Status: order.Status, Detail: "order already resolved"}
	}

	var army *campaign.Army
	if order.ArmyID != nil {
		army = ctx.Campaign.Armies[*order.ArmyID]
		if army == nil {
			detail := fmt.Sprintf("army %d not found", *order.ArmyID)
			order.Status = campaign.OrderFailed
			order.Result = &campaign.OrderResult{Detail: detail}
			return ExecutionResult{Status: campaign.OrderFailed, Detail: detail}
		}
	}

	order.Status = campaign.OrderExecuting
	result := dispatch(ctx, order, army)
	order.Status = result.Status
	if result.Detail != "" || len(result.Events) > 0 {
		order.Result = &campaign.OrderResult{Detail: result.Detail, Events: result.Events}
	} else {
		order.Result = nil
	}
	return result
}

func dispatch(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	switch order.Kind {
	case campaign.OrderMove:
		return handleMove(ctx, order, army)
	case campaign.OrderRest:
		return handleRest(ctx, order, army)
	case campaign.OrderForage:
		return handleForage(ctx, order, army)
	case campaign.OrderTorch:
		return handleTorch(ctx, order, army)
	case campaign.OrderSupplyTransfer:
		return handleSupplyTransfer(ctx, order, army)
	case campaign.OrderBesiege:
		return handleBesiege(ctx, order, army)
	case campaign.OrderAssault:
		return handleAssault(ctx, order, army)
	case campaign.OrderEmbark:
		return handleEmbark(ctx, order, army)
	case campaign.OrderDisembark:
		return handleDisembark(ctx, order, army)
	case campaign.OrderNavalMove:
		return handleNavalMove(ctx, order)
	case campaign.OrderSendMessage:
		return handleSendMessage(ctx, order, army)
	case campaign.OrderLaunchOperation:
		return handleLaunchOperation(ctx, order)
	case campaign.OrderRaiseArmy:
		return handleRaiseArmy(ctx, order)
	case campaign.OrderHarry:
		return handleHarry(ctx, order, army)
	default:
		return failure(fmt.Sprintf("unsupported order type: %s", order.Kind))
	}
}

// movementPlan is the worked-out result of validating a move order.
type movementPlan struct {
	movementType    campaign.MovementType
	legs            []MovementLeg
	totalFraction   float64
	finalHex        campaign.HexID
	diverted        bool
	diversionDetail string
}

func handleMove(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("movement order requires an army")
	}

	var payload MovePayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}

	plan, err := prepareMovementPlan(ctx, order, army, payload)
	if err != nil {
		return failure(err.Error())
	}

	army.CurrentHexID = plan.finalHex
	army.DestinationHexID = nil
	army.MovementPointsRemaining = rules.Max(0.0, 1.0-plan.totalFraction)
	army.DaysMarchedThisWeek++
	switch {
	case plan.movementType == campaign.MoveForced:
		army.Status = campaign.ForcedMarch
		army.ForcedMarchDays += plan.totalFraction
	case plan.movementType == campaign.MoveNight || anyNight(plan.legs):
		army.Status = campaign.NightMarch
	default:
		army.Status = campaign.Marching
	}

	detail := fmt.Sprintf("moved to hex %d via %d leg(s)", plan.finalHex, len(plan.legs))
	if plan.diverted && plan.diversionDetail != "" {
		detail += " (" + plan.diversionDetail + ")"
	}
	return completed(detail)
}

func anyNight(legs []MovementLeg) bool {
	for _, leg := range legs {
		if leg.IsNight {
			return true
		}
	}
	return false
}

func prepareMovementPlan(
	ctx Context,
	order *campaign.Order,
	army *campaign.Army,
	payload MovePayload,
) (movementPlan, error) {
	if len(payload.Legs) == 0 && payload.DestinationHexID != nil {
		planned, err := movement.PlanRoute(ctx.Campaign, army, army.CurrentHexID, *payload.DestinationHexID)
		if err != nil {
			return movementPlan{}, err
		}
		for _, leg := range planned {
			onRoad := leg.OnRoad
			payload.Legs = append(payload.Legs, MovementLeg{
				ToHexID:       leg.ToHexID,
				DistanceMiles: leg.Miles,
				OnRoad:        &onRoad,
				HasRiverFord:  leg.HasRiverFord,
			})
		}
	}
	if len(payload.Legs) == 0 {
		return movementPlan{}, fmt.Errorf("movement order missing legs")
	}

	movementType := campaign.MoveStandard
	if payload.MovementType != "" {
		parsed, ok := campaign.ParseMovementType(payload.MovementType)
		if !ok {
			return movementPlan{}, fmt.Errorf("invalid movement type: %s", payload.MovementType)
		}
		movementType = parsed
	}

	offRoad := make([]bool, len(payload.Legs))
	fords := make([]bool, len(payload.Legs))
	for i, leg := range payload.Legs {
		if leg.DistanceMiles <= 0 {
			return movementPlan{}, fmt.Errorf("movement leg requires positive distance")
		}
		if leg.HasFork && leg.AlternateHexID == nil {
			return movementPlan{}, fmt.Errorf("movement leg with fork requires alternate_hex_id")
		}
		offRoad[i] = !leg.Road()
		fords[i] = leg.HasRiverFord
	}

	isNight := movementType == campaign.MoveNight || anyNight(payload.Legs)
	validation := movement.ValidateMovementOrder(army, offRoad, fords, isNight)
	if !validation.Valid {
		return movementPlan{}, fmt.Errorf("%s", validation.Error)
	}

	traits := ctx.Campaign.TraitsFor(army)
	plan := movementPlan{movementType: movementType, finalHex: army.CurrentHexID}

	for i, leg := range payload.Legs {
		legType := movementType
		if leg.IsNight {
			legType = campaign.MoveNight
		}
		allowance := movement.DailyMovementMiles(ctx.Campaign, army, legType, movement.Options{
			OnRoad:          leg.Road(),
			Traits:          traits,
			WeatherModifier: payload.WeatherModifier,
			Rules:           ctx.Rules,
		})
		if allowance <= 0 {
			return movementPlan{}, fmt.Errorf("movement allowance is zero for a leg")
		}
		plan.totalFraction += leg.DistanceMiles / allowance
		plan.legs = append(plan.legs, leg)
		plan.finalHex = leg.ToHexID

		if (movementType == campaign.MoveNight || leg.IsNight) && leg.HasFork && !plan.diverted {
			seed := fmt.Sprintf("night-fork:%d:%d:%d", order.ID, ctx.Campaign.CurrentDay, i+1)
			wrong, err := movement.ShouldTakeWrongFork(seed, ctx.Rules)
			if err != nil {
				return movementPlan{}, err
			}
			if wrong {
				plan.finalHex = *leg.AlternateHexID
				plan.diverted = true
				plan.diversionDetail = fmt.Sprintf("took wrong fork on leg %d", i+1)
				break
			}
		}
	}

	if plan.totalFraction > 1.0 {
		return movementPlan{}, fmt.Errorf("movement exceeds daily allowance")
	}
	return plan, nil
}

func handleRest(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("rest order requires an army")
	}
	if harried := army.StatusEffects.Harried; harried != nil && harried.Day == ctx.Campaign.CurrentDay {
		return failure("army is harried and cannot rest today")
	}

	var payload RestPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	duration := 1
	if payload.DurationDays != nil {
		duration = *payload.DurationDays
	}
	if duration <= 0 {
		return failure("rest duration must be positive")
	}

	day := ctx.Campaign.CurrentDay
	army.Status = campaign.Resting
	army.RestDurationDays = &duration
	army.RestStartedDay = &day
	army.DaysMarchedThisWeek = 0
	army.MovementPointsRemaining = 0
	army.DestinationHexID = nil
	morale.Adjust(army, rules.Max(0, army.MoraleResting-army.MoraleCurrent))

	return completed(fmt.Sprintf("resting for %d day(s)", duration))
}

func handleForage(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("forage order requires an army")
	}
	var payload HexListPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if len(payload.HexIDs) == 0 {
		return failure("forage order missing hex_ids")
	}

	outcome := supply.Forage(ctx.Campaign, army, payload.HexIDs, supply.Options{
		Weather: weatherSeverity(ctx.Campaign),
		RollD6:  revoltRoller(fmt.Sprintf("forage-revolt:%d:%d", army.ID, ctx.Campaign.CurrentDay)),
		Rules:   ctx.Rules,
	})

	detail := fmt.Sprintf("foraged %d hex(es)", len(outcome.ForagedHexes))
	if outcome.SuppliesGained > 0 {
		detail += fmt.Sprintf(" gaining %d supplies", outcome.SuppliesGained)
	}
	if outcome.RevoltTriggered {
		detail += "; revolt triggered"
	}
	if !outcome.Success {
		return failure(detail)
	}
	army.Status = campaign.Foraging
	return completed(detail)
}

func handleTorch(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("torch order requires an army")
	}
	var payload HexListPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if len(payload.HexIDs) == 0 {
		return failure("torch order missing hex_ids")
	}

	outcome := supply.Torch(ctx.Campaign, army, payload.HexIDs, supply.Options{
		Weather: weatherSeverity(ctx.Campaign),
		RollD6:  revoltRoller(fmt.Sprintf("torch-revolt:%d:%d", army.ID, ctx.Campaign.CurrentDay)),
		Rules:   ctx.Rules,
	})

	detail := fmt.Sprintf("torched %d hex(es)", len(outcome.TorchedHexes))
	if outcome.RevoltTriggered {
		detail += "; revolt triggered"
	}
	if !outcome.Success {
		return failure(detail)
	}
	return completed(detail)
}

func handleSupplyTransfer(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("supply transfer requires an army")
	}
	var payload SupplyTransferPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if payload.TargetArmyID == 0 {
		return failure("supply transfer requires target_army_id and amount")
	}
	if payload.Amount <= 0 {
		return failure("transfer amount must be positive")
	}

	target := ctx.Campaign.Armies[payload.TargetArmyID]
	if target == nil {
		return failure("target army not found")
	}

	available := rules.Min(payload.Amount, army.SuppliesCurrent)
	capacity := rules.Max(0, target.SuppliesCapacity-target.SuppliesCurrent)
	amount := rules.Min(available, capacity)
	if amount <= 0 {
		return failure("no supplies transferable")
	}

	army.SuppliesCurrent -= amount
	target.SuppliesCurrent += amount
	return completed(fmt.Sprintf("transferred %d supplies to army %d", amount, payload.TargetArmyID))
}

func handleBesiege(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("besiege order requires an army")
	}
	var payload BesiegePayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if payload.StrongholdID == 0 {
		return failure("besiege order missing stronghold_id")
	}

	stronghold := ctx.Campaign.Strongholds[payload.StrongholdID]
	if stronghold == nil {
		return failure("stronghold not found")
	}

	existing := siege.FindByStronghold(ctx.Campaign, payload.StrongholdID)
	if existing == nil {
		existing = &campaign.Siege{
			ID:                ctx.Campaign.NextSiegeID(),
			StrongholdID:      payload.StrongholdID,
			AttackerArmyIDs:   []campaign.ArmyID{army.ID},
			DefenderArmyID:    stronghold.GarrisonArmyID,
			StartedOnDay:      ctx.Campaign.CurrentDay,
			CurrentThreshold:  stronghold.CurrentThreshold,
			SiegeEnginesCount: payload.SiegeEngines,
		}
		ctx.Campaign.Sieges[existing.ID] = existing
	} else if !existing.HasAttacker(army.ID) {
		existing.AttackerArmyIDs = append(existing.AttackerArmyIDs, army.ID)
	}

	army.Status = campaign.Besieging
	return completed(fmt.Sprintf("besieging stronghold %d", payload.StrongholdID))
}

func handleAssault(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("assault order requires an army")
	}
	var payload AssaultPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if payload.StrongholdID == 0 {
		return failure("assault order missing stronghold_id")
	}

	stronghold := ctx.Campaign.Strongholds[payload.StrongholdID]
	if stronghold == nil {
		return failure("stronghold not found")
	}
	if stronghold.GarrisonArmyID == nil {
		return failure("stronghold has no garrison army")
	}
	defender := ctx.Campaign.Armies[*stronghold.GarrisonArmyID]
	if defender == nil {
		return failure("stronghold has no garrison army")
	}

	ongoing := siege.FindByStronghold(ctx.Campaign, payload.StrongholdID)
	engines := 0
	if ongoing != nil {
		engines = ongoing.SiegeEnginesCount
	}
	defenderBonus := rules.Max(0, stronghold.DefensiveBonus-engines)

	opts := battle.Options{
		// Attacking walls concedes a flat penalty before any caller tuning.
		AttackerModifier: -1 + payload.AttackerModifier,
		DefenderModifier: defenderBonus + payload.DefenderModifier,
		AttackerSeed:     fmt.Sprintf("assault:%d:%d:attacker", payload.StrongholdID, ctx.Campaign.CurrentDay),
		DefenderSeed:     fmt.Sprintf("assault:%d:%d:defender", payload.StrongholdID, ctx.Campaign.CurrentDay),
	}
	if payload.AttackerFixedRoll != nil {
		opts.AttackerFixedRolls = map[campaign.ArmyID]int{army.ID: *payload.AttackerFixedRoll}
	}
	if payload.DefenderFixedRoll != nil {
		opts.DefenderFixedRolls = map[campaign.ArmyID]int{defender.ID: *payload.DefenderFixedRoll}
	}

	army.Status = campaign.InBattle
	defender.Status = campaign.InBattle

	result, err := battle.Resolve(
		[]*campaign.Army{army}, []*campaign.Army{defender},
		ctx.Campaign.UnitTypes, opts, ctx.Rules,
	)
	if err != nil {
		return failure(err.Error())
	}

	// Storming or holding walls is bloodier than an open field.
	if result.Winner == "attacker" {
		applyAdditionalLosses(defender, assaultExtraLossPct)
	} else {
		applyAdditionalLosses(army, assaultExtraLossPct)
	}

	var events []campaign.Event
	detail := "assault result: " + result.Winner

	if result.Winner == "attacker" {
		captureDetail, captureEvents, err := resolveStrongholdCapture(
			ctx, army, defender, stronghold, ongoing, payload.Pillage,
		)
		if err != nil {
			return failure(err.Error())
		}
		if captureDetail != "" {
			detail += "; " + captureDetail
		}
		events = append(events, captureEvents...)
	}

	if army.Status != campaign.Routed {
		army.Status = campaign.Idle
	}
	if result.Winner == "attacker" {
		defender.Status = campaign.Routed
	} else if defender.Status != campaign.Routed {
		defender.Status = campaign.Idle
	}
	return completed(detail, events...)
}

func handleEmbark(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("embark order requires an army")
	}
	var payload ShipPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	ship := ctx.Campaign.Ships[payload.ShipID]
	if ship == nil {
		return failure("ship not found")
	}
	result := naval.Embark(army, ship, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func handleDisembark(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("disembark order requires an army")
	}
	var payload ShipPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	ship := ctx.Campaign.Ships[payload.ShipID]
	if ship == nil {
		return failure("ship not found")
	}
	result := naval.Disembark(army, ship, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func handleNavalMove(ctx Context, order *campaign.Order) ExecutionResult {
	var payload NavalMovePayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	ship := ctx.Campaign.Ships[payload.ShipID]
	if ship == nil {
		return failure("ship not found")
	}
	if len(payload.Route) == 0 {
		return failure("naval move requires route")
	}
	result := naval.SetCourse(ctx.Campaign, ship, payload.Route, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func handleSendMessage(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	var payload SendMessagePayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if payload.RecipientID == 0 {
		return failure("send_message requires recipient_id")
	}

	territory := campaign.TerritoryFriendly
	if payload.TerritoryType != "" {
		parsed, ok := campaign.ParseTerritory(payload.TerritoryType)
		if !ok {
			return failure(fmt.Sprintf("invalid territory type: %s", payload.TerritoryType))
		}
		territory = parsed
	}

	sender := order.CommanderID
	if army != nil {
		sender = army.CommanderID
	}

	msg := &campaign.Message{
		ID:          ctx.Campaign.NextMessageID(),
		SenderID:    sender,
		RecipientID: payload.RecipientID,
		Content:     payload.Content,
		Territory:   territory,
		SentDay:     ctx.Campaign.CurrentDay,
	}

	var fromHex *campaign.HexID
	if army != nil {
		hexID := army.CurrentHexID
		fromHex = &hexID
	}
	result := messaging.Dispatch(ctx.Campaign, msg, fromHex, nil, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func handleLaunchOperation(ctx Context, order *campaign.Order) ExecutionResult {
	var payload LaunchOperationPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}

	var op *campaign.Operation
	if payload.OperationID != nil {
		op = ctx.Campaign.Operations[*payload.OperationID]
	}
	if op == nil {
		opType := campaign.OpIntelligence
		if payload.OperationType != "" {
			if parsed, ok := campaign.ParseOperationType(payload.OperationType); ok {
				opType = parsed
			}
		}
		complexity := campaign.ComplexityStandard
		if payload.Complexity != "" {
			if parsed, ok := campaign.ParseOperationComplexity(payload.Complexity); ok {
				complexity = parsed
			}
		}
		lootCost := ctx.Rules.Operations.LootCostDefault
		if payload.LootCost != nil {
			lootCost = *payload.LootCost
		}
		var territory *campaign.Territory
		if payload.TerritoryType != "" {
			if parsed, ok := campaign.ParseTerritory(payload.TerritoryType); ok {
				territory = &parsed
			}
		}
		op = &campaign.Operation{
			ID:                 ctx.Campaign.NextOperationID(),
			CommanderID:        order.CommanderID,
			Type:               opType,
			Complexity:         complexity,
			LootCost:           lootCost,
			TargetDescriptor:   payload.TargetDescriptor,
			Territory:          territory,
			DifficultyModifier: payload.DifficultyModifier,
		}
		ctx.Campaign.Operations[op.ID] = op
	}

	outcome, err := operations.Resolve(ctx.Campaign, op, "", ctx.Rules)
	if err != nil {
		return failure(err.Error())
	}
	return completed(outcome.Detail)
}

func handleRaiseArmy(ctx Context, order *campaign.Order) ExecutionResult {
	var payload RaiseArmyPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if order.Scheduled == nil {
		return startRaiseArmy(ctx, order, payload)
	}
	return completeRaiseArmy(ctx, order, payload)
}

func startRaiseArmy(ctx Context, order *campaign.Order, payload RaiseArmyPayload) ExecutionResult {
	c := ctx.Campaign

	stronghold := c.Strongholds[payload.StrongholdID]
	if stronghold == nil {
		return failure("stronghold not found")
	}
	commander := c.Commanders[payload.NewCommanderID]
	if commander == nil {
		return failure("commander not found")
	}
	infantryType := c.UnitTypes[payload.InfantryUnitTypeID]
	if infantryType == nil {
		return failure("unit type not found")
	}
	var cavalryTypeID *campaign.UnitTypeID
	if payload.CavalryUnitTypeID != nil {
		if c.UnitTypes[*payload.CavalryUnitTypeID] == nil {
			return failure("unit type not found")
		}
		cavalryTypeID = payload.CavalryUnitTypeID
	}

	rallyHexID := stronghold.HexID
	if payload.RallyHexID != nil {
		rallyHexID = *payload.RallyHexID
	}
	if c.Map.Hexes[rallyHexID] == nil {
		return failure("rally hex not found")
	}

	result, err := recruitment.Start(c, recruitment.Input{
		Stronghold:     stronghold,
		Commander:      commander,
		RallyHexID:     rallyHexID,
		PendingOrderID: order.ID,
	}, ctx.Rules)
	if err != nil {
		return failure(err.Error())
	}

	result.Project.InfantryUnitTypeID = infantryType.ID
	result.Project.CavalryUnitTypeID = cavalryTypeID

	order.Scheduled = &campaign.ScheduledProject{ProjectID: result.Project.ID}
	completesOn := result.Project.CompletesOnDay
	order.ExecuteDay = &completesOn

	var events []campaign.Event
	if len(result.Revolts) > 0 {
		ids := make([]any, 0, len(result.Revolts))
		for _, rebel := range result.Revolts {
			ids = append(ids, int64(rebel.ID))
		}
		events = append(events, c.EmitEvent("recruitment_revolt",
			"recruitment sparked a revolt", map[string]any{"army_ids": ids}))
	}
	return ExecutionResult{Status: campaign.OrderExecuting, Detail: result.Detail, Events: events}
}

func completeRaiseArmy(ctx Context, order *campaign.Order, payload RaiseArmyPayload) ExecutionResult {
	c := ctx.Campaign
	project := c.Recruitments[order.Scheduled.ProjectID]
	if project == nil {
		return failure("recruitment project missing")
	}

	if c.CurrentDay < project.CompletesOnDay {
		remaining := project.CompletesOnDay - c.CurrentDay
		completesOn := project.CompletesOnDay
		order.ExecuteDay = &completesOn
		detail := fmt.Sprintf("recruitment in progress; %d day(s) remaining", remaining)
		return ExecutionResult{Status: campaign.OrderExecuting, Detail: detail}
	}

	infantryType := c.UnitTypes[project.InfantryUnitTypeID]
	if infantryType == nil {
		return failure("unit type not found")
	}
	var cavalryType *campaign.UnitType
	if project.CavalryUnitTypeID != nil {
		cavalryType = c.UnitTypes[*project.CavalryUnitTypeID]
		if cavalryType == nil {
			return failure("unit type not found")
		}
	}

	name := payload.ArmyName
	if name == "" {
		if commander := c.Commanders[project.CommanderID]; commander != nil {
			name = commander.Name
		} else {
			name = "Raised Army"
		}
	}

	completion, err := recruitment.Complete(c, project, recruitment.CompletionOptions{
		ArmyName:     name,
		InfantryType: infantryType,
		CavalryType:  cavalryType,
		Rules:        ctx.Rules,
	})
	if err != nil {
		return failure(err.Error())
	}
	return completed(completion.Detail)
}

func handleHarry(ctx Context, order *campaign.Order, army *campaign.Army) ExecutionResult {
	if army == nil {
		return failure("harry order requires an army")
	}
	var payload HarryPayload
	if err := decodePayload(order.Parameters, &payload); err != nil {
		return failure(err.Error())
	}
	if len(payload.DetachmentIDs) == 0 {
		return failure("harry order requires detachment_ids")
	}

	wanted := make(map[campaign.DetachmentID]bool, len(payload.DetachmentIDs))
	for _, id := range payload.DetachmentIDs {
		wanted[id] = true
	}
	var detached []*campaign.Detachment
	for i := range army.Detachments {
		if wanted[army.Detachments[i].ID] {
			detached = append(detached, &army.Detachments[i])
		}
	}
	if len(detached) == 0 {
		return failure("no matching detachments for harrying")
	}

	target := ctx.Campaign.Armies[payload.TargetArmyID]
	if target == nil {
		return failure("target army not found")
	}

	objective := payload.Objective
	if objective == "" {
		objective = harrying.ObjectiveKill
	}

	outcome, err := harrying.Resolve(ctx.Campaign, army, target, detached, objective)
	if err != nil {
		return failure(err.Error())
	}

	event := ctx.Campaign.EmitEvent("harry", outcome.Detail, map[string]any{
		"success":              outcome.Success,
		"target_army_id":       int64(target.ID),
		"objective":            objective,
		"roll":                 outcome.Roll,
		"modifier":             outcome.Modifier,
		"inflicted_casualties": outcome.InflictedCasualties,
		"attacker_losses":      outcome.AttackerLosses,
		"supplies_burned":      outcome.SuppliesBurned,
		"supplies_stolen":      outcome.SuppliesStolen,
		"loot_stolen":          outcome.LootStolen,
	})

	if !outcome.Success {
		return ExecutionResult{
			Status: campaign.OrderFailed,
			Detail: outcome.Detail,
			Events: []campaign.Event{event},
		}
	}
	return completed(outcome.Detail, event)
}

// weatherSeverity returns the rolled weather for the current day, empty when
// none was recorded.
func weatherSeverity(c *campaign.Campaign) string {
	if day, ok := c.Weather[c.CurrentDay]; ok {
		return day.Severity
	}
	return ""
}

// revoltRoller returns a d6 roller deriving each roll from the prefix and a
// call counter, so repeated checks within one order stay independent yet
// replayable.
func revoltRoller(seedPrefix string) func() int {
	n := 0
	return func() int {
		n++
		roll, err := rng.RollDice(fmt.Sprintf("%s:%d", seedPrefix, n), "1d6")
		if err != nil {
			return 6
		}
		return roll.Total
	}
}
