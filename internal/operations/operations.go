// Package operations resolves covert actions: intelligence gathering,
// assassination, and sabotage attempts rolled against a difficulty target.
package operations

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

// Result reports how an operation resolved.
type Result struct {
	Success bool
	Roll    int
	Target  int
	Detail  string
}

// Resolve rolls the operation immediately and stamps the outcome onto the
// record. The target starts from the base difficulty and shifts with the
// operation's complexity, territory, and explicit difficulty modifier,
// clamped to the 2..12 range a 2d6 can reach.
func Resolve(c *campaign.Campaign, op *campaign.Operation, seed string, r rules.Rules) (Result, error) {
	modifier := op.DifficultyModifier
	switch op.Complexity {
	case campaign.ComplexitySimple:
		modifier += r.Operations.SimpleModifier
	case campaign.ComplexityComplex:
		modifier += r.Operations.ComplexModifier
	}
	if op.Territory != nil && *op.Territory == campaign.TerritoryHostile {
		modifier += r.Operations.HostileTerritoryModifier
	}

	target := rules.Clamp(r.Operations.BaseSuccessTarget-modifier, 2, 12)
	if seed == "" {
		seed = fmt.Sprintf("operation:%d", op.ID)
	}
	roll, err := rng.RollDice(seed, "2d6")
	if err != nil {
		return Result{}, err
	}
	success := roll.Total >= target

	day := c.CurrentDay
	op.ExecutedOnDay = &day
	op.SuccessChance = target
	if success {
		op.Outcome = campaign.OutcomeSuccess
	} else {
		op.Outcome = campaign.OutcomeFailure
	}
	op.Result = &campaign.OperationResultData{Roll: roll.Total, Target: target, Success: success}

	detail := "operation failed"
	if success {
		detail = "operation success"
	}
	return Result{Success: success, Roll: roll.Total, Target: target, Detail: detail}, nil
}
