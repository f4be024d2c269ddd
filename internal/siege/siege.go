// Package siege implements siege progression: the weekly threshold decay
// and the gate roll that can end an investment without an assault.
package siege

import (
	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

// AdvanceResult summarises one weekly siege advance.
type AdvanceResult struct {
	GatesOpened    bool
	ThresholdAfter int
	Roll           int
}

// Advance progresses a siege by one week, mutating the record. The
// threshold drops by the weekly modifier plus any recorded modifiers
// (disease, resupply, sorties) and one pip per siege-engine detachment,
// never below the starvation floor. A 2d6 roll above the updated threshold
// opens the gates.
func Advance(s *campaign.Siege, rollSeed string, r rules.Rules) (AdvanceResult, error) {
	s.WeeksElapsed++
	threshold := s.CurrentThreshold + r.Siege.WeeklyModifier

	for _, mod := range s.ThresholdModifiers {
		switch {
		case mod.Value != nil:
			threshold += *mod.Value
		case mod.Type == campaign.SiegeModifierDisease:
			threshold += r.Siege.DiseaseModifier
		case mod.Type == campaign.SiegeModifierResupply:
			threshold += r.Siege.ResupplyModifier
		case mod.Type == campaign.SiegeModifierAttacked:
			threshold += r.Siege.AttackedModifier
		}
	}

	if s.SiegeEnginesCount > 0 {
		threshold -= s.SiegeEnginesCount * r.Siege.EngineReductionPerDetach
	}
	s.CurrentThreshold = rules.Max(r.Siege.StarvationThreshold, threshold)

	roll, err := rng.RollDice(rollSeed, "2d6")
	if err != nil {
		return AdvanceResult{}, err
	}
	opened := roll.Total > s.CurrentThreshold
	if opened {
		s.Status = campaign.SiegeGatesOpened
	}

	return AdvanceResult{
		GatesOpened:    opened,
		ThresholdAfter: s.CurrentThreshold,
		Roll:           roll.Total,
	}, nil
}

// FindByStronghold returns the siege investing the stronghold, or nil.
func FindByStronghold(c *campaign.Campaign, id campaign.StrongholdID) *campaign.Siege {
	for _, s := range c.Sieges {
		if s.StrongholdID == id {
			return s
		}
	}
	return nil
}
