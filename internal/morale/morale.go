// Package morale implements morale checks and the failure consequence table.
// A check is 2d6 against current morale; failures cascade into desertions,
// defections, or departures keyed on the failing roll.
package morale

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

// Adjust shifts army morale by delta, clamped to [0, morale_max].
func Adjust(army *campaign.Army, delta int) {
	army.MoraleCurrent = rules.Clamp(army.MoraleCurrent+delta, 0, army.MoraleMax)
}

// Check rolls 2d6 against the army's current morale. Success means the roll
// came in at or under morale.
func Check(morale int, seed string) (success bool, roll int, err error) {
	result, err := rng.RollDice(seed, "2d6")
	if err != nil {
		return false, 0, err
	}
	return result.Total <= morale, result.Total, nil
}

// Consequence names each entry in the morale failure table, keyed by the
// effective 2d6 roll.
type Consequence int

const (
	Mutiny            Consequence = 2  // 19-in-20 per detachment defects
	MassDesertion     Consequence = 3  // 30% loss
	DetachmentsDefect Consequence = 4  // 1d6 detachments defect
	MajorDesertion    Consequence = 5  // 20% loss
	ArmySplits        Consequence = 6  // 3-in-6 per detachment splits off
	RandomDefection   Consequence = 7  // one random detachment defects
	Desertion         Consequence = 8  // 10% loss
	DetachmentsDepart Consequence = 9  // 1d6 detachments depart 2d6 days
	CampFollowers     Consequence = 10 // +5% noncombatants
	DetachmentDeparts Consequence = 11 // one detachment departs 2d6 days
	NoConsequences    Consequence = 12
)

var consequenceNames = map[Consequence]string{
	Mutiny:            "mutiny",
	MassDesertion:     "mass_desertion",
	DetachmentsDefect: "detachments_defect",
	MajorDesertion:    "major_desertion",
	ArmySplits:        "army_splits",
	RandomDefection:   "random_detachment_defects",
	Desertion:         "desertion",
	DetachmentsDepart: "detachments_depart",
	CampFollowers:     "camp_followers",
	DetachmentDeparts: "detachment_departs",
	NoConsequences:    "no_consequences",
}

func (c Consequence) String() string {
	if name, ok := consequenceNames[c]; ok {
		return name
	}
	return "unknown"
}

// ConsequenceReport records what a morale failure did to the army.
type ConsequenceReport struct {
	Consequence          Consequence `json:"consequence"`
	Roll                 int         `json:"roll"`
	LossPercentage       float64     `json:"loss_percentage,omitempty"`
	DefectingDetachments int         `json:"defecting_detachments,omitempty"`
	DepartingDetachments int         `json:"departing_detachments,omitempty"`
	ReturnInDays         int         `json:"return_in_days,omitempty"`
	NoncombatantIncrease int         `json:"noncombatant_increase,omitempty"`
}

// ApplyConsequence applies the morale failure table to the army in place.
// The Poet trait softens the outcome by adding 2 to the roll before the
// lookup, clamped to the 2..12 table range. Defecting detachments are
// removed from the army; departed detachments are recorded on the army's
// status effects with a return day.
func ApplyConsequence(
	army *campaign.Army,
	roll int,
	traits []campaign.Trait,
	seed string,
	currentDay int,
) (ConsequenceReport, error) {
	effective := roll
	if campaign.HasTrait(traits, campaign.TraitPoet) {
		effective += 2
	}
	consequence := Consequence(rules.Clamp(effective, 2, 12))
	report := ConsequenceReport{Consequence: consequence, Roll: roll}

	switch consequence {
	case Mutiny:
		defected := 0
		kept := army.Detachments[:0]
		for i := range army.Detachments {
			check, err := rng.CheckSuccess(fmt.Sprintf("%s:mutiny:%d", seed, i), "1d20", 19.0/20.0)
			if err != nil {
				return report, err
			}
			if check.Success {
				defected++
			} else {
				kept = append(kept, army.Detachments[i])
			}
		}
		army.Detachments = kept
		report.DefectingDetachments = defected

	case MassDesertion:
		applyPercentageLoss(army, 0.30)
		report.LossPercentage = 0.30

	case DetachmentsDefect:
		count, err := rng.RollDice(seed+":defect-count", "1d6")
		if err != nil {
			return report, err
		}
		removed, err := removeRandomDetachments(army, count.Total, seed+":defect")
		if err != nil {
			return report, err
		}
		report.DefectingDetachments = removed

	case MajorDesertion:
		applyPercentageLoss(army, 0.20)
		report.LossPercentage = 0.20

	case ArmySplits:
		var splitting []int
		for i := range army.Detachments {
			check, err := rng.CheckSuccess(fmt.Sprintf("%s:split:%d", seed, i), "1d6", 0.5)
			if err != nil {
				return report, err
			}
			if check.Success {
				splitting = append(splitting, i)
			}
		}
		// Always keep at least one detachment in the army.
		if len(splitting) >= len(army.Detachments) {
			splitting = splitting[:len(splitting)-1]
		}
		leaving := make(map[int]bool, len(splitting))
		for _, idx := range splitting {
			leaving[idx] = true
		}
		kept := army.Detachments[:0]
		for i := range army.Detachments {
			if !leaving[i] {
				kept = append(kept, army.Detachments[i])
			}
		}
		army.Detachments = kept
		report.DefectingDetachments = len(splitting)

	case RandomDefection:
		if len(army.Detachments) > 1 {
			removed, err := removeRandomDetachments(army, 1, seed+":single-defect")
			if err != nil {
				return report, err
			}
			report.DefectingDetachments = removed
		}

	case Desertion:
		applyPercentageLoss(army, 0.10)
		report.LossPercentage = 0.10

	case DetachmentsDepart:
		count, err := rng.RollDice(seed+":depart-count", "1d6")
		if err != nil {
			return report, err
		}
		days, err := rng.RollDice(seed+":depart-days", "2d6")
		if err != nil {
			return report, err
		}
		departed, err := selectRandomDetachments(army, count.Total, seed+":depart")
		if err != nil {
			return report, err
		}
		if len(departed) > 0 {
			army.StatusEffects.DepartedDetachments = &campaign.DepartedDetachments{
				DetachmentIDs: departed,
				ReturnDay:     currentDay + days.Total,
			}
			report.DepartingDetachments = len(departed)
			report.ReturnInDays = days.Total
		}

	case CampFollowers:
		increase := int(float64(army.NoncombatantCount) * 0.05)
		army.NoncombatantCount += increase
		report.NoncombatantIncrease = increase

	case DetachmentDeparts:
		days, err := rng.RollDice(seed+":single-depart-days", "2d6")
		if err != nil {
			return report, err
		}
		departed, err := selectRandomDetachments(army, 1, seed+":single-depart")
		if err != nil {
			return report, err
		}
		if len(departed) > 0 {
			army.StatusEffects.DepartedDetachments = &campaign.DepartedDetachments{
				DetachmentIDs: departed,
				ReturnDay:     currentDay + days.Total,
			}
			report.DepartingDetachments = 1
			report.ReturnInDays = days.Total
		}

	case NoConsequences:
	}

	return report, nil
}

// applyPercentageLoss thins every detachment by the fraction, flooring each
// at one soldier, and scales supplies by the same fraction.
func applyPercentageLoss(army *campaign.Army, loss float64) {
	for i := range army.Detachments {
		det := &army.Detachments[i]
		det.Soldiers = rules.Max(1, int(float64(det.Soldiers)*(1-loss)))
	}
	army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - loss))
}

// removeRandomDetachments drops up to count seeded-random detachments,
// always leaving at least one behind. Returns how many were removed.
func removeRandomDetachments(army *campaign.Army, count int, seed string) (int, error) {
	ids, err := selectRandomDetachments(army, count, seed)
	if err != nil {
		return 0, err
	}
	selected := make(map[campaign.DetachmentID]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	kept := army.Detachments[:0]
	for _, det := range army.Detachments {
		if !selected[det.ID] {
			kept = append(kept, det)
		}
	}
	army.Detachments = kept
	return len(ids), nil
}

// selectRandomDetachments picks up to count distinct detachment ids,
// leaving at least one unselected.
func selectRandomDetachments(army *campaign.Army, count int, seed string) ([]campaign.DetachmentID, error) {
	count = rules.Min(count, rules.Max(0, len(army.Detachments)-1))
	if count <= 0 {
		return nil, nil
	}

	remaining := make([]campaign.DetachmentID, 0, len(army.Detachments))
	for _, det := range army.Detachments {
		remaining = append(remaining, det.ID)
	}

	var picked []campaign.DetachmentID
	for i := 0; i < count; i++ {
		choice, err := rng.Choice(fmt.Sprintf("%s:%d", seed, i), remaining)
		if err != nil {
			return nil, err
		}
		picked = append(picked, choice.Choice)
		remaining = append(remaining[:choice.Index], remaining[choice.Index+1:]...)
	}
	return picked, nil
}
