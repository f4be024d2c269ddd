// Package weather generates the day's conditions from the campaign seed.
// Each season has its own distribution; the roll is a pure function of
// (campaign, day), so replays see the same skies.
package weather

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rng"
)

// Condition names, in the order each season's table is consulted.
const (
	Clear   = "clear"
	Rain    = "rain"
	Fog     = "fog"
	Snow    = "snow"
	Storm   = "storm"
	VeryBad = "very_bad"
)

// Effects are the rule modifiers a condition imposes.
type Effects struct {
	ScoutingModifier int
	MovementModifier int
	BattleModifier   int
	SickRisk         bool
}

type bucket struct {
	condition string
	weight    int
}

// Seasonal distributions, weights out of 100. Entries are cumulative in
// table order; an exhausted table falls back to clear.
var seasonTables = map[campaign.Season][]bucket{
	campaign.Spring: {{Clear, 40}, {Rain, 30}, {Fog, 15}, {Storm, 10}, {Snow, 5}},
	campaign.Summer: {{Clear, 60}, {Rain, 20}, {Fog, 10}, {Storm, 5}, {VeryBad, 5}},
	campaign.Fall:   {{Clear, 35}, {Rain, 30}, {Fog, 20}, {Storm, 10}, {Snow, 5}},
	campaign.Winter: {{Clear, 25}, {Snow, 35}, {Storm, 20}, {Fog, 10}, {VeryBad, 10}},
}

var effectsByCondition = map[string]Effects{
	Clear:   {},
	Rain:    {ScoutingModifier: -1},
	Fog:     {ScoutingModifier: -1},
	Snow:    {ScoutingModifier: -1, MovementModifier: -1},
	Storm:   {ScoutingModifier: -2, MovementModifier: -1, BattleModifier: -1},
	VeryBad: {ScoutingModifier: -2, MovementModifier: -2, BattleModifier: -1, SickRisk: true},
}

// EffectsFor returns the modifiers for a condition name, zero for unknown.
func EffectsFor(condition string) Effects {
	return effectsByCondition[condition]
}

// Severity classifies a condition for the visibility rules: clear, bad, or
// very_bad.
func Severity(condition string) string {
	switch condition {
	case Snow, Storm:
		return "bad"
	case VeryBad:
		return VeryBad
	default:
		return Clear
	}
}

// Generate rolls the day's weather and records it on the campaign. Calling
// it twice for the same day returns the recorded entry.
func Generate(c *campaign.Campaign, day int) (campaign.WeatherDay, error) {
	if existing, ok := c.Weather[day]; ok {
		return existing, nil
	}

	seed, err := rng.Seed(int64(c.ID), day, "morning", "weather")
	if err != nil {
		return campaign.WeatherDay{}, err
	}
	roll, err := rng.IntBetween(seed, 1, 100)
	if err != nil {
		return campaign.WeatherDay{}, err
	}

	condition := Clear
	cumulative := 0
	for _, b := range seasonTables[c.Season] {
		cumulative += b.weight
		if roll.Value <= cumulative {
			condition = b.condition
			break
		}
	}

	entry := campaign.WeatherDay{
		GameDay:     day,
		Description: condition,
		Severity:    Severity(condition),
	}
	c.Weather[day] = entry
	c.EmitEvent("weather_change", fmt.Sprintf("weather changed to %s", condition),
		map[string]any{"weather_type": condition})
	return entry, nil
}

// MovementModifier returns the day's movement penalty in miles, zero when no
// weather was rolled.
func MovementModifier(c *campaign.Campaign, day int) int {
	entry, ok := c.Weather[day]
	if !ok {
		return 0
	}
	return EffectsFor(entry.Description).MovementModifier
}

// ConsecutiveBadDays counts how many days up to and including day had storm
// or worse, looking back at most a week.
func ConsecutiveBadDays(c *campaign.Campaign, day int) int {
	count := 0
	for check := day; check > day-7 && check >= 0; check-- {
		entry, ok := c.Weather[check]
		if !ok {
			break
		}
		if entry.Description != Storm && entry.Description != VeryBad {
			break
		}
		count++
	}
	return count
}
