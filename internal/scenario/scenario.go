// Package scenario generates playable campaigns from a seed using layered
// simplex noise. Elevation and moisture maps drive terrain, settlement
// density drives stronghold and faction placement, and everything downstream
// (roads, commanders, starting armies) is derived deterministically so the
// same seed always yields the same campaign.
package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/hexmap"
	"github.com/talgya/warmarch/internal/rules"
	"github.com/talgya/warmarch/internal/supply"
)

// Config holds campaign generation parameters.
type Config struct {
	Name     string
	Seed     int64
	Width    int
	Height   int
	Factions int
	Rules    rules.Rules
}

// Default returns a mid-sized three-faction setup.
func Default() Config {
	return Config{
		Name:     "Unnamed Campaign",
		Seed:     42,
		Width:    40,
		Height:   30,
		Factions: 3,
		Rules:    rules.Default(),
	}
}

const (
	seaLevel      = 0.30
	hillLevel     = 0.58
	mountainLevel = 0.74
	goodCountry   = 0.62
)

var factionSeeds = []struct {
	name  string
	color string
}{
	{"Kingdom of Verath", "#aa2222"},
	{"Talmar League", "#2244aa"},
	{"Oskarn Host", "#22aa44"},
	{"Duchy of Bren", "#aa8822"},
	{"Free Cities of Ith", "#8822aa"},
	{"Sarnic Empire", "#22aaaa"},
}

// Generate builds a complete campaign from the configuration. The result is
// reproducible per seed.
func Generate(cfg Config) (*campaign.Campaign, error) {
	if cfg.Width < 8 || cfg.Height < 8 {
		return nil, fmt.Errorf("map must be at least 8x8, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Factions < 2 || cfg.Factions > len(factionSeeds) {
		return nil, fmt.Errorf("faction count must be between 2 and %d, got %d", len(factionSeeds), cfg.Factions)
	}

	c := campaign.New(campaign.CampaignID(cfg.Seed), cfg.Name)
	c.Season = campaign.Spring
	c.StartDate = "Year 1, Day 1"

	generateTerrain(c, cfg)
	buildUnitCatalog(c)
	buildShipCatalog(c)

	sites := settlementSites(c, cfg)
	if len(sites) < cfg.Factions*2 {
		return nil, fmt.Errorf("seed %d produced only %d settlement sites, need %d", cfg.Seed, len(sites), cfg.Factions*2)
	}

	placeFactions(c, cfg, sites)
	placeRoads(c)
	placeShips(c, cfg)
	assignControl(c)

	return c, nil
}

// generateTerrain fills the hex grid from elevation, moisture, and fertility
// noise layers.
func generateTerrain(c *campaign.Campaign, cfg Config) {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	rainNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	fertNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	halfW := float64(cfg.Width) / 2
	halfH := float64(cfg.Height) / 2

	var id campaign.HexID
	for r := 0; r < cfg.Height; r++ {
		for q := 0; q < cfg.Width; q++ {
			id++

			// Axial to cartesian for noise sampling.
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
			fert := octaveNoise(fertNoise, x, y, 3, 0.05, 0.5)

			// Push the map edges toward water so campaigns have coasts.
			dx := (float64(q) - halfW) / halfW
			dy := (float64(r) - halfH) / halfH
			edge := math.Max(math.Abs(dx), math.Abs(dy))
			elev *= 1.0 - math.Pow(edge, 4)

			hx := &campaign.Hex{
				ID:      id,
				Q:       q,
				R:       r,
				Terrain: deriveTerrain(elev, rain),
			}

			if hx.Terrain == campaign.Flatland || hx.Terrain == campaign.Hills {
				hx.Settlement = settlementFor(fert, rain)
				hx.IsGoodCountry = hx.Terrain == campaign.Flatland && fert > goodCountry
				hx.ForagingTimesRemaining = cfg.Rules.Supply.ForagingLimitPerSeason
			} else if hx.Terrain == campaign.Forest {
				hx.ForagingTimesRemaining = cfg.Rules.Supply.ForagingLimitPerSeason / 2
			}

			c.Map.Hexes[id] = hx
		}
	}

	markCoast(c)
}

func deriveTerrain(elev, rain float64) campaign.HexTerrain {
	switch {
	case elev < seaLevel:
		return campaign.Water
	case elev > mountainLevel:
		return campaign.Mountain
	case elev > hillLevel:
		return campaign.Hills
	case rain > 0.60:
		return campaign.Forest
	default:
		return campaign.Flatland
	}
}

// settlementFor converts fertility into an abstract population count,
// rounded to the nearest hundred. Poor land stays empty.
func settlementFor(fert, rain float64) int {
	score := fert*0.7 + rain*0.3
	if score < 0.35 {
		return 0
	}
	pop := (score - 0.35) * 8000
	return int(math.Round(pop/100)) * 100
}

// markCoast relabels land hexes adjacent to water.
func markCoast(c *campaign.Campaign) {
	water := make(map[hexmap.Coord]bool)
	for _, hx := range c.Map.Hexes {
		if hx.Terrain == campaign.Water {
			water[hx.Coord()] = true
		}
	}
	for _, hx := range c.Map.Hexes {
		if hx.Terrain != campaign.Flatland {
			continue
		}
		for _, n := range hx.Coord().Neighbors() {
			if water[n] {
				hx.Terrain = campaign.Coast
				break
			}
		}
	}
}

// site is a candidate stronghold location.
type site struct {
	hex   *campaign.Hex
	score float64
}

// settlementSites ranks settled hexes by population and neighborhood,
// best first, enforcing a minimum spacing between picks.
func settlementSites(c *campaign.Campaign, cfg Config) []*campaign.Hex {
	var candidates []site
	for _, hx := range sortedHexes(c) {
		if hx.Settlement == 0 {
			continue
		}
		score := float64(hx.Settlement)
		for _, n := range hx.Coord().Neighbors() {
			nb := c.Map.HexAt(n.Q, n.R)
			if nb != nil {
				score += float64(nb.Settlement) * 0.25
			}
		}
		candidates = append(candidates, site{hex: hx, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].hex.ID < candidates[j].hex.ID
	})

	const minSpacing = 4
	var picked []*campaign.Hex
	for _, cand := range candidates {
		ok := true
		for _, p := range picked {
			if hexmap.Distance(cand.hex.Coord(), p.Coord()) < minSpacing {
				ok = false
				break
			}
		}
		if ok {
			picked = append(picked, cand.hex)
		}
	}
	return picked
}

var commanderNames = []string{
	"Aldric", "Berenna", "Cassival", "Dorn", "Elsavet", "Fenric",
	"Gavric", "Hild", "Iovan", "Kessa", "Lothar", "Maren",
	"Nerric", "Ossa", "Pell", "Ruvan", "Sigrun", "Talvik",
}

// placeFactions assigns the best sites round-robin to factions, founds
// strongholds, and raises each faction's starting army at its capital.
func placeFactions(c *campaign.Campaign, cfg Config, sites []*campaign.Hex) {
	sitesPerFaction := len(sites) / cfg.Factions
	if sitesPerFaction > 4 {
		sitesPerFaction = 4
	}

	rng := rand.New(rand.NewSource(cfg.Seed + 7))
	names := append([]string(nil), commanderNames...)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	nextName := 0
	pickName := func() string {
		if nextName < len(names) {
			n := names[nextName]
			nextName++
			return n
		}
		nextName++
		return fmt.Sprintf("Captain %d", nextName)
	}

	for f := 0; f < cfg.Factions; f++ {
		seedInfo := factionSeeds[f]
		faction := &campaign.Faction{
			ID:        c.NextFactionID(),
			Name:      seedInfo.name,
			Color:     seedInfo.color,
			Relations: make(map[campaign.FactionID]campaign.FactionRelation),
		}
		c.Factions[faction.ID] = faction

		var capital *campaign.Stronghold
		for s := 0; s < sitesPerFaction; s++ {
			idx := s*cfg.Factions + f
			if idx >= len(sites) {
				break
			}
			hx := sites[idx]

			kind := campaign.Town
			if s == 0 {
				kind = campaign.City
			} else if hx.Terrain == campaign.Hills {
				kind = campaign.Fortress
			}

			sh := foundStronghold(c, cfg, hx, faction.ID, kind)
			if capital == nil {
				capital = sh
			}
		}

		if capital != nil {
			raiseStartingArmy(c, cfg, faction, capital, pickName())
			garrisonCommander(c, faction, capital, pickName())
		}
	}

	// Every faction starts at war with every other.
	for _, a := range c.Factions {
		for _, b := range c.Factions {
			if a.ID == b.ID {
				continue
			}
			a.Relations[b.ID] = campaign.FactionRelation{
				OtherFactionID: b.ID,
				Relation:       campaign.Hostile,
				SinceDay:       0,
			}
		}
	}
}

func foundStronghold(c *campaign.Campaign, cfg Config, hx *campaign.Hex, factionID campaign.FactionID, kind campaign.StrongholdType) *campaign.Stronghold {
	var threshold, bonus int
	switch kind {
	case campaign.City:
		threshold = cfg.Rules.Siege.CityThreshold
		bonus = 2
	case campaign.Fortress:
		threshold = cfg.Rules.Siege.FortressThreshold
		bonus = 3
	default:
		threshold = cfg.Rules.Siege.TownThreshold
		bonus = 1
	}

	id := nextStrongholdID(c)
	sh := &campaign.Stronghold{
		ID:                   id,
		Name:                 fmt.Sprintf("%s %d", titleFor(kind), id),
		HexID:                hx.ID,
		Type:                 kind,
		ControllingFactionID: factionID,
		DefensiveBonus:       bonus,
		Threshold:            threshold,
		CurrentThreshold:     threshold,
		SuppliesHeld:         hx.Settlement * 2,
	}
	c.Strongholds[id] = sh
	hx.ControllingFactionID = &factionID
	return sh
}

func titleFor(kind campaign.StrongholdType) string {
	switch kind {
	case campaign.City:
		return "City"
	case campaign.Fortress:
		return "Fortress"
	default:
		return "Town"
	}
}

func nextStrongholdID(c *campaign.Campaign) campaign.StrongholdID {
	var max campaign.StrongholdID
	for id := range c.Strongholds {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// raiseStartingArmy gives a faction its initial field force: a core of
// spearmen, a cavalry wing, and a supply train, fully supplied.
func raiseStartingArmy(c *campaign.Campaign, cfg Config, faction *campaign.Faction, capital *campaign.Stronghold, name string) {
	cmdr := &campaign.Commander{
		ID:           c.NextCommanderID(),
		Name:         name,
		FactionID:    faction.ID,
		Age:          30,
		CurrentHexID: &capital.HexID,
		Status:       campaign.CommanderActive,
	}
	c.Commanders[cmdr.ID] = cmdr

	army := campaign.NewArmy(c.NextArmyID(), cmdr.ID, capital.HexID)
	army.Name = fmt.Sprintf("Army of %s", faction.Name)
	army.Detachments = []campaign.Detachment{
		{ID: c.NextDetachmentID(), UnitTypeID: unitSpearmen, Soldiers: 2000, Name: "Spear Levy"},
		{ID: c.NextDetachmentID(), UnitTypeID: unitArchers, Soldiers: 500, Name: "Archer Companies"},
		{ID: c.NextDetachmentID(), UnitTypeID: unitLightCavalry, Soldiers: 300, Name: "Outriders"},
		{ID: c.NextDetachmentID(), UnitTypeID: unitSupplyTrain, Soldiers: 0, Wagons: 20, Name: "Baggage Train"},
	}
	army.NoncombatantCount = int(float64(army.TotalSoldiers()) * cfg.Rules.Supply.BaseNoncombatantRatio)
	c.Armies[army.ID] = army

	snap := supply.BuildSnapshot(c, army, cfg.Rules)
	army.SuppliesCapacity = snap.Capacity
	army.DailySupplyConsumption = snap.Consumption
	army.ColumnLengthMiles = snap.ColumnLengthMiles
	army.SuppliesCurrent = snap.Consumption * cfg.Rules.Recruitment.SuppliedDays
	if army.SuppliesCurrent > army.SuppliesCapacity {
		army.SuppliesCurrent = army.SuppliesCapacity
	}
}

// garrisonCommander seats a second commander in the capital so messages and
// raise orders have a recipient when the field army marches out.
func garrisonCommander(c *campaign.Campaign, faction *campaign.Faction, capital *campaign.Stronghold, name string) {
	cmdr := &campaign.Commander{
		ID:           c.NextCommanderID(),
		Name:         name,
		FactionID:    faction.ID,
		Age:          45,
		CurrentHexID: &capital.HexID,
		Status:       campaign.CommanderActive,
	}
	c.Commanders[cmdr.ID] = cmdr
}

// placeRoads links each stronghold to its nearest neighbor stronghold with a
// walked hex path. Paths step greedily toward the target, skirting water.
func placeRoads(c *campaign.Campaign) {
	holds := make([]*campaign.Stronghold, 0, len(c.Strongholds))
	for _, sh := range c.Strongholds {
		holds = append(holds, sh)
	}
	sort.Slice(holds, func(i, j int) bool { return holds[i].ID < holds[j].ID })

	linked := make(map[[2]campaign.StrongholdID]bool)
	for _, sh := range holds {
		nearest := nearestStronghold(c, holds, sh)
		if nearest == nil {
			continue
		}
		key := [2]campaign.StrongholdID{sh.ID, nearest.ID}
		if sh.ID > nearest.ID {
			key = [2]campaign.StrongholdID{nearest.ID, sh.ID}
		}
		if linked[key] {
			continue
		}
		linked[key] = true
		traceRoad(c, c.Map.Hexes[sh.HexID], c.Map.Hexes[nearest.HexID])
	}
}

func nearestStronghold(c *campaign.Campaign, holds []*campaign.Stronghold, from *campaign.Stronghold) *campaign.Stronghold {
	fromHex := c.Map.Hexes[from.HexID]
	var best *campaign.Stronghold
	bestDist := math.MaxInt32
	for _, other := range holds {
		if other.ID == from.ID {
			continue
		}
		d := hexmap.Distance(fromHex.Coord(), c.Map.Hexes[other.HexID].Coord())
		if d < bestDist {
			bestDist = d
			best = other
		}
	}
	return best
}

func traceRoad(c *campaign.Campaign, from, to *campaign.Hex) {
	current := from
	for steps := 0; steps < 100 && current.ID != to.ID; steps++ {
		var next *campaign.Hex
		bestDist := hexmap.Distance(current.Coord(), to.Coord())
		for _, n := range current.Coord().Neighbors() {
			nb := c.Map.HexAt(n.Q, n.R)
			if nb == nil || nb.Terrain == campaign.Water {
				continue
			}
			d := hexmap.Distance(nb.Coord(), to.Coord())
			if d < bestDist {
				bestDist = d
				next = nb
			}
		}
		if next == nil {
			return
		}
		current.HasRoad = true
		next.HasRoad = true
		c.Map.Roads = append(c.Map.Roads, campaign.RoadEdge{
			FromHexID: current.ID,
			ToHexID:   next.ID,
			Quality:   "packed_earth",
		})
		current = next
	}
}

// placeShips moors a transport at each faction's first coastal stronghold.
func placeShips(c *campaign.Campaign, cfg Config) {
	holds := make([]*campaign.Stronghold, 0, len(c.Strongholds))
	for _, sh := range c.Strongholds {
		holds = append(holds, sh)
	}
	sort.Slice(holds, func(i, j int) bool { return holds[i].ID < holds[j].ID })

	seen := make(map[campaign.FactionID]bool)
	var nextShip campaign.ShipID
	for _, sh := range holds {
		if seen[sh.ControllingFactionID] {
			continue
		}
		hx := c.Map.Hexes[sh.HexID]
		if hx.Terrain != campaign.Coast {
			continue
		}
		seen[sh.ControllingFactionID] = true
		nextShip++
		c.Ships[nextShip] = &campaign.Ship{
			ID:                   nextShip,
			Name:                 fmt.Sprintf("Transport %d", nextShip),
			ControllingFactionID: sh.ControllingFactionID,
			CurrentHexID:         sh.HexID,
			ShipTypeID:           shipTransport,
			Status:               campaign.ShipAvailable,
		}
	}
}

// assignControl claims the hexes around each stronghold for its faction.
func assignControl(c *campaign.Campaign) {
	holds := make([]*campaign.Stronghold, 0, len(c.Strongholds))
	for _, sh := range c.Strongholds {
		holds = append(holds, sh)
	}
	sort.Slice(holds, func(i, j int) bool { return holds[i].ID < holds[j].ID })

	for _, sh := range holds {
		center := c.Map.Hexes[sh.HexID]
		coords, err := hexmap.InRange(center.Coord(), 2)
		if err != nil {
			continue
		}
		for _, coord := range coords {
			hx := c.Map.HexAt(coord.Q, coord.R)
			if hx == nil || hx.Terrain == campaign.Water {
				continue
			}
			if hx.ControllingFactionID == nil {
				fid := sh.ControllingFactionID
				hx.ControllingFactionID = &fid
			}
		}
	}
}

func sortedHexes(c *campaign.Campaign) []*campaign.Hex {
	out := make([]*campaign.Hex, 0, len(c.Map.Hexes))
	for _, hx := range c.Map.Hexes {
		out = append(out, hx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// octaveNoise layers multiple noise frequencies for natural terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
