package movement

import (
	"errors"
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
)

// routeCampaign lays out a 4-hex road running east from hex 1 with an
// off-road shortcut row just south of it.
//
//	1 --road-- 2 --road-- 3 --road-- 4
//	 \                             /
//	  5 ------ 6 (off-road row) -/
func routeCampaign() *campaign.Campaign {
	c := campaign.New(1, "route test")
	c.UnitTypes[1] = &campaign.UnitType{ID: 1, Category: "infantry"}
	c.UnitTypes[2] = &campaign.UnitType{ID: 2, Category: "cavalry"}

	add := func(id campaign.HexID, q, r int, terrain campaign.HexTerrain) {
		c.Map.Hexes[id] = &campaign.Hex{ID: id, Q: q, R: r, Terrain: terrain}
	}
	add(1, 0, 0, campaign.Flatland)
	add(2, 1, 0, campaign.Flatland)
	add(3, 2, 0, campaign.Flatland)
	add(4, 3, 0, campaign.Flatland)
	add(5, 0, 1, campaign.Flatland)
	add(6, 1, 1, campaign.Flatland)

	c.Map.Roads = []campaign.RoadEdge{
		{FromHexID: 1, ToHexID: 2, Status: "open"},
		{FromHexID: 2, ToHexID: 3, Status: "open"},
		{FromHexID: 3, ToHexID: 4, Status: "open"},
	}
	return c
}

func marchingArmy(c *campaign.Campaign, wagons int) *campaign.Army {
	army := campaign.NewArmy(1, 1, 1)
	army.Detachments = []campaign.Detachment{{ID: 1, UnitTypeID: 1, Soldiers: 1000, Wagons: wagons}}
	c.Armies[army.ID] = army
	return army
}

func TestPlanRouteFollowsRoads(t *testing.T) {
	c := routeCampaign()
	army := marchingArmy(c, 0)

	legs, err := PlanRoute(c, army, 1, 4)
	if err != nil {
		t.Fatalf("PlanRoute: %v", err)
	}
	if len(legs) != 3 {
		t.Fatalf("legs = %d, want 3: %+v", len(legs), legs)
	}
	wantTo := []campaign.HexID{2, 3, 4}
	for i, leg := range legs {
		if leg.ToHexID != wantTo[i] {
			t.Errorf("leg %d to hex %d, want %d", i, leg.ToHexID, wantTo[i])
		}
		if !leg.OnRoad {
			t.Errorf("leg %d off-road on an all-road route", i)
		}
		if leg.Hours != 12 {
			t.Errorf("leg %d hours = %v, want 12", i, leg.Hours)
		}
		if leg.Miles != 6 {
			t.Errorf("leg %d miles = %v, want 6", i, leg.Miles)
		}
	}
}

func TestPlanRoutePrefersRoadOverShortcut(t *testing.T) {
	// Two ways into hex 6: wholly off-road via 5 at 48h, or the road to
	// hex 2 and one off-road step at 36h. The cheaper mixed route wins.
	c := routeCampaign()
	army := marchingArmy(c, 0)

	legs, err := PlanRoute(c, army, 1, 6)
	if err != nil {
		t.Fatalf("PlanRoute: %v", err)
	}
	if len(legs) != 2 || legs[0].ToHexID != 2 || legs[1].ToHexID != 6 {
		t.Fatalf("route = %+v, want road to hex 2 then off-road to 6", legs)
	}
	if !legs[0].OnRoad || legs[1].OnRoad {
		t.Errorf("road flags = %v/%v, want road then off-road", legs[0].OnRoad, legs[1].OnRoad)
	}
}

func TestPlanRouteDamagedRoadDoublesTime(t *testing.T) {
	c := routeCampaign()
	c.Map.Roads[0].Status = "damaged"
	army := marchingArmy(c, 0)

	legs, err := PlanRoute(c, army, 1, 2)
	if err != nil {
		t.Fatalf("PlanRoute: %v", err)
	}
	if len(legs) != 1 || legs[0].Hours != 24 || !legs[0].OnRoad {
		t.Errorf("legs = %+v, want one 24h road leg", legs)
	}
}

func TestPlanRouteWagonsStayOnRoads(t *testing.T) {
	c := routeCampaign()
	wagonTrain := marchingArmy(c, 10)

	// Hex 5 is only reachable off-road.
	if _, err := PlanRoute(c, wagonTrain, 1, 5); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute for wagons off-road", err)
	}

	foot := marchingArmy(c, 0)
	legs, err := PlanRoute(c, foot, 1, 5)
	if err != nil {
		t.Fatalf("PlanRoute on foot: %v", err)
	}
	if len(legs) != 1 || legs[0].OnRoad || legs[0].Hours != 24 {
		t.Errorf("legs = %+v, want one 24h off-road leg", legs)
	}
}

func TestPlanRouteWaterIsImpassable(t *testing.T) {
	c := routeCampaign()
	c.Map.Hexes[2].Terrain = campaign.Water
	c.Map.Hexes[6].Terrain = campaign.Water
	army := marchingArmy(c, 0)

	// With hexes 2 and 6 flooded nothing links the west end to hex 3.
	if _, err := PlanRoute(c, army, 1, 3); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute across water", err)
	}
}

func TestPlanRouteFordDelaysFoot(t *testing.T) {
	c := routeCampaign()
	c.Map.RiverCrossings = []campaign.RiverCrossing{
		{FromHexID: 1, ToHexID: 2, CrossingType: "ford", Status: "open"},
	}
	army := marchingArmy(c, 0)
	army.NoncombatantCount = 250

	legs, err := PlanRoute(c, army, 1, 2)
	if err != nil {
		t.Fatalf("PlanRoute: %v", err)
	}
	// 1250 foot and followers make a quarter-mile column: 3h wading on top
	// of the 12h road leg.
	if len(legs) != 1 || !legs[0].HasRiverFord {
		t.Fatalf("legs = %+v, want one ford leg", legs)
	}
	if legs[0].Hours != 15 {
		t.Errorf("ford leg hours = %v, want 15", legs[0].Hours)
	}

	// Wagons cannot ford; with no other way across the route fails.
	wagonTrain := marchingArmy(c, 10)
	if _, err := PlanRoute(c, wagonTrain, 1, 2); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute for wagons at a ford", err)
	}
}

func TestPlanRouteBridgeIsFree(t *testing.T) {
	c := routeCampaign()
	c.Map.RiverCrossings = []campaign.RiverCrossing{
		{FromHexID: 1, ToHexID: 2, CrossingType: "bridge", Status: "open"},
	}
	army := marchingArmy(c, 0)

	legs, err := PlanRoute(c, army, 1, 2)
	if err != nil {
		t.Fatalf("PlanRoute: %v", err)
	}
	if len(legs) != 1 || legs[0].Hours != 12 || legs[0].HasRiverFord {
		t.Errorf("legs = %+v, want one plain 12h bridge leg", legs)
	}
}
