package naval

import (
	"testing"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rules"
)

func testCampaign() *campaign.Campaign {
	c := campaign.New(1, "naval test")
	// A coastal strip, ids 1..10 west to east.
	for q := 0; q < 10; q++ {
		id := campaign.HexID(q + 1)
		c.Map.Hexes[id] = &campaign.Hex{ID: id, Q: q, R: 0, Terrain: campaign.Water}
	}
	c.Armies[1] = &campaign.Army{ID: 1, Name: "Landing Force", CurrentHexID: 1}
	c.Ships[1] = &campaign.Ship{ID: 1, Name: "Cog", ControllingFactionID: 1, CurrentHexID: 1, Status: campaign.ShipAvailable}
	return c
}

func TestEmbarkAndDisembark(t *testing.T) {
	c := testCampaign()
	r := rules.Default()
	army, ship := c.Armies[1], c.Ships[1]

	result := Embark(army, ship, r)
	if !result.Success {
		t.Fatalf("embark failed: %s", result.Detail)
	}
	if army.EmbarkedShipID == nil || *army.EmbarkedShipID != ship.ID {
		t.Error("army should record its ship")
	}
	if ship.EmbarkedArmyID == nil || *ship.EmbarkedArmyID != army.ID {
		t.Error("ship should record its army")
	}
	if ship.Status != campaign.ShipTransporting {
		t.Errorf("ship status = %v, want transporting", ship.Status)
	}
	if ship.TravelDaysRemaining != 1.0 {
		t.Errorf("embarkation should cost a day, got %v", ship.TravelDaysRemaining)
	}

	// Still loading.
	if result := Disembark(army, ship, r); result.Success {
		t.Error("disembark should fail while the ship timer runs")
	} else if result.Detail != "ship is still en route" {
		t.Errorf("detail = %q", result.Detail)
	}

	ship.TravelDaysRemaining = 0
	if result := Disembark(army, ship, r); !result.Success {
		t.Fatalf("disembark failed: %s", result.Detail)
	}
	if army.EmbarkedShipID != nil || ship.EmbarkedArmyID != nil {
		t.Error("embarkation links should clear")
	}
	if ship.Status != campaign.ShipAvailable {
		t.Errorf("ship status = %v, want available", ship.Status)
	}
}

func TestEmbarkValidation(t *testing.T) {
	r := rules.Default()

	t.Run("separate hexes", func(t *testing.T) {
		c := testCampaign()
		c.Armies[1].CurrentHexID = 3
		result := Embark(c.Armies[1], c.Ships[1], r)
		if result.Success || result.Detail != "army and ship must share a hex" {
			t.Errorf("got %+v", result)
		}
	})

	t.Run("ship occupied", func(t *testing.T) {
		c := testCampaign()
		other := campaign.ArmyID(9)
		c.Ships[1].EmbarkedArmyID = &other
		result := Embark(c.Armies[1], c.Ships[1], r)
		if result.Success || result.Detail != "ship already transporting an army" {
			t.Errorf("got %+v", result)
		}
	})

	t.Run("army already aboard", func(t *testing.T) {
		c := testCampaign()
		other := campaign.ShipID(9)
		c.Armies[1].EmbarkedShipID = &other
		result := Embark(c.Armies[1], c.Ships[1], r)
		if result.Success || result.Detail != "army already embarked" {
			t.Errorf("got %+v", result)
		}
	})

	t.Run("fled ship", func(t *testing.T) {
		c := testCampaign()
		c.Ships[1].Status = campaign.ShipFled
		if result := Embark(c.Armies[1], c.Ships[1], r); result.Success {
			t.Error("fled ship should refuse embarkation")
		}
	})
}

func TestSetCourseTravelDays(t *testing.T) {
	c := testCampaign()
	r := rules.Default()
	ship := c.Ships[1]

	// Hex 1 to hex 9 is 8 hexes, 48 miles at 48 miles/day.
	result := SetCourse(c, ship, []campaign.HexID{9}, r)
	if !result.Success {
		t.Fatalf("set course failed: %s", result.Detail)
	}
	if ship.TravelDaysRemaining != 1.0 {
		t.Errorf("TravelDaysRemaining = %v, want 1.0", ship.TravelDaysRemaining)
	}
	if len(ship.CurrentRoute) != 1 || ship.CurrentRoute[0] != 9 {
		t.Errorf("route = %v", ship.CurrentRoute)
	}
}

func TestSetCourseValidation(t *testing.T) {
	c := testCampaign()
	r := rules.Default()

	if result := SetCourse(c, c.Ships[1], nil, r); result.Success || result.Detail != "route required" {
		t.Errorf("got %+v", result)
	}
	if result := SetCourse(c, c.Ships[1], []campaign.HexID{99}, r); result.Success || result.Detail != "route references unknown hex" {
		t.Errorf("got %+v", result)
	}
}

func TestAdvanceShipsMovesEmbarkedArmy(t *testing.T) {
	c := testCampaign()
	r := rules.Default()
	army, ship := c.Armies[1], c.Ships[1]

	if result := Embark(army, ship, r); !result.Success {
		t.Fatalf("embark failed: %s", result.Detail)
	}
	ship.TravelDaysRemaining = 0
	if result := SetCourse(c, ship, []campaign.HexID{5}, r); !result.Success {
		t.Fatalf("set course failed: %s", result.Detail)
	}
	army.IsBlockaded = true

	// 4 hexes, 24 miles, half a day of sailing.
	AdvanceShips(c, 0.25)
	if ship.CurrentHexID != 1 {
		t.Fatal("ship arrived early")
	}
	AdvanceShips(c, 0.25)

	if ship.CurrentHexID != 5 {
		t.Errorf("ship hex = %v, want 5", ship.CurrentHexID)
	}
	if army.CurrentHexID != 5 {
		t.Errorf("army hex = %v, want 5", army.CurrentHexID)
	}
	if army.IsBlockaded {
		t.Error("arrival should clear the blockade flag")
	}
	if len(ship.CurrentRoute) != 0 {
		t.Error("route should clear on arrival")
	}
	if ship.Status != campaign.ShipTransporting {
		t.Errorf("ship status = %v, want transporting", ship.Status)
	}
}
