package scenario

import "github.com/talgya/warmarch/internal/campaign"

// Fixed catalog identifiers so scenarios and saved games agree on what a
// unit type id means.
const (
	unitSpearmen     campaign.UnitTypeID = 1
	unitHeavyFoot    campaign.UnitTypeID = 2
	unitArchers      campaign.UnitTypeID = 3
	unitLightCavalry campaign.UnitTypeID = 4
	unitKnights      campaign.UnitTypeID = 5
	unitSupplyTrain  campaign.UnitTypeID = 6

	shipTransport campaign.ShipTypeID = 1
	shipGalley    campaign.ShipTypeID = 2
	shipBarge     campaign.ShipTypeID = 3
)

func buildUnitCatalog(c *campaign.Campaign) {
	types := []*campaign.UnitType{
		{
			ID:               unitSpearmen,
			Name:             "Spear Levy",
			Category:         "infantry",
			BattleMultiplier: 1.0,
			SupplyCostPerDay: 1,
		},
		{
			ID:               unitHeavyFoot,
			Name:             "Heavy Foot",
			Category:         "infantry",
			BattleMultiplier: 1.5,
			SupplyCostPerDay: 1,
		},
		{
			ID:               unitArchers,
			Name:             "Archers",
			Category:         "infantry",
			BattleMultiplier: 1.0,
			SupplyCostPerDay: 1,
			CanTravelOffroad: true,
			SpecialAbilities: map[string]bool{
				campaign.AbilitySkirmisher: true,
			},
		},
		{
			ID:               unitLightCavalry,
			Name:             "Light Cavalry",
			Category:         "cavalry",
			BattleMultiplier: 1.5,
			SupplyCostPerDay: 10,
			CanTravelOffroad: true,
			SpecialAbilities: map[string]bool{
				campaign.AbilitySkirmisher:       true,
				campaign.AbilityOffroadFullSpeed: true,
			},
		},
		{
			ID:               unitKnights,
			Name:             "Knights",
			Category:         "cavalry",
			BattleMultiplier: 2.5,
			SupplyCostPerDay: 10,
		},
		{
			ID:               unitSupplyTrain,
			Name:             "Supply Train",
			Category:         "support",
			BattleMultiplier: 0,
			SupplyCostPerDay: 10,
		},
	}
	for _, ut := range types {
		c.UnitTypes[ut.ID] = ut
	}
}

func buildShipCatalog(c *campaign.Campaign) {
	if c.ShipTypes == nil {
		c.ShipTypes = make(map[campaign.ShipTypeID]*campaign.ShipType)
	}
	types := []*campaign.ShipType{
		{
			ID:               shipTransport,
			Name:             "Transport Cog",
			CapacitySoldiers: 500,
			CapacityCavalry:  50,
			CapacitySupplies: 10000,
			DailyCostLoot:    5,
			CanSea:           true,
		},
		{
			ID:               shipGalley,
			Name:             "War Galley",
			CapacitySoldiers: 200,
			CapacitySupplies: 2000,
			DailyCostLoot:    10,
			CanSea:           true,
			CanRiver:         true,
		},
		{
			ID:               shipBarge,
			Name:             "River Barge",
			CapacitySoldiers: 300,
			CapacityCavalry:  30,
			CapacitySupplies: 6000,
			DailyCostLoot:    3,
			CanRiver:         true,
		},
	}
	for _, st := range types {
		c.ShipTypes[st.ID] = st
	}
}
