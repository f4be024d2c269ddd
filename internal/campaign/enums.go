package campaign

// DayPart enumerates the four slices of the daily tick.
type DayPart uint8

const (
	Morning DayPart = iota
	Midday
	Evening
	Night
)

// PartsPerDay is the number of day parts a full day tick runs through.
const PartsPerDay = 4

var dayPartNames = [...]string{"morning", "midday", "evening", "night"}

// String returns the lowercase name used in seeds and logs.
func (p DayPart) String() string {
	if int(p) < len(dayPartNames) {
		return dayPartNames[p]
	}
	return "unknown"
}

// Next returns the following day part, wrapping night back to morning.
func (p DayPart) Next() DayPart {
	return (p + 1) % PartsPerDay
}

// Season of the in-world calendar.
type Season uint8

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

var seasonNames = [...]string{"spring", "summer", "fall", "winter"}

func (s Season) String() string {
	if int(s) < len(seasonNames) {
		return seasonNames[s]
	}
	return "unknown"
}

// ArmyStatus tracks what an army is doing this day part.
type ArmyStatus uint8

const (
	Idle ArmyStatus = iota
	Marching
	ForcedMarch
	NightMarch
	Resting
	Foraging
	Torching
	Besieging
	InBattle
	Harrying
	Routed
	Garrisoned
)

var armyStatusNames = [...]string{
	"idle", "marching", "forced_march", "night_march", "resting", "foraging",
	"torching", "besieging", "in_battle", "harrying", "routed", "garrisoned",
}

func (s ArmyStatus) String() string {
	if int(s) < len(armyStatusNames) {
		return armyStatusNames[s]
	}
	return "unknown"
}

// HexTerrain enumerates map terrain classes.
type HexTerrain uint8

const (
	Flatland HexTerrain = iota
	Hills
	Forest
	Mountain
	Water
	Coast
)

var terrainNames = [...]string{"flatland", "hills", "forest", "mountain", "water", "coast"}

func (t HexTerrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "unknown"
}

// StrongholdType classifies fortifications.
type StrongholdType uint8

const (
	Town StrongholdType = iota
	City
	Fortress
)

var strongholdTypeNames = [...]string{"town", "city", "fortress"}

func (t StrongholdType) String() string {
	if int(t) < len(strongholdTypeNames) {
		return strongholdTypeNames[t]
	}
	return "unknown"
}

// Priority orders stronghold types for recruitment tie-breaks: a fortress
// outranks a city, a city outranks a town.
func (t StrongholdType) Priority() int {
	switch t {
	case Fortress:
		return 3
	case City:
		return 2
	default:
		return 1
	}
}

// RelationType describes how two factions stand toward each other.
type RelationType uint8

const (
	Allied RelationType = iota
	Neutral
	Hostile
)

var relationNames = [...]string{"allied", "neutral", "hostile"}

func (r RelationType) String() string {
	if int(r) < len(relationNames) {
		return relationNames[r]
	}
	return "unknown"
}

// Territory classifies the ground a courier or agent operates on.
type Territory uint8

const (
	TerritoryFriendly Territory = iota
	TerritoryNeutral
	TerritoryHostile
)

var territoryNames = [...]string{"friendly", "neutral", "hostile"}

func (t Territory) String() string {
	if int(t) < len(territoryNames) {
		return territoryNames[t]
	}
	return "unknown"
}

// ParseTerritory maps the wire form back to a Territory value.
func ParseTerritory(s string) (Territory, bool) {
	for i, name := range territoryNames {
		if name == s {
			return Territory(i), true
		}
	}
	return 0, false
}

// MovementType selects the marching mode an order requests.
type MovementType uint8

const (
	MoveStandard MovementType = iota
	MoveForced
	MoveNight
)

var movementTypeNames = [...]string{"standard", "forced", "night"}

func (m MovementType) String() string {
	if int(m) < len(movementTypeNames) {
		return movementTypeNames[m]
	}
	return "unknown"
}

// ParseMovementType maps the wire form back to a MovementType value.
func ParseMovementType(s string) (MovementType, bool) {
	for i, name := range movementTypeNames {
		if name == s {
			return MovementType(i), true
		}
	}
	return 0, false
}

// OrderStatus tracks the order lifecycle. Completed, cancelled, and failed
// are terminal.
type OrderStatus uint8

const (
	OrderPending OrderStatus = iota
	OrderExecuting
	OrderCompleted
	OrderCancelled
	OrderFailed
)

var orderStatusNames = [...]string{"pending", "executing", "completed", "cancelled", "failed"}

func (s OrderStatus) String() string {
	if int(s) < len(orderStatusNames) {
		return orderStatusNames[s]
	}
	return "unknown"
}

// Terminal reports whether the status admits no further execution.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled || s == OrderFailed
}

// OrderKind is the closed set of order types the dispatcher executes.
type OrderKind uint8

const (
	OrderMove OrderKind = iota
	OrderRest
	OrderForage
	OrderTorch
	OrderSupplyTransfer
	OrderBesiege
	OrderAssault
	OrderEmbark
	OrderDisembark
	OrderNavalMove
	OrderSendMessage
	OrderRaiseArmy
	OrderLaunchOperation
	OrderHarry
)

var orderKindNames = [...]string{
	"move", "rest", "forage", "torch", "supply_transfer", "besiege", "assault",
	"embark", "disembark", "naval_move", "send_message", "raise_army",
	"launch_operation", "harry",
}

func (k OrderKind) String() string {
	if int(k) < len(orderKindNames) {
		return orderKindNames[k]
	}
	return "unknown"
}

// ParseOrderKind maps the wire form back to an OrderKind value.
func ParseOrderKind(s string) (OrderKind, bool) {
	for i, name := range orderKindNames {
		if name == s {
			return OrderKind(i), true
		}
	}
	return 0, false
}

// SiegeStatus tracks siege outcomes.
type SiegeStatus uint8

const (
	SiegeOngoing SiegeStatus = iota
	SiegeGatesOpened
	SiegeSuccessfulAssault
	SiegeLifted
)

var siegeStatusNames = [...]string{"ongoing", "gates_opened", "successful_assault", "lifted"}

func (s SiegeStatus) String() string {
	if int(s) < len(siegeStatusNames) {
		return siegeStatusNames[s]
	}
	return "unknown"
}

// ShipStatus tracks fleet availability.
type ShipStatus uint8

const (
	ShipAvailable ShipStatus = iota
	ShipTransporting
	ShipFled
)

var shipStatusNames = [...]string{"available", "transporting", "fled"}

func (s ShipStatus) String() string {
	if int(s) < len(shipStatusNames) {
		return shipStatusNames[s]
	}
	return "unknown"
}

// MessageStatus tracks courier progress.
type MessageStatus uint8

const (
	MessageInTransit MessageStatus = iota
	MessageDelivered
	MessageFailed
)

var messageStatusNames = [...]string{"in_transit", "delivered", "failed"}

func (s MessageStatus) String() string {
	if int(s) < len(messageStatusNames) {
		return messageStatusNames[s]
	}
	return "unknown"
}

// OperationType categorises covert operations.
type OperationType uint8

const (
	OpIntelligence OperationType = iota
	OpAssassination
	OpSabotage
)

var operationTypeNames = [...]string{"intelligence", "assassination", "sabotage"}

func (t OperationType) String() string {
	if int(t) < len(operationTypeNames) {
		return operationTypeNames[t]
	}
	return "unknown"
}

// ParseOperationType maps the wire form back to an OperationType value.
func ParseOperationType(s string) (OperationType, bool) {
	for i, name := range operationTypeNames {
		if name == s {
			return OperationType(i), true
		}
	}
	return 0, false
}

// OperationOutcome records how an operation resolved.
type OperationOutcome uint8

const (
	OutcomePending OperationOutcome = iota
	OutcomeSuccess
	OutcomeFailure
	OutcomeInterrupted
)

var operationOutcomeNames = [...]string{"pending", "success", "failure", "interrupted"}

func (o OperationOutcome) String() string {
	if int(o) < len(operationOutcomeNames) {
		return operationOutcomeNames[o]
	}
	return "unknown"
}

// OperationComplexity scales an operation's difficulty.
type OperationComplexity uint8

const (
	ComplexitySimple OperationComplexity = iota
	ComplexityStandard
	ComplexityComplex
)

var complexityNames = [...]string{"simple", "standard", "complex"}

func (c OperationComplexity) String() string {
	if int(c) < len(complexityNames) {
		return complexityNames[c]
	}
	return "unknown"
}

// ParseOperationComplexity maps the wire form back to a complexity value.
func ParseOperationComplexity(s string) (OperationComplexity, bool) {
	for i, name := range complexityNames {
		if name == s {
			return OperationComplexity(i), true
		}
	}
	return 0, false
}

// ContractStatus tracks a mercenary hire.
type ContractStatus uint8

const (
	ContractActive ContractStatus = iota
	ContractUnpaid
	ContractTerminated
)

var contractStatusNames = [...]string{"active", "unpaid", "terminated"}

func (s ContractStatus) String() string {
	if int(s) < len(contractStatusNames) {
		return contractStatusNames[s]
	}
	return "unknown"
}

// CommanderStatus tracks whether a commander is free to act.
type CommanderStatus uint8

const (
	CommanderActive CommanderStatus = iota
	CommanderCaptured
	CommanderEscaped
)

var commanderStatusNames = [...]string{"active", "captured", "escaped"}

func (s CommanderStatus) String() string {
	if int(s) < len(commanderStatusNames) {
		return commanderStatusNames[s]
	}
	return "unknown"
}
