package campaign

// Strongly typed identifiers for every campaign entity. Keeping them distinct
// stops an army id from sliding into a commander lookup unnoticed.
type (
	CampaignID          int64
	HexID               int64
	FactionID           int64
	StrongholdID        int64
	CommanderID         int64
	ArmyID              int64
	DetachmentID        int64
	UnitTypeID          int64
	MessageID           int64
	OrderID             int64
	EventID             int64
	SiegeID             int64
	BattleID            int64
	ShipTypeID          int64
	ShipID              int64
	MercenaryCompanyID  int64
	MercenaryContractID int64
	OperationID         int64
	ProjectID           int64
)

// nextKey returns max(existing)+1 for an id-keyed map, starting at 1 when the
// map is empty. New entities minted mid-campaign get deterministic ids this
// way, independent of map iteration order.
func nextKey[K ~int64, V any](m map[K]V) K {
	var max K
	for k := range m {
		if k > max {
			max = k
		}
	}
	return max + 1
}
