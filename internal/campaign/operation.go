package campaign

// OperationResultData captures the resolution roll of an operation.
type OperationResultData struct {
	Roll    int  `json:"roll"`
	Target  int  `json:"target"`
	Success bool `json:"success"`
}

// Operation is a covert action: intelligence gathering, assassination, or
// sabotage.
type Operation struct {
	ID          OperationID         `json:"id"`
	CommanderID CommanderID         `json:"commander_id"`
	Type        OperationType       `json:"operation_type"`
	Complexity  OperationComplexity `json:"complexity"`
	LootCost    int                 `json:"loot_cost"`

	TargetDescriptor   map[string]any `json:"target_descriptor,omitempty"`
	Territory          *Territory     `json:"territory_type,omitempty"`
	DifficultyModifier int            `json:"difficulty_modifier"`

	SuccessChance int                  `json:"success_chance"`
	ExecutedOnDay *int                 `json:"executed_on_day,omitempty"`
	Outcome       OperationOutcome     `json:"outcome"`
	Result        *OperationResultData `json:"result,omitempty"`
}
