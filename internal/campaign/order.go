package campaign

// OrderResult is written back onto an order once execution produces output.
type OrderResult struct {
	Detail string  `json:"detail,omitempty"`
	Events []Event `json:"events,omitempty"`
}

// ScheduledProject links a two-phase order to the background project it
// started, so a later execution pass can finish the work.
type ScheduledProject struct {
	ProjectID ProjectID `json:"project_id"`
}

// Order is an instruction issued to an army or commander. Parameters carry
// the order-type specific payload as decoded JSON; the dispatcher validates
// them against the payload shape for the order's kind before touching any
// state.
type Order struct {
	ID          OrderID        `json:"id"`
	ArmyID      *ArmyID        `json:"army_id,omitempty"`
	CommanderID CommanderID    `json:"commander_id"`
	Kind        OrderKind      `json:"order_type"`
	Parameters  map[string]any `json:"parameters,omitempty"`

	// IssuedSeq is the campaign-wide issue sequence number, the final
	// tie-break when two orders share a day and priority.
	IssuedSeq   int64    `json:"issued_seq"`
	ExecuteDay  *int     `json:"execute_day,omitempty"`
	ExecutePart *DayPart `json:"execute_part,omitempty"`
	Priority    int      `json:"priority"`

	Status    OrderStatus       `json:"status"`
	Result    *OrderResult      `json:"result,omitempty"`
	Scheduled *ScheduledProject `json:"scheduled,omitempty"`
}
