package campaign

// Message is a courier dispatch between commanders. Travel time is measured
// in days and burned down a quarter day per tick part.
type Message struct {
	ID          MessageID     `json:"id"`
	SenderID    CommanderID   `json:"sender_id"`
	RecipientID CommanderID   `json:"recipient_id"`
	Content     string        `json:"content"`
	Territory   Territory     `json:"territory_type"`
	Status      MessageStatus `json:"status"`

	SentDay        int     `json:"sent_day"`
	TravelTimeDays float64 `json:"travel_time_days"`
	DaysRemaining  float64 `json:"days_remaining"`
	DeliveredDay   *int    `json:"delivered_day,omitempty"`
	FailureReason  string  `json:"failure_reason,omitempty"`
}
