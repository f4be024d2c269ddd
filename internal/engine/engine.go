// Package engine drives the campaign clock: the day loop with its four
// parts, start-of-day refresh, order scheduling, and end-of-day attrition.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/orders"
	"github.com/talgya/warmarch/internal/rules"
)

// DaySummary aggregates what one day of campaign time produced.
type DaySummary struct {
	Day               int `json:"day"`
	OrdersExecuted    int `json:"orders_executed"`
	OrdersFailed      int `json:"orders_failed"`
	MessagesDelivered int `json:"messages_delivered"`
	SiegesAdvanced    int `json:"sieges_advanced"`
	ArmiesStarving    int `json:"armies_starving"`
	EventsEmitted     int `json:"events_emitted"`
}

// Engine advances a campaign one day at a time.
type Engine struct {
	Campaign *campaign.Campaign
	Rules    rules.Rules
	Log      *slog.Logger

	// Callbacks for the cmd wiring. Either may be nil.
	OnDay   func(day int, summary DaySummary)
	OnEvent func(ev campaign.Event)
}

// New returns an engine over the campaign. A nil logger falls back to the
// process default.
func New(c *campaign.Campaign, r rules.Rules, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{Campaign: c, Rules: r, Log: log}
}

// RunDays advances the campaign n days, stopping early when the context is
// cancelled.
func (e *Engine) RunDays(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := e.AdvanceDay(); err != nil {
			return fmt.Errorf("advance day %d: %w", e.Campaign.CurrentDay, err)
		}
	}
	return nil
}

// AdvanceDay runs one full campaign day: morning refresh, the four parts
// with their courier, fleet, and order processing, then the end-of-day
// consumption, upkeep, and siege passes.
func (e *Engine) AdvanceDay() (DaySummary, error) {
	c := e.Campaign
	day := c.CurrentDay
	summary := DaySummary{Day: day}
	eventsBefore := len(c.Events)

	if err := e.startOfDay(day); err != nil {
		return summary, err
	}

	for part := campaign.Morning; ; part = part.Next() {
		c.Part = part
		if err := e.runPart(day, part, &summary); err != nil {
			return summary, err
		}
		if part == campaign.Night {
			break
		}
	}

	if err := e.endOfDay(day, &summary); err != nil {
		return summary, err
	}

	c.CurrentDay = day + 1
	c.Part = campaign.Morning

	summary.EventsEmitted = len(c.Events) - eventsBefore
	if e.OnEvent != nil {
		for _, ev := range c.Events[eventsBefore:] {
			e.OnEvent(ev)
		}
	}
	if e.OnDay != nil {
		e.OnDay(day, summary)
	}

	e.Log.Debug("day complete",
		"campaign", c.ID,
		"day", day,
		"orders", summary.OrdersExecuted,
		"messages", summary.MessagesDelivered,
		"starving", summary.ArmiesStarving,
	)
	return summary, nil
}

// dueOrders returns the orders runnable at (day, part) in execution order:
// execute day, then priority, then issue sequence.
func (e *Engine) dueOrders(day int, part campaign.DayPart) []*campaign.Order {
	c := e.Campaign
	var due []*campaign.Order
	for _, order := range c.Orders {
		if order.Status != campaign.OrderPending && order.Status != campaign.OrderExecuting {
			continue
		}
		executeDay := day
		if order.ExecuteDay != nil {
			executeDay = *order.ExecuteDay
		}
		if executeDay > day {
			continue
		}
		if order.ExecutePart == nil {
			if part != campaign.Morning {
				continue
			}
		} else if *order.ExecutePart != part {
			continue
		}
		due = append(due, order)
	}

	sort.Slice(due, func(i, j int) bool {
		di, dj := day, day
		if due[i].ExecuteDay != nil {
			di = *due[i].ExecuteDay
		}
		if due[j].ExecuteDay != nil {
			dj = *due[j].ExecuteDay
		}
		if di != dj {
			return di < dj
		}
		if due[i].Priority != due[j].Priority {
			return due[i].Priority < due[j].Priority
		}
		return due[i].IssuedSeq < due[j].IssuedSeq
	})
	return due
}

// executeOrders runs the due orders for the part through the dispatcher.
func (e *Engine) executeOrders(day int, part campaign.DayPart, summary *DaySummary) {
	ctx := orders.Context{Campaign: e.Campaign, Part: part, Rules: e.Rules}
	for _, order := range e.dueOrders(day, part) {
		result := orders.ExecuteOrder(ctx, order)
		switch result.Status {
		case campaign.OrderFailed:
			summary.OrdersFailed++
			e.Log.Debug("order failed",
				"order", order.ID, "kind", order.Kind.String(), "detail", result.Detail)
		case campaign.OrderCompleted:
			summary.OrdersExecuted++
		}
	}
}

// sortedArmies returns the campaign's armies in id order for deterministic
// iteration.
func (e *Engine) sortedArmies() []*campaign.Army {
	c := e.Campaign
	ids := make([]campaign.ArmyID, 0, len(c.Armies))
	for id := range c.Armies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	armies := make([]*campaign.Army, 0, len(ids))
	for _, id := range ids {
		armies = append(armies, c.Armies[id])
	}
	return armies
}

// sortedSieges returns active sieges in id order.
func (e *Engine) sortedSieges() []*campaign.Siege {
	c := e.Campaign
	ids := make([]campaign.SiegeID, 0, len(c.Sieges))
	for id := range c.Sieges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	sieges := make([]*campaign.Siege, 0, len(ids))
	for _, id := range ids {
		sieges = append(sieges, c.Sieges[id])
	}
	return sieges
}
