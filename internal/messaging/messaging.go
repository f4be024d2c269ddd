// Package messaging implements courier dispatch and delivery. Couriers ride
// at a territory-dependent rate and risk interception on arrival.
package messaging

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/hexmap"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

// HexMiles is the width of one map hex in miles.
const HexMiles = 6

// DispatchResult is the outcome of attempting to send a message.
type DispatchResult struct {
	Success   bool
	Detail    string
	MessageID campaign.MessageID
}

// Dispatch queues a message for delivery, computing its travel time from
// the hex distance between sender and recipient and the courier rate for
// the territory crossed. The message is stored on the campaign.
func Dispatch(
	c *campaign.Campaign,
	msg *campaign.Message,
	fromHex, toHex *campaign.HexID,
	r rules.Rules,
) DispatchResult {
	if fromHex == nil {
		if sender := c.Commanders[msg.SenderID]; sender != nil {
			fromHex = sender.CurrentHexID
		}
	}
	if toHex == nil {
		if recipient := c.Commanders[msg.RecipientID]; recipient != nil {
			toHex = recipient.CurrentHexID
		}
	}
	if fromHex == nil || toHex == nil {
		return DispatchResult{Detail: "sender or recipient location unknown"}
	}

	origin := c.Map.Hexes[*fromHex]
	destination := c.Map.Hexes[*toHex]
	if origin == nil || destination == nil {
		return DispatchResult{Detail: "origin or destination hex missing"}
	}

	var speed int
	switch msg.Territory {
	case campaign.TerritoryFriendly:
		speed = r.Messaging.FriendlyMilesPerDay
	case campaign.TerritoryNeutral:
		speed = r.Messaging.NeutralMilesPerDay
	default:
		speed = r.Messaging.HostileMilesPerDay
	}

	miles := rules.Max(1, hexmap.Distance(origin.Coord(), destination.Coord())) * HexMiles
	travelDays := rules.Max(1.0, float64(miles)/float64(speed))

	msg.TravelTimeDays = travelDays
	msg.DaysRemaining = travelDays
	msg.Status = campaign.MessageInTransit
	c.Messages[msg.ID] = msg

	return DispatchResult{
		Success:   true,
		Detail:    fmt.Sprintf("message dispatched: %.2f days", travelDays),
		MessageID: msg.ID,
	}
}

// AdvanceMessages burns down in-transit couriers by the day fraction and
// resolves deliveries. Arrival rolls 1d20 against 19 in friendly or neutral
// territory and 1d6 against 5 in hostile; a failed roll means interception.
func AdvanceMessages(c *campaign.Campaign, dayFraction float64, r rules.Rules) error {
	for _, msg := range c.Messages {
		if msg.Status != campaign.MessageInTransit {
			continue
		}

		msg.DaysRemaining = rules.Max(0, msg.DaysRemaining-dayFraction)
		if msg.DaysRemaining > 0 {
			continue
		}

		numerator := r.Messaging.FriendlySuccessNumerator
		denominator := r.Messaging.FriendlySuccessDenominator
		if msg.Territory == campaign.TerritoryHostile {
			numerator = r.Messaging.HostileSuccessNumerator
			denominator = r.Messaging.HostileSuccessDenominator
		}

		roll, err := rng.RollDice(fmt.Sprintf("message:%d", msg.ID), fmt.Sprintf("1d%d", denominator))
		if err != nil {
			return err
		}
		if roll.Total <= numerator {
			msg.Status = campaign.MessageDelivered
			day := c.CurrentDay
			msg.DeliveredDay = &day
			msg.FailureReason = ""
		} else {
			msg.Status = campaign.MessageFailed
			msg.FailureReason = "intercepted"
		}
	}
	return nil
}

// PendingForCommander returns the in-flight messages destined for the
// commander.
func PendingForCommander(c *campaign.Campaign, id campaign.CommanderID) []*campaign.Message {
	var pending []*campaign.Message
	for _, msg := range c.Messages {
		if msg.RecipientID == id && msg.Status == campaign.MessageInTransit {
			pending = append(pending, msg)
		}
	}
	return pending
}
