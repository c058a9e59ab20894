package engine

import "fmt"

// EventType enumerates every input the presentation layer can feed the
// engine. Events arriving in the wrong phase or from the wrong seat are
// absorbed into a status message, never an error.
type EventType string

const (
	EventRoll       EventType = "roll"
	EventChangeDice EventType = "change_dice"

	EventBuy          EventType = "buy"
	EventSkip         EventType = "skip"
	EventStartAuction EventType = "start_auction"
	EventRaiseBid     EventType = "raise_bid"
	EventLeaveAuction EventType = "leave_auction"

	EventOpenTrade      EventType = "open_trade"
	EventSelectPartner  EventType = "select_partner"
	EventToggleOffer    EventType = "toggle_offer"
	EventToggleRequest  EventType = "toggle_request"
	EventSetOfferCash   EventType = "set_offer_cash"
	EventSetRequestCash EventType = "set_request_cash"
	EventProposeTrade   EventType = "propose_trade"
	EventAcceptTrade    EventType = "accept_trade"
	EventDeclineTrade   EventType = "decline_trade"
	EventCancelTrade    EventType = "cancel_trade"

	EventBuildHouse   EventType = "build_house"
	EventBuildHotel   EventType = "build_hotel"
	EventSellBuilding EventType = "sell_building"
	EventSellProperty EventType = "sell_property"
	EventMortgage     EventType = "mortgage"

	EventChooseDestination EventType = "choose_destination"
	EventEvaporate         EventType = "evaporate"

	EventDeclareBankruptcy EventType = "declare_bankruptcy"
)

// Event is one discrete input. Seat identifies the acting player; the
// remaining fields are meaningful per type (Pos for property targets,
// Amount for bids and cash, N for destination picks).
type Event struct {
	Type   EventType `json:"type"`
	Seat   int       `json:"seat"`
	Pos    int       `json:"pos,omitempty"`
	Amount int       `json:"amount,omitempty"`
	N      int       `json:"n,omitempty"`
}

// ErrUnknownEvent reports an event type the engine does not recognize.
type ErrUnknownEvent struct {
	Type EventType
}

func (e *ErrUnknownEvent) Error() string {
	return fmt.Sprintf("unknown event type %q", e.Type)
}
