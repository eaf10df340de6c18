package entity

type EventType string

const (
	EventMint                 EventType = "mint"
	EventTransfer             EventType = "transfer"
	EventBurn                 EventType = "burn"
	EventSubscriptionCreated  EventType = "subscription-created"
	EventSubscriptionRenewed  EventType = "subscription-renewed"
	EventSubscriptionCanceled EventType = "subscription-canceled"
)

type Event struct {
	Contract    string            `json:"contract"`
	Type        EventType         `json:"type"`
	BlockHeight uint64            `json:"block_height"`
	Attributes  map[string]string `json:"attributes"`
}

// RoutingKey is "<contract>.<event>".
func (e Event) RoutingKey() string {
	return e.Contract + "." + string(e.Type)
}
