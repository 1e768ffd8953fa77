package ws

import "qrmenu/internal/models"

// orderEvent is the wire shape of a change notification: the event name
// plus the full updated order record, so clients never need a follow-up
// fetch.
type orderEvent struct {
	Event string        `json:"event"`
	Order *models.Order `json:"order"`
}

// OrderBroadcaster adapts the hub to the order lifecycle's event sink.
type OrderBroadcaster struct {
	hub *Hub
}

func NewOrderBroadcaster(hub *Hub) *OrderBroadcaster {
	return &OrderBroadcaster{hub: hub}
}

func (b *OrderBroadcaster) Publish(event string, order *models.Order) {
	b.hub.Broadcast(orderEvent{Event: event, Order: order})
}
