// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketPurchasedEvent is published after a ticket purchase commits. It
// carries enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary store.
type TicketPurchasedEvent struct {
	TicketID    uint64 `json:"ticket_id"`
	AccountID   uint64 `json:"account_id"`
	ScheduleID  uint64 `json:"schedule_id"`
	MovieTitle  string `json:"movie_title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Hall        uint32 `json:"hall"`
	Quantity    uint32 `json:"quantity"`
	PriceCents  uint32 `json:"price_cents"`
	PurchasedAt string `json:"purchased_at"`
}
