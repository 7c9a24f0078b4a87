// Package queue defines the messages exchanged over RabbitMQ and the
// consumer that records them.
package queue

// SeatsReservedQueue is the durable queue every reservation event goes to.
const SeatsReservedQueue = "seats.reserved"

// Reservation kinds.
const (
	KindManual        = "manual"
	KindBestAvailable = "best_available"
)

// SeatsReservedEvent is published after a reservation changes the grid.
// Seats holds R<row>C<col> labels of the seats the request named or
// selected, including any that were already taken in a manual request.
type SeatsReservedEvent struct {
	Kind       string   `json:"kind"`
	Seats      []string `json:"seats"`
	Requested  int      `json:"requested,omitempty"`
	FreeAfter  int      `json:"free_after"`
	Operator   string   `json:"operator,omitempty"`
	ReservedAt string   `json:"reserved_at"`
}
