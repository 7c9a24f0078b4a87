// Package service hosts a seating grid for concurrent callers.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iliyamo/theater-seating/internal/queue"
	"github.com/iliyamo/theater-seating/internal/seating"
)

// publishTimeout bounds the AMQP connect and, separately, the publish
// itself, so a reservation waits on the broker for at most twice this.
const publishTimeout = 3 * time.Second

// BoxOffice owns one seating.Grid and serializes access to it. Every
// successful mutation is published as a SeatsReservedEvent; publish errors
// are logged and never fail the reservation.
type BoxOffice struct {
	mu   sync.Mutex
	grid *seating.Grid
	pub  EventPublisher
	log  *slog.Logger
	now  func() time.Time
}

// NewBoxOffice builds the grid. It fails with seating.ErrInvalidDimension
// for non-positive dimensions.
func NewBoxOffice(rows, cols int, pub EventPublisher, log *slog.Logger) (*BoxOffice, error) {
	g, err := seating.New(rows, cols)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &BoxOffice{grid: g, pub: pub, log: log, now: time.Now}, nil
}

// Layout is a point-in-time view of the grid.
type Layout struct {
	Rows    int              `json:"rows"`
	Columns int              `json:"columns"`
	Free    int              `json:"free"`
	Cells   [][]seating.Cell `json:"cells"`
}

// Snapshot copies the current state.
func (b *BoxOffice) Snapshot() Layout {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layoutLocked()
}

// Reserve applies a token line such as "R1C4 R1C6". Tokens before a bad
// one stay reserved; the returned layout reflects them either way.
func (b *BoxOffice) Reserve(ctx context.Context, operator, tokens string) (Layout, error) {
	b.mu.Lock()
	before := b.grid.FreeCount()
	applied, err := b.grid.ReserveSeats(tokens)
	layout := b.layoutLocked()
	b.mu.Unlock()

	if err != nil {
		b.log.WarnContext(ctx, "manual reservation rejected",
			slog.String("tokens", tokens),
			slog.String("error", err.Error()),
			slog.Int("taken_before_error", before-layout.Free))
	}
	if layout.Free == before {
		return layout, err
	}

	b.log.InfoContext(ctx, "seats reserved",
		slog.String("kind", queue.KindManual),
		slog.Int("taken", before-layout.Free),
		slog.Int("free", layout.Free))
	b.publish(ctx, queue.SeatsReservedEvent{
		Kind:      queue.KindManual,
		Seats:     labels(applied),
		FreeAfter: layout.Free,
		Operator:  operator,
	})
	return layout, err
}

// ReserveBest takes the best block of n seats or returns
// seating.ErrUnavailable without changing anything.
func (b *BoxOffice) ReserveBest(ctx context.Context, operator string, n int) (seating.Block, error) {
	b.mu.Lock()
	blk, ok := b.grid.ReserveBestBlock(n)
	free := b.grid.FreeCount()
	b.mu.Unlock()

	if !ok {
		b.log.InfoContext(ctx, "best available not found", slog.Int("requested", n), slog.Int("free", free))
		return seating.Block{}, fmt.Errorf("%d consecutive seats: %w", n, seating.ErrUnavailable)
	}

	b.log.InfoContext(ctx, "seats reserved",
		slog.String("kind", queue.KindBestAvailable),
		slog.Int("row", blk.Row),
		slog.Int("start", blk.Start),
		slog.Int("end", blk.End),
		slog.Int("free", free))
	b.publish(ctx, queue.SeatsReservedEvent{
		Kind:      queue.KindBestAvailable,
		Seats:     labels(blk.Seats()),
		Requested: n,
		FreeAfter: free,
		Operator:  operator,
	})
	return blk, nil
}

func (b *BoxOffice) layoutLocked() Layout {
	return Layout{
		Rows:    b.grid.Rows(),
		Columns: b.grid.Columns(),
		Free:    b.grid.FreeCount(),
		Cells:   b.grid.Snapshot(),
	}
}

func (b *BoxOffice) publish(ctx context.Context, ev queue.SeatsReservedEvent) {
	ev.ReservedAt = b.now().UTC().Format(time.RFC3339)
	// The request may finish before the broker answers.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := b.pub.PublishSeatsReserved(pctx, ev); err != nil {
		b.log.WarnContext(ctx, "publish seats.reserved failed", slog.String("error", err.Error()))
	}
}

func labels(seats []seating.Seat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.Label())
	}
	return out
}
