// Package matchbook implements an in-process, single-symbol limit order
// book matching engine: price-time priority matching over market and
// limit orders, cancel and cancel-and-replace modify, and a
// snapshot/journal mechanism for deterministic point-in-time persistence
// and replay.
//
// One Book serves exactly one symbol and is not safe for concurrent use.
// Callers serialize access the way they would around any other
// single-writer in-process store.
package matchbook

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchbook/internal/book"
	"matchbook/internal/clock"
	"matchbook/internal/common"
	"matchbook/internal/engine"
	"matchbook/internal/journal"
)

// Re-exported value types, so callers never need to import the internal
// packages directly.
type (
	Side            = common.Side
	OrderType       = common.OrderType
	TimeInForce     = common.TimeInForce
	OrderStatus     = common.OrderStatus
	Price           = common.Price
	Quantity        = common.Quantity
	OrderID         = common.OrderID
	Order           = common.Order
	OrderView       = common.View
	Fill            = common.Fill
	ExecutionReport = common.ExecutionReport
	JournalLog      = common.JournalLog
	Snapshot        = journal.Snapshot
	DepthResult     = engine.DepthResult
	DepthLevel      = book.DepthLevel
)

const (
	Buy  = common.Buy
	Sell = common.Sell

	Limit  = common.Limit
	Market = common.Market

	GTC = common.GTC
	IOC = common.IOC
	FOK = common.FOK
)

// Error is the book's error type: a stable numeric code plus a message,
// suitable for programmatic handling by code, not just string matching.
type Error = engine.Error

// Error codes the book raises, re-exported for callers that branch on
// Error.Code.
const (
	CodeInvalidQuantity        = engine.CodeInvalidQuantity
	CodeInvalidPrice           = engine.CodeInvalidPrice
	CodeInvalidPriceOrQuantity = engine.CodeInvalidPriceOrQuantity
	CodeOrderPostOnly          = engine.CodeOrderPostOnly
	CodeOrderFOK               = engine.CodeOrderFOK
	CodeOrderNotFound          = engine.CodeOrderNotFound
	CodeOrderBookEmpty         = engine.CodeOrderBookEmpty
)

// Book is one symbol's matching engine, with logging, instance
// correlation, and journal bookkeeping wrapped around the core engine.
type Book struct {
	InstanceID uuid.UUID

	symbol string
	eng    *engine.OrderBook
	jlog   *journal.Log
	log    zerolog.Logger
	now    clock.Func

	journaling bool
}

type config struct {
	logger     zerolog.Logger
	now        clock.Func
	journaling bool
}

// Option configures a Book at construction time.
type Option func(*config)

// WithLogger overrides the default logger (github.com/rs/zerolog/log's
// package logger).
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithClock overrides the default wall-clock time source. Intended for
// deterministic tests.
func WithClock(now clock.Func) Option {
	return func(c *config) { c.now = now }
}

// WithJournaling sets whether accepted commands record journal entries.
// Journaling is on by default.
func WithJournaling(enabled bool) Option {
	return func(c *config) { c.journaling = enabled }
}

// New opens a fresh, empty book for symbol.
func New(symbol string, opts ...Option) *Book {
	cfg := config{
		logger:     log.Logger,
		now:        clock.System,
		journaling: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Book{
		InstanceID: uuid.New(),
		symbol:     symbol,
		eng:        engine.New(symbol, cfg.now, cfg.journaling, cfg.logger),
		jlog:       journal.NewLog(),
		log:        cfg.logger,
		now:        cfg.now,
		journaling: cfg.journaling,
	}
	b.log.Info().
		Str("symbol", symbol).
		Str("instance_id", b.InstanceID.String()).
		Msg("book opened")
	return b
}

// Symbol returns the symbol this book was opened for.
func (b *Book) Symbol() string { return b.symbol }

// SubmitMarket submits a market order on side for qty units, matching
// immediately against resting opposite-side liquidity and dropping any
// unfilled remainder.
func (b *Book) SubmitMarket(side Side, qty Quantity) (ExecutionReport, error) {
	report, err := b.eng.SubmitMarket(side, qty)
	if err != nil {
		b.log.Debug().Err(err).Str("symbol", b.symbol).Msg("market order rejected")
		return report, err
	}
	b.jlog.Append(report.Log)
	return report, nil
}

// SubmitLimit submits a limit order on side for qty units at price, with
// the given time-in-force and post-only behavior.
func (b *Book) SubmitLimit(side Side, qty Quantity, price Price, tif TimeInForce, postOnly bool) (ExecutionReport, error) {
	report, err := b.eng.SubmitLimit(side, qty, price, tif, postOnly)
	if err != nil {
		b.log.Debug().Err(err).Str("symbol", b.symbol).Msg("limit order rejected")
		return report, err
	}
	b.jlog.Append(report.Log)
	return report, nil
}

// Cancel removes a resting order from the book.
func (b *Book) Cancel(id OrderID) (ExecutionReport, error) {
	report, err := b.eng.Cancel(id)
	if err != nil {
		return report, err
	}
	b.jlog.Append(report.Log)
	return report, nil
}

// Modify replaces a resting order's price and/or quantity via
// cancel-and-replace. The returned report's OrderID is the new order's
// id; the old id stops resolving the instant Modify succeeds.
func (b *Book) Modify(id OrderID, newPrice *Price, newQty *Quantity) (ExecutionReport, error) {
	report, err := b.eng.Modify(id, newPrice, newQty)
	if err != nil {
		return report, err
	}
	b.jlog.Append(report.Log)
	return report, nil
}

// BestBid returns the highest resting buy price, if any.
func (b *Book) BestBid() (Price, bool) { return b.eng.BestBid() }

// BestAsk returns the lowest resting sell price, if any.
func (b *Book) BestAsk() (Price, bool) { return b.eng.BestAsk() }

// MidPrice is the arithmetic mean of best bid and best ask, if both exist.
func (b *Book) MidPrice() (Price, bool) { return b.eng.MidPrice() }

// Spread is best ask minus best bid, if both exist.
func (b *Book) Spread() (Price, bool) { return b.eng.Spread() }

// GetOrder returns a read-only view of a resting order.
func (b *Book) GetOrder(id OrderID) (OrderView, error) { return b.eng.GetOrder(id) }

// GetOrdersAtPrice returns the resting orders at (side, price), earliest
// first.
func (b *Book) GetOrdersAtPrice(side Side, price Price) []OrderView {
	return b.eng.GetOrdersAtPrice(side, price)
}

// Depth returns up to limit price levels per side, best-first. limit <= 0
// defaults to 100.
func (b *Book) Depth(limit int) DepthResult { return b.eng.Depth(limit) }

// JournalEntries returns every journal entry recorded since the last
// DiscardJournal or RestoreSnapshot (or since the book opened, if neither
// has been called yet).
func (b *Book) JournalEntries() []JournalLog { return b.jlog.Entries() }

// Snapshot takes a deep-copy, point-in-time snapshot of the book. It does
// not truncate the journal log; pair it with a call to DiscardJournal
// once the snapshot itself is durably persisted.
func (b *Book) Snapshot() Snapshot {
	return journal.FromState(b.symbol, b.now(), b.eng.ExportState())
}

// DiscardJournal drops every journal entry recorded so far, called once
// a Snapshot covering them has been durably persisted.
func (b *Book) DiscardJournal() { b.jlog.Truncate() }

// RestoreSnapshot discards the book's current contents and replaces them
// with a previously taken Snapshot. The snapshot's symbol must match this
// book's.
func (b *Book) RestoreSnapshot(snap Snapshot) error {
	if snap.Symbol != b.symbol {
		return engine.NewErrorf(engine.CodeDefault, "snapshot symbol %q does not match book symbol %q", snap.Symbol, b.symbol)
	}
	b.eng.RestoreState(snap.ToState())
	b.jlog.Truncate()
	b.log.Info().Str("symbol", b.symbol).Int64("snapshot_ts", snap.TS).Msg("book restored from snapshot")
	return nil
}

// Replay re-applies a previously recorded sequence of journal entries, in
// OpID order, reproducing the exact sequence of accepted commands that
// generated them. It is meant to be called against either a freshly
// opened book, or a book immediately after RestoreSnapshot using only the
// entries recorded after that snapshot was taken. Replaying the same
// entries twice duplicates state.
//
// Replay does not itself produce journal entries; the book's own
// journaling setting is left untouched once replay completes.
func (b *Book) Replay(entries []JournalLog) error {
	b.eng.SetJournaling(false)
	defer b.eng.SetJournaling(b.journaling)

	for _, entry := range journal.Sorted(entries) {
		if err := b.replayOne(entry); err != nil {
			b.log.Error().Err(err).Uint64("op_id", entry.OpID).Msg("replay failed")
			return fmt.Errorf("matchbook: replay of op %d failed: %w", entry.OpID, err)
		}
	}
	return nil
}

func (b *Book) replayOne(entry JournalLog) error {
	switch entry.Op {
	case common.JournalMarket:
		var p common.MarketJournalPayload
		if err := decodePayload(entry.Payload, &p); err != nil {
			return err
		}
		_, err := b.eng.SubmitMarket(p.Side, p.Quantity)
		return err

	case common.JournalLimit:
		var p common.LimitJournalPayload
		if err := decodePayload(entry.Payload, &p); err != nil {
			return err
		}
		_, err := b.eng.SubmitLimit(p.Side, p.Quantity, p.Price, p.TIF, p.PostOnly)
		return err

	case common.JournalCancel:
		var p common.CancelJournalPayload
		if err := decodePayload(entry.Payload, &p); err != nil {
			return err
		}
		_, err := b.eng.Cancel(p.OrderID)
		return err

	case common.JournalModify:
		var p common.ModifyJournalPayload
		if err := decodePayload(entry.Payload, &p); err != nil {
			return err
		}
		_, err := b.eng.Modify(p.OldID, p.NewPrice, p.NewQuantity)
		return err

	default:
		return fmt.Errorf("matchbook: unknown journal op %q", entry.Op.String())
	}
}
