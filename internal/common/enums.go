// Package common holds the core value types shared by the book, engine,
// and journal packages: sides, order types, time-in-force, statuses, and
// the order/fill/execution-report records themselves.
package common

import (
	"encoding/json"
	"fmt"
)

// Side is the side of an order: buy or sell.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "buy":
		*s = Buy
	case "sell":
		*s = Sell
	default:
		return fmt.Errorf("common: invalid side %q", raw)
	}
	return nil
}

// OrderType distinguishes market from limit orders.
type OrderType int

const (
	Limit OrderType = iota
	Market
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "limit"
	case Market:
		return "market"
	default:
		return fmt.Sprintf("OrderType(%d)", int(t))
	}
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "limit":
		*t = Limit
	case "market":
		*t = Market
	default:
		return fmt.Errorf("common: invalid order type %q", raw)
	}
	return nil
}

// TimeInForce governs how long a limit order may rest before it must
// execute or be canceled.
type TimeInForce int

const (
	GTC TimeInForce = iota
	IOC
	FOK
)

func (f TimeInForce) String() string {
	switch f {
	case GTC:
		return "GTC"
	case IOC:
		return "IOC"
	case FOK:
		return "FOK"
	default:
		return fmt.Sprintf("TimeInForce(%d)", int(f))
	}
}

func (f TimeInForce) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *TimeInForce) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "GTC":
		*f = GTC
	case "IOC":
		*f = IOC
	case "FOK":
		*f = FOK
	default:
		return fmt.Errorf("common: invalid time in force %q", raw)
	}
	return nil
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus int

const (
	New OrderStatus = iota
	PartiallyFilled
	Filled
	Canceled
	Rejected
)

func (s OrderStatus) String() string {
	switch s {
	case New:
		return "new"
	case PartiallyFilled:
		return "partially_filled"
	case Filled:
		return "filled"
	case Canceled:
		return "canceled"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "new":
		*s = New
	case "partially_filled":
		*s = PartiallyFilled
	case "filled":
		*s = Filled
	case "canceled":
		*s = Canceled
	case "rejected":
		*s = Rejected
	default:
		return fmt.Errorf("common: invalid order status %q", raw)
	}
	return nil
}

// JournalOp identifies the kind of command a JournalLog entry records.
type JournalOp int

const (
	JournalMarket JournalOp = iota
	JournalLimit
	JournalCancel
	JournalModify
)

func (o JournalOp) String() string {
	switch o {
	case JournalMarket:
		return "market"
	case JournalLimit:
		return "limit"
	case JournalCancel:
		return "cancel"
	case JournalModify:
		return "modify"
	default:
		return fmt.Sprintf("JournalOp(%d)", int(o))
	}
}

func (o JournalOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *JournalOp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "market":
		*o = JournalMarket
	case "limit":
		*o = JournalLimit
	case "cancel":
		*o = JournalCancel
	case "modify":
		*o = JournalModify
	default:
		return fmt.Errorf("common: invalid journal op %q", raw)
	}
	return nil
}
