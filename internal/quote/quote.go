package quote

import "encoding/json"

// Request is the tuple that determines quote identity. Issuing a request with
// a different tuple invalidates in-flight and previously selected quotes for
// the old tuple.
type Request struct {
	InputMint   string
	OutputMint  string
	RawAmount   uint64
	SlippageBps int
}

// Quote is one priced conversion path at a point in time. It is immutable
// once constructed; a newer Quote for the same tuple supersedes it, never
// mutates it.
type Quote struct {
	Request              Request
	InAmount             uint64
	OutAmount            uint64
	PriceImpactPct       float64
	OtherAmountThreshold uint64
	SwapMode             string

	// Payload is the pricing service response exactly as received. The swap
	// service requires it echoed back when building the transaction; the core
	// treats it as opaque.
	Payload json.RawMessage
}

// State is the quoting session state.
type State int

const (
	// StateIdle: no amount entered or a token side unset; no request issued.
	StateIdle State = iota
	// StateRequesting: a quote fetch for the current tuple is in flight.
	StateRequesting
	// StateQuoted: the selected quote matches the latest completed request.
	StateQuoted
	// StateEmpty: the pricing service found no usable route.
	StateEmpty
	// StateFailed: transport or parse failure on the latest request.
	StateFailed
	// StateUnsupported: the active network is not served by the pricing
	// service; no request is issued.
	StateUnsupported
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateQuoted:
		return "quoted"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	case StateUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the engine state for rendering.
type Snapshot struct {
	State State
	// Quote is the selected quote; non-nil only in StateQuoted.
	Quote *Quote
	// OutputAmount is the display form of the quote's out amount, capped at
	// four fractional digits.
	OutputAmount string
	// Warning is set when the selected quote's price impact exceeds 1%.
	Warning string
	// Message is the user-facing condition for Empty, Failed and Unsupported.
	Message string
}
