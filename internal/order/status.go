package order

// Status is the lifecycle state of a placed order. Transitions are strictly
// forward: NEW -> PREPARING -> READY -> COLLECTED. COLLECTED is terminal.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusCollected Status = "COLLECTED"
)

// stage bundles everything a status drives: the next status in the linear
// progression, the customer-facing label and message, and the label on the
// kitchen action button that triggers the transition. Keeping them in one
// table means the customer display and the staff button can never disagree.
type stage struct {
	next    Status
	label   string
	message string
	action  string
}

var stages = map[Status]stage{
	StatusNew: {
		next:    StatusPreparing,
		label:   "New Order",
		message: "Payment Received! Order is in the queue.",
		action:  "Start Preparing",
	},
	StatusPreparing: {
		next:    StatusReady,
		label:   "Preparing",
		message: "The chef is preparing your delicious meal!",
		action:  "Ready for Pickup!",
	},
	StatusReady: {
		next:    StatusCollected,
		label:   "Ready for Collection",
		message: "Your order is ready! Please collect it from the stall.",
		action:  "Mark Collected",
	},
	StatusCollected: {
		label:   "Collected",
		message: "Thank you! Enjoy your food!",
	},
}

// NextStatus returns the status that follows s in the lifecycle. ok is false
// when s is terminal (or unknown); advancing a terminal order is a no-op.
//
// Status writes are last-write-wins: two staff devices advancing the same
// order concurrently may each read the same state and apply the transition
// twice, skipping a step. That race is accepted; there is no compare-and-swap
// guard here or in the store.
func NextStatus(s Status) (Status, bool) {
	st, ok := stages[s]
	if !ok || st.next == "" {
		return "", false
	}
	return st.next, true
}

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	_, ok := stages[s]
	return ok
}

// Label is the short display name for s.
func (s Status) Label() string {
	return stages[s].label
}

// Message is the customer-facing status line shown on the tracking screen.
func (s Status) Message() string {
	return stages[s].message
}

// ActionLabel is the text on the kitchen button that advances s. ok is false
// for terminal states, where the button renders disabled.
func (s Status) ActionLabel() (string, bool) {
	st, ok := stages[s]
	if !ok || st.next == "" {
		return "", false
	}
	return st.action, true
}
