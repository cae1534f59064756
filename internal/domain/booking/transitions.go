package booking

import "slices"

type transition struct {
	from []Status
	to   Status
}

var transitions = map[Event]transition{
	EventConfirm:  {from: []Status{StatusPendingPayment}, to: StatusConfirmed},
	EventCheckIn:  {from: []Status{StatusConfirmed}, to: StatusCheckedIn},
	EventCheckOut: {from: []Status{StatusCheckedIn}, to: StatusCheckedOut},
	EventCancel:   {from: []Status{StatusPendingPayment, StatusConfirmed}, to: StatusCancelled},
}

// Target returns the status an event leads to, if the event is table-driven.
func Target(e Event) (Status, bool) {
	t, ok := transitions[e]
	return t.to, ok
}

// CanApply reports whether the event is legal from the given status.
func CanApply(e Event, from Status) bool {
	t, ok := transitions[e]
	return ok && slices.Contains(t.from, from)
}
