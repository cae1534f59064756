package booking

type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED"
	StatusCheckedIn      Status = "CHECKED_IN"
	StatusCheckedOut     Status = "CHECKED_OUT"
	StatusCancelled      Status = "CANCELLED"
)

// ActiveStatuses hold a unit's interval and block availability.
var ActiveStatuses = []Status{StatusPendingPayment, StatusConfirmed, StatusCheckedIn}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsActive() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCheckedIn:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Channel decides the initial status of a new booking.
type Channel string

const (
	ChannelOnline Channel = "online"
	ChannelManual Channel = "manual"
)

func (c Channel) InitialStatus() Status {
	if c == ChannelManual {
		return StatusConfirmed
	}
	return StatusPendingPayment
}

type Event string

const (
	EventCreate   Event = "create"
	EventConfirm  Event = "confirm"
	EventCheckIn  Event = "check_in"
	EventCheckOut Event = "check_out"
	EventCancel   Event = "cancel"
	EventOverride Event = "status_override"
)
