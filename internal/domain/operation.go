package domain

// Operation identifies an API operation on bookings
type Operation string

const (
	OpCreate       Operation = "create"
	OpGet          Operation = "get"
	OpList         Operation = "list"
	OpUpdateStatus Operation = "updateStatus"
	OpCancel       Operation = "cancel"
	OpConfirm      Operation = "confirm"
	OpStart        Operation = "start"
	OpComplete     Operation = "complete"
	OpRefund       Operation = "refund"
	OpReschedule   Operation = "reschedule"
)

// Operations список всех операций
var Operations = []Operation{
	OpCreate,
	OpGet,
	OpList,
	OpUpdateStatus,
	OpCancel,
	OpConfirm,
	OpStart,
	OpComplete,
	OpRefund,
	OpReschedule,
}

func (o Operation) String() string {
	return string(o)
}

// IsValid returns true if the operation is known
func (o Operation) IsValid() bool {
	for _, known := range Operations {
		if o == known {
			return true
		}
	}
	return false
}
