package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending        BookingStatus = "PENDING"
	StatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	StatusConfirmed      BookingStatus = "CONFIRMED"
	StatusInProgress     BookingStatus = "IN_PROGRESS"
	StatusCompleted      BookingStatus = "COMPLETED"
	StatusCancelled      BookingStatus = "CANCELLED"
	StatusRefunded       BookingStatus = "REFUNDED"
)

// AllStatuses перечисляет все допустимые статусы в порядке жизненного цикла
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusPendingPayment,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRefunded,
}

// IsValid returns true if the status is one of the seven known statuses
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transition is legal from the status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRefunded
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking represents a scheduled engagement between a customer and a specialist
type Booking struct {
	ID           string
	ServiceID    string
	SpecialistID *string
	CustomerID   string

	ScheduledAt     time.Time
	DurationMinutes int
	Status          BookingStatus

	CustomerNotes    *string
	SpecialistNotes  *string
	PreparationNotes *string
	CompletionNotes  *string

	LoyaltyPointsUsed int
	PromoCodeID       *string
	TotalAmount       float64
	RefundAmount      *float64
	Currency          Currency

	Deliverables          []string
	ActualDurationMinutes *int

	// Контактные данные клиента (уже нормализованные)
	ContactPhone *string
	ContactEmail *string

	CancellationReason *string
	CancelledAt        *time.Time

	// Version увеличивается при каждом изменении, используется для optimistic locking
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns the planned end of the booking
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
