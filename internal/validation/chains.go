package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/sanitize"
	"github.com/m04kA/SMC-BookingEngine/internal/schedule"
)

var (
	phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

// Registry хранит цепочки валидации по операциям
type Registry struct {
	chains map[domain.Operation]*Chain
}

// NewRegistry builds the chains of every booking operation; policy backs the scheduledAt rules
func NewRegistry(policy schedule.Policy) *Registry {
	r := &Registry{chains: make(map[domain.Operation]*Chain)}
	for _, c := range []*Chain{
		createChain(policy),
		updateStatusChain(),
		cancelChain(),
		confirmChain(),
		startChain(),
		completeChain(),
		refundChain(),
		rescheduleChain(policy),
		listChain(),
		getChain(),
	} {
		r.chains[c.Operation()] = c
	}
	return r
}

// Get returns the chain of op
func (r *Registry) Get(op domain.Operation) (*Chain, error) {
	c, ok := r.chains[op]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	return c, nil
}

// Validate runs the chain of op against raw
func (r *Registry) Validate(op domain.Operation, raw map[string]any, now time.Time, extra ...CrossRule) (Values, error) {
	c, err := r.Get(op)
	if err != nil {
		return nil, err
	}
	return c.Validate(raw, now, extra...)
}

// Общие правила полей

func id(name string) *FieldRule {
	return Field(name).Then(AsUUID())
}

func notes(name string) *FieldRule {
	return Field(name).Then(AsString(), Sanitize(sanitize.StripHTML), Length(0, domain.MaxNotesLength))
}

func reason() *FieldRule {
	return Field(FieldReason).Then(AsString(), Sanitize(sanitize.StripHTML),
		Length(domain.MinReasonLength, domain.MaxReasonLength))
}

func duration(name string) *FieldRule {
	return Field(name).Then(AsInt(), Range(domain.MinDurationMinutes, domain.MaxDurationMinutes))
}

func money(name string) *FieldRule {
	return Field(name).Then(AsMoney())
}

func dateTime(name string) *FieldRule {
	return Field(name).Then(AsDateTime())
}

func statusNames() []string {
	out := make([]string, len(domain.AllStatuses))
	for i, s := range domain.AllStatuses {
		out[i] = s.String()
	}
	return out
}

func currencyNames() []string {
	out := make([]string, len(domain.Currencies))
	for i, c := range domain.Currencies {
		out[i] = string(c)
	}
	return out
}

func createChain(policy schedule.Policy) *Chain {
	return NewChain(domain.OpCreate,
		id(FieldServiceID).Required(),
		id(FieldSpecialistID),
		id(FieldCustomerID).Required(),
		dateTime(FieldScheduledAt).Required(),
		duration(FieldDuration).Required(),
		notes(FieldCustomerNotes),
		Field(FieldLoyaltyPointsUsed).Default(0).Then(AsInt(), Min(domain.MinLoyaltyPoints)),
		id(FieldPromoCodeID),
		money(FieldTotalAmount).Required(),
		Field(FieldCurrency).Default(string(domain.DefaultCurrency)).
			Then(AsString(), Sanitize(sanitize.Upper), OneOf(currencyNames()...)),
		Field(FieldContactPhone).Then(AsString(), Sanitize(sanitize.Phone),
			Match(phonePattern, "must be a phone number in international format")),
		Field(FieldContactEmail).Then(AsString(), Sanitize(sanitize.Email),
			Length(0, domain.MaxEmailLength), Match(emailPattern, "must be a valid email address")),
		Field(FieldRequiresPayment).Default(false).Then(AsBool()),
	).With(ScheduledWithin(policy, FieldScheduledAt))
}

func updateStatusChain() *Chain {
	return NewChain(domain.OpUpdateStatus,
		id(FieldBookingID).Required(),
		Field(FieldStatus).Required().Then(AsString(), Sanitize(sanitize.Upper), OneOf(statusNames()...)),
		reason(),
		notes(FieldSpecialistNotes),
		notes(FieldPreparationNotes),
		notes(FieldCompletionNotes),
		duration(FieldActualDuration),
		deliverables(),
		money(FieldRefundAmount),
	).With(StatusRequirements())
}

func cancelChain() *Chain {
	return NewChain(domain.OpCancel,
		id(FieldBookingID).Required(),
		reason().Required(),
		money(FieldRefundAmount),
	)
}

func confirmChain() *Chain {
	return NewChain(domain.OpConfirm,
		id(FieldBookingID).Required(),
		notes(FieldSpecialistNotes),
		notes(FieldPreparationNotes),
	)
}

func startChain() *Chain {
	return NewChain(domain.OpStart,
		id(FieldBookingID).Required(),
		notes(FieldSpecialistNotes),
	)
}

func completeChain() *Chain {
	return NewChain(domain.OpComplete,
		id(FieldBookingID).Required(),
		duration(FieldActualDuration).Required(),
		deliverables(),
		notes(FieldCompletionNotes),
	)
}

func refundChain() *Chain {
	return NewChain(domain.OpRefund,
		id(FieldBookingID).Required(),
		money(FieldRefundAmount).Required(),
	)
}

func rescheduleChain(policy schedule.Policy) *Chain {
	return NewChain(domain.OpReschedule,
		id(FieldBookingID).Required(),
		dateTime(FieldScheduledAt).Required(),
		duration(FieldDuration),
		reason(),
	).With(ScheduledWithin(policy, FieldScheduledAt))
}

func listChain() *Chain {
	return NewChain(domain.OpList,
		Field(FieldPage).Default(domain.DefaultPage).Then(AsInt(), Min(domain.DefaultPage)),
		Field(FieldLimit).Default(domain.DefaultLimit).Then(AsInt(), Range(domain.MinLimit, domain.MaxLimit)),
		Field(FieldStatus).Then(AsStrings(), NonEmpty(), Each(Sanitize(sanitize.Upper), OneOf(statusNames()...))),
		dateTime(FieldFrom),
		dateTime(FieldTo),
		Field(FieldSortBy).Default(domain.SortByScheduledAt).Then(AsString(), Sanitize(sanitize.Trim), OneOf(domain.SortFields...)),
		Field(FieldSortOrder).Default(domain.SortOrderDesc).Then(AsString(), Sanitize(sanitize.Lower), OneOf(domain.SortOrders...)),
		id(FieldCustomerID),
		id(FieldSpecialistID),
	).With(After(FieldFrom, FieldTo))
}

func getChain() *Chain {
	return NewChain(domain.OpGet,
		id(FieldBookingID).Required(),
	)
}

func deliverables() *FieldRule {
	return Field(FieldDeliverables).Then(
		AsStrings(),
		MaxItems(domain.MaxDeliverables),
		Each(Sanitize(sanitize.StripHTML), Length(1, domain.MaxDeliverableLength)),
	)
}
