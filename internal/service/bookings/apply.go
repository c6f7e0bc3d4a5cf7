package bookings

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
)

// newBooking собирает бронирование из нормализованного payload операции create
func newBooking(id string, d *engine.Decision) *domain.Booking {
	v := d.Values

	scheduledAt, _ := v.Time(validation.FieldScheduledAt)
	duration, _ := v.Int(validation.FieldDuration)
	loyalty, _ := v.Int(validation.FieldLoyaltyPointsUsed)
	total, _ := v.Float(validation.FieldTotalAmount)
	currency, _ := v.String(validation.FieldCurrency)
	serviceID, _ := v.String(validation.FieldServiceID)
	customerID, _ := v.String(validation.FieldCustomerID)

	return &domain.Booking{
		ID:                id,
		ServiceID:         serviceID,
		SpecialistID:      v.StringPtr(validation.FieldSpecialistID),
		CustomerID:        customerID,
		ScheduledAt:       scheduledAt,
		DurationMinutes:   duration,
		Status:            d.To,
		CustomerNotes:     v.StringPtr(validation.FieldCustomerNotes),
		LoyaltyPointsUsed: loyalty,
		PromoCodeID:       v.StringPtr(validation.FieldPromoCodeID),
		TotalAmount:       total,
		Currency:          domain.Currency(currency),
		Deliverables:      []string{},
		ContactPhone:      v.StringPtr(validation.FieldContactPhone),
		ContactEmail:      v.StringPtr(validation.FieldContactEmail),
	}
}

// applyDecision возвращает копию current с изменениями из решения; current не меняется
func applyDecision(current *domain.Booking, d *engine.Decision, now time.Time) *domain.Booking {
	updated := *current
	v := d.Values

	if d.ChangesStatus {
		updated.Status = d.To
	}

	if notes := v.StringPtr(validation.FieldSpecialistNotes); notes != nil {
		updated.SpecialistNotes = notes
	}
	if notes := v.StringPtr(validation.FieldPreparationNotes); notes != nil {
		updated.PreparationNotes = notes
	}
	if notes := v.StringPtr(validation.FieldCompletionNotes); notes != nil {
		updated.CompletionNotes = notes
	}
	if actual := v.IntPtr(validation.FieldActualDuration); actual != nil {
		updated.ActualDurationMinutes = actual
	}
	if deliverables, ok := v.Strings(validation.FieldDeliverables); ok {
		updated.Deliverables = append([]string(nil), deliverables...)
	}
	if refund := v.FloatPtr(validation.FieldRefundAmount); refund != nil {
		updated.RefundAmount = refund
	}

	if d.ChangesStatus && d.To == domain.StatusCancelled {
		updated.CancellationReason = v.StringPtr(validation.FieldReason)
		updated.CancelledAt = ptr.Ptr(now)
	}

	if d.Operation == domain.OpReschedule {
		if at, ok := v.Time(validation.FieldScheduledAt); ok {
			updated.ScheduledAt = at
		}
		if duration, ok := v.Int(validation.FieldDuration); ok {
			updated.DurationMinutes = duration
		}
	}

	return &updated
}

// filterOf переводит нормализованный payload операции list в фильтр репозитория
func filterOf(v validation.Values) domain.BookingsFilter {
	page, _ := v.Int(validation.FieldPage)
	limit, _ := v.Int(validation.FieldLimit)
	sortBy, _ := v.String(validation.FieldSortBy)
	sortOrder, _ := v.String(validation.FieldSortOrder)

	filter := domain.BookingsFilter{
		CustomerID:   v.StringPtr(validation.FieldCustomerID),
		SpecialistID: v.StringPtr(validation.FieldSpecialistID),
		SortBy:       sortBy,
		SortOrder:    sortOrder,
		Page:         page,
		Limit:        limit,
	}

	if statuses, ok := v.Strings(validation.FieldStatus); ok {
		for _, s := range statuses {
			filter.Statuses = append(filter.Statuses, domain.BookingStatus(s))
		}
	}
	if from, ok := v.Time(validation.FieldFrom); ok {
		filter.From = &from
	}
	if to, ok := v.Time(validation.FieldTo); ok {
		filter.To = &to
	}

	return filter
}
