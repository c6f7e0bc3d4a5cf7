package models

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string  `json:"id"`
	ServiceID    string  `json:"serviceId"`
	SpecialistID *string `json:"specialistId,omitempty"`
	CustomerID   string  `json:"customerId"`

	ScheduledAt     time.Time `json:"scheduledAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"duration"`
	Status          string    `json:"status"`

	CustomerNotes    *string `json:"customerNotes,omitempty"`
	SpecialistNotes  *string `json:"specialistNotes,omitempty"`
	PreparationNotes *string `json:"preparationNotes,omitempty"`
	CompletionNotes  *string `json:"completionNotes,omitempty"`

	LoyaltyPointsUsed int      `json:"loyaltyPointsUsed"`
	PromoCodeID       *string  `json:"promoCodeId,omitempty"`
	TotalAmount       float64  `json:"totalAmount"`
	RefundAmount      *float64 `json:"refundAmount,omitempty"`
	Currency          string   `json:"currency"`

	Deliverables          []string `json:"deliverables"`
	ActualDurationMinutes *int     `json:"actualDuration,omitempty"`

	ContactPhone *string `json:"contactPhone,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со страницей бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                    b.ID,
		ServiceID:             b.ServiceID,
		SpecialistID:          b.SpecialistID,
		CustomerID:            b.CustomerID,
		ScheduledAt:           b.ScheduledAt.UTC(),
		EndsAt:                b.EndsAt().UTC(),
		DurationMinutes:       b.DurationMinutes,
		Status:                b.Status.String(),
		CustomerNotes:         b.CustomerNotes,
		SpecialistNotes:       b.SpecialistNotes,
		PreparationNotes:      b.PreparationNotes,
		CompletionNotes:       b.CompletionNotes,
		LoyaltyPointsUsed:     b.LoyaltyPointsUsed,
		PromoCodeID:           b.PromoCodeID,
		TotalAmount:           b.TotalAmount,
		RefundAmount:          b.RefundAmount,
		Currency:              string(b.Currency),
		Deliverables:          b.Deliverables,
		ActualDurationMinutes: b.ActualDurationMinutes,
		ContactPhone:          b.ContactPhone,
		ContactEmail:          b.ContactEmail,
		CancellationReason:    b.CancellationReason,
		Version:               b.Version,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}

	if resp.Deliverables == nil {
		resp.Deliverables = []string{}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingPage конвертирует страницу domain моделей в DTO
func FromDomainBookingPage(page domain.BookingPage) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(page.Items)),
		Total:    page.Total,
		Page:     page.Page,
		Limit:    page.Limit,
	}

	for _, booking := range page.Items {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
