package domain

import "time"

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	CustomerID   *string         // Бронирования конкретного клиента (опционально)
	SpecialistID *string         // Бронирования конкретного специалиста (опционально)
	Statuses     []BookingStatus // Фильтр по статусам (пустой - все статусы)
	From         *time.Time      // scheduledAt >= From (опционально)
	To           *time.Time      // scheduledAt <= To (опционально)
	SortBy       string          // Одно из SortFields
	SortOrder    string          // asc | desc
	Page         int             // >= 1
	Limit        int             // 1..100
}

// Offset returns the number of rows to skip for the current page
func (f BookingsFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// BookingPage одна страница результатов списка
type BookingPage struct {
	Items []*Booking
	Total int
	Page  int
	Limit int
}
