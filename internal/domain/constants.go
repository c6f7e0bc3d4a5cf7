package domain

import "time"

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480 // 8 hours

	MinMoneyAmount = 0.01
	MaxMoneyAmount = 100000

	MaxNotesLength       = 1000
	MinReasonLength      = 1
	MaxReasonLength      = 500
	MaxDeliverableLength = 200
	MaxDeliverables      = 50
	MaxEmailLength       = 254

	MinLoyaltyPoints = 0
)

// Pagination constants
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 100
)

// Time window defaults
const (
	DefaultSkewBuffer = 5 * time.Minute
	DefaultMinLead    = time.Hour
	DefaultMaxHorizon = 90 * 24 * time.Hour
)

// Sort fields allowed for the list operation
const (
	SortByScheduledAt = "scheduledAt"
	SortByCreatedAt   = "createdAt"
	SortByTotalAmount = "totalAmount"
	SortByStatus      = "status"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

var SortFields = []string{SortByScheduledAt, SortByCreatedAt, SortByTotalAmount, SortByStatus}

var SortOrders = []string{SortOrderAsc, SortOrderDesc}
