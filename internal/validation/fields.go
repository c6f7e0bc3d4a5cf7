package validation

// Имена полей payload
const (
	FieldBookingID         = "bookingId"
	FieldServiceID         = "serviceId"
	FieldSpecialistID      = "specialistId"
	FieldCustomerID        = "customerId"
	FieldScheduledAt       = "scheduledAt"
	FieldDuration          = "duration"
	FieldStatus            = "status"
	FieldCustomerNotes     = "customerNotes"
	FieldSpecialistNotes   = "specialistNotes"
	FieldPreparationNotes  = "preparationNotes"
	FieldCompletionNotes   = "completionNotes"
	FieldLoyaltyPointsUsed = "loyaltyPointsUsed"
	FieldPromoCodeID       = "promoCodeId"
	FieldTotalAmount       = "totalAmount"
	FieldRefundAmount      = "refundAmount"
	FieldCurrency          = "currency"
	FieldDeliverables      = "deliverables"
	FieldActualDuration    = "actualDuration"
	FieldReason            = "reason"
	FieldContactPhone      = "contactPhone"
	FieldContactEmail      = "contactEmail"
	FieldRequiresPayment   = "requiresPayment"

	// list
	FieldPage      = "page"
	FieldLimit     = "limit"
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldSortBy    = "sortBy"
	FieldSortOrder = "sortOrder"
)
