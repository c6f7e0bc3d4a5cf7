package engine

import (
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
)

// operationSpec описывает уровень лимита и переход статуса операции
type operationSpec struct {
	tier ratelimit.Tier

	// target целевой статус; пустой для create, updateStatus (берётся из payload) и операций без перехода
	target domain.BookingStatus

	// existing операция над уже созданным бронированием
	existing bool

	// transition операция меняет статус
	transition bool

	// capsRefund refundAmount не может превышать totalAmount бронирования
	capsRefund bool
}

var operations = map[domain.Operation]operationSpec{
	domain.OpCreate:       {tier: ratelimit.TierStandard},
	domain.OpGet:          {tier: ratelimit.TierLenient},
	domain.OpList:         {tier: ratelimit.TierLenient},
	domain.OpUpdateStatus: {tier: ratelimit.TierStandard, existing: true, transition: true, capsRefund: true},
	domain.OpCancel:       {tier: ratelimit.TierStandard, target: domain.StatusCancelled, existing: true, transition: true, capsRefund: true},
	domain.OpConfirm:      {tier: ratelimit.TierStandard, target: domain.StatusConfirmed, existing: true, transition: true},
	domain.OpStart:        {tier: ratelimit.TierStandard, target: domain.StatusInProgress, existing: true, transition: true},
	domain.OpComplete:     {tier: ratelimit.TierStandard, target: domain.StatusCompleted, existing: true, transition: true},
	domain.OpRefund:       {tier: ratelimit.TierStrict, target: domain.StatusRefunded, existing: true, transition: true, capsRefund: true},
	domain.OpReschedule:   {tier: ratelimit.TierStandard, existing: true},
}
