package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"service_id",
	"specialist_id",
	"customer_id",
	"scheduled_at",
	"duration_minutes",
	"status",
	"customer_notes",
	"specialist_notes",
	"preparation_notes",
	"completion_notes",
	"loyalty_points_used",
	"promo_code_id",
	"total_amount",
	"refund_amount",
	"currency",
	"deliverables",
	"actual_duration_minutes",
	"contact_phone",
	"contact_email",
	"cancellation_reason",
	"cancelled_at",
	"version",
	"created_at",
	"updated_at",
}

// sortColumns сопоставляет поля сортировки API колонкам таблицы
var sortColumns = map[string]string{
	domain.SortByScheduledAt: "scheduled_at",
	domain.SortByCreatedAt:   "created_at",
	domain.SortByTotalAmount: "total_amount",
	domain.SortByStatus:      "status",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет бронирование; ID генерирует вызывающий.
// Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[:len(columns)-3]...).
		Values(
			booking.ID,
			booking.ServiceID,
			booking.SpecialistID,
			booking.CustomerID,
			booking.ScheduledAt,
			booking.DurationMinutes,
			booking.Status,
			booking.CustomerNotes,
			booking.SpecialistNotes,
			booking.PreparationNotes,
			booking.CompletionNotes,
			booking.LoyaltyPointsUsed,
			booking.PromoCodeID,
			booking.TotalAmount,
			booking.RefundAmount,
			booking.Currency,
			pq.Array(deliverablesOf(booking)),
			booking.ActualDurationMinutes,
			booking.ContactPhone,
			booking.ContactEmail,
			booking.CancellationReason,
			booking.CancelledAt,
		).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает страницу бронирований по фильтру и общее число подходящих записей
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute count: %v", ErrExecQuery, err)
	}

	selectBuilder, err := listQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, total, nil
}

// Update сохраняет изменяемые поля, если версия в БД совпадает с expectedVersion.
// При успехе booking.Version и booking.UpdatedAt обновляются из БД.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking, expectedVersion int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("specialist_id", booking.SpecialistID).
		Set("scheduled_at", booking.ScheduledAt).
		Set("duration_minutes", booking.DurationMinutes).
		Set("status", booking.Status).
		Set("specialist_notes", booking.SpecialistNotes).
		Set("preparation_notes", booking.PreparationNotes).
		Set("completion_notes", booking.CompletionNotes).
		Set("refund_amount", booking.RefundAmount).
		Set("deliverables", pq.Array(deliverablesOf(booking))).
		Set("actual_duration_minutes", booking.ActualDurationMinutes).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "version": expectedVersion}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.Version, &booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Отличаем отсутствующую запись от устаревшей версии
		if _, getErr := r.GetByID(ctx, booking.ID); errors.Is(getErr, ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// listQuery строит SELECT страницы списка с сортировкой и пагинацией
func listQuery(filter domain.BookingsFilter) (squirrel.SelectBuilder, error) {
	sortColumn := sortColumns[domain.SortByScheduledAt]
	if filter.SortBy != "" {
		col, ok := sortColumns[filter.SortBy]
		if !ok {
			return squirrel.SelectBuilder{}, fmt.Errorf("%w: %s", ErrInvalidSort, filter.SortBy)
		}
		sortColumn = col
	}

	order := "DESC"
	if filter.SortOrder == domain.SortOrderAsc {
		order = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}

	return applyFilter(psqlbuilder.Select(columns...).From(table), filter).
		OrderBy(fmt.Sprintf("%s %s", sortColumn, order), "id "+order).
		Limit(uint64(limit)).
		Offset(uint64(filter.Offset())), nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.CustomerID != nil {
		b = b.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.SpecialistID != nil {
		b = b.Where(squirrel.Eq{"specialist_id": *filter.SpecialistID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		b = b.Where(squirrel.Eq{"status": statuses})
	}
	if filter.From != nil {
		b = b.Where(squirrel.GtOrEq{"scheduled_at": *filter.From})
	}
	if filter.To != nil {
		b = b.Where(squirrel.LtOrEq{"scheduled_at": *filter.To})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b            domain.Booking
		deliverables pq.StringArray
	)

	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&b.SpecialistID,
		&b.CustomerID,
		&b.ScheduledAt,
		&b.DurationMinutes,
		&b.Status,
		&b.CustomerNotes,
		&b.SpecialistNotes,
		&b.PreparationNotes,
		&b.CompletionNotes,
		&b.LoyaltyPointsUsed,
		&b.PromoCodeID,
		&b.TotalAmount,
		&b.RefundAmount,
		&b.Currency,
		&deliverables,
		&b.ActualDurationMinutes,
		&b.ContactPhone,
		&b.ContactEmail,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Deliverables = []string(deliverables)
	b.ScheduledAt = b.ScheduledAt.UTC()
	return &b, nil
}

func deliverablesOf(b *domain.Booking) []string {
	if b.Deliverables == nil {
		return []string{}
	}
	return b.Deliverables
}
