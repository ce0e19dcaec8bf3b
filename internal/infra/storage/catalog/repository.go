package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const (
	pqUniqueViolation      = pq.ErrorCode("23505")
	pqSerializationFailure = pq.ErrorCode("40001")
)

// Repository репозиторий справочника: локации, корты и временные слоты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListLocationsWithCourts получает все локации вместе с кортами, упорядоченные по ID
func (r *Repository) ListLocationsWithCourts(ctx context.Context) ([]*domain.Location, error) {
	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocationsWithCourts - build select query: %v", ErrBuildQuery, err)
	}

	locations, err := r.queryLocations(ctx, "ListLocationsWithCourts", query, args)
	if err != nil {
		return nil, err
	}

	if err := r.attachCourts(ctx, locations); err != nil {
		return nil, err
	}

	return locations, nil
}

// ListLocationsByAdmin получает локации администратора вместе с кортами
func (r *Repository) ListLocationsByAdmin(ctx context.Context, adminMobile string) ([]*domain.Location, error) {
	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"admin_mobile": adminMobile}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocationsByAdmin - build select query: %v", ErrBuildQuery, err)
	}

	locations, err := r.queryLocations(ctx, "ListLocationsByAdmin", query, args)
	if err != nil {
		return nil, err
	}

	if err := r.attachCourts(ctx, locations); err != nil {
		return nil, err
	}

	return locations, nil
}

// GetLocation получает локацию с кортами по ID.
// Внутри транзакции строка локации блокируется (FOR UPDATE).
func (r *Repository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	selectBuilder := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - build select query: %v", ErrBuildQuery, err)
	}

	locations, err := r.queryLocations(ctx, "GetLocation", query, args)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, ErrLocationNotFound
	}

	if err := r.attachCourts(ctx, locations); err != nil {
		return nil, err
	}

	return locations[0], nil
}

// GetCourt получает корт по ID
func (r *Repository) GetCourt(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var courts []courtRow
	if err := sqlx.StructScan(rows, &courts); err != nil {
		return nil, fmt.Errorf("%w: GetCourt - scan court: %v", ErrScanRow, err)
	}
	if len(courts) == 0 {
		return nil, ErrCourtNotFound
	}

	return courts[0].toDomain(), nil
}

// GetTimeSlot получает временной слот по ID
func (r *Repository) GetTimeSlot(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []timeSlotRow
	if err := sqlx.StructScan(rows, &slots); err != nil {
		return nil, fmt.Errorf("%w: GetTimeSlot - scan slot: %v", ErrScanRow, err)
	}
	if len(slots) == 0 {
		return nil, ErrSlotNotFound
	}

	return slots[0].toDomain(), nil
}

// ListTimeSlots получает глобальный каталог слотов, упорядоченный по времени начала
func (r *Repository) ListTimeSlots(ctx context.Context) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slotRows []timeSlotRow
	if err := sqlx.StructScan(rows, &slotRows); err != nil {
		return nil, fmt.Errorf("%w: ListTimeSlots - scan slots: %v", ErrScanRow, err)
	}

	slots := make([]*domain.TimeSlot, 0, len(slotRows))
	for _, row := range slotRows {
		slots = append(slots, row.toDomain())
	}

	return slots, nil
}

// CountLocationsByAdmin считает локации администратора
func (r *Repository) CountLocationsByAdmin(ctx context.Context, adminMobile string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("locations").
		Where(squirrel.Eq{"admin_mobile": adminMobile}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountLocationsByAdmin - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountLocationsByAdmin - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CreateLocation создает локацию без кортов
func (r *Repository) CreateLocation(ctx context.Context, location *domain.Location) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("locations").
		Columns("name", "complex_name", "image_url", "admin_mobile").
		Values(location.Name, location.ComplexName, location.ImageURL, location.AdminMobile).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLocation - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&location.ID, &location.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("%w: CreateLocation - %s", ErrDuplicateLocation, location.Name)
		}
		return nil, fmt.Errorf("%w: CreateLocation - execute insert: %v", ErrExecQuery, err)
	}

	return location, nil
}

// CreateCourt создает корт в локации
func (r *Repository) CreateCourt(ctx context.Context, court *domain.Court) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("courts").
		Columns("name", "location_id").
		Values(court.Name, court.LocationID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCourt - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&court.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateCourt - execute insert: %v", ErrExecQuery, err)
	}

	return court, nil
}

// DeleteCourtsByLocation удаляет все корты локации, возвращает количество удаленных
func (r *Repository) DeleteCourtsByLocation(ctx context.Context, locationID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("courts").
		Where(squirrel.Eq{"location_id": locationID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCourtsByLocation - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCourtsByLocation - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCourtsByLocation - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// DeleteLocation удаляет локацию. Корты должны быть удалены до этого в той же транзакции.
func (r *Repository) DeleteLocation(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteLocation - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteLocation - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteLocation - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

func (r *Repository) queryLocations(ctx context.Context, op, query string, args []interface{}) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var locationRows []locationRow
	if err := sqlx.StructScan(rows, &locationRows); err != nil {
		return nil, fmt.Errorf("%w: %s - scan locations: %v", ErrScanRow, op, err)
	}

	locations := make([]*domain.Location, 0, len(locationRows))
	for _, row := range locationRows {
		locations = append(locations, row.toDomain())
	}

	return locations, nil
}

// attachCourts загружает корты одним запросом и раскладывает их по локациям
func (r *Repository) attachCourts(ctx context.Context, locations []*domain.Location) error {
	if len(locations) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Location, len(locations))
	ids := make([]int64, 0, len(locations))
	for _, loc := range locations {
		byID[loc.ID] = loc
		ids = append(ids, loc.ID)
	}

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"location_id": ids}).
		OrderBy("location_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var courtRows []courtRow
	if err := sqlx.StructScan(rows, &courtRows); err != nil {
		return fmt.Errorf("%w: attachCourts - scan courts: %v", ErrScanRow, err)
	}

	for _, row := range courtRows {
		if loc, ok := byID[row.LocationID]; ok {
			loc.Courts = append(loc.Courts, row.toDomain())
		}
	}

	return nil
}

// IsSerializationFailure сообщает, что PostgreSQL отменил транзакцию из-за конкурентной
// сериализуемой транзакции (например, при фиксации). Запрос можно повторить.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqSerializationFailure
}
