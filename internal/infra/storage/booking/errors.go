package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда хранилище отклонило вставку из-за конкурентной записи
	// (нарушение уникального индекса или сбой сериализации)
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrConcurrentUpdate возвращается, когда PostgreSQL отклонил чтение или запись из-за
	// конкурентной транзакции над теми же строками (сбой сериализации 40001 или 23505)
	ErrConcurrentUpdate = errors.New("booking.repository: concurrent update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrCannotCancel возвращается, когда бронирование уже не в статусе BOOKED
	ErrCannotCancel = errors.New("booking.repository: booking cannot be cancelled")
)
