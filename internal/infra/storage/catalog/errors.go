package catalog

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("catalog.repository: location not found")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("catalog.repository: court not found")

	// ErrSlotNotFound возвращается, когда временной слот не найден
	ErrSlotNotFound = errors.New("catalog.repository: time slot not found")

	// ErrDuplicateLocation возвращается при попытке создать локацию с тем же именем у того же администратора
	ErrDuplicateLocation = errors.New("catalog.repository: duplicate location for admin")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
