package delete_location

import (
	"context"
)

type CatalogService interface {
	DeleteLocation(ctx context.Context, locationID int64, adminMobile string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
