package error_notificator

import "context"

type Notificator interface {
	// Notify сообщает о сбое конвертера
	Notify(ctx context.Context, operation string, err error, details string) error
}
