package error_notificator

import (
	"context"
	"strings"
)

const maxDetails = 500

type Service struct {
	infra Notificator
}

func NewService(infra Notificator) *Service {
	return &Service{infra: infra}
}

func (s *Service) Notify(ctx context.Context, operation string, err error, details string) error {
	if err == nil {
		return nil
	}
	details = strings.TrimSpace(details)
	if len(details) > maxDetails {
		details = details[:maxDetails] + "..."
	}
	return s.infra.Notify(ctx, operation, err, details)
}
