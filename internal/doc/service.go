package doc

import (
	"context"
	"fmt"
	"os"
)

type Service struct {
	conv WordConverter
}

func NewService(conv WordConverter) *Service {
	return &Service{conv: conv}
}

func (s *Service) Convert(ctx context.Context, input, output string) error {
	if err := s.conv.ConvertToWord(ctx, input, output); err != nil {
		return fmt.Errorf("%s: %w", s.conv.Name(), err)
	}
	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("%s: no output produced: %w", s.conv.Name(), err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s: empty output", s.conv.Name())
	}
	return nil
}

func (s *Service) Engine() string { return s.conv.Name() }
