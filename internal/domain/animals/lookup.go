package animals

import (
	"context"
	"errors"
)

// Exists lo usan otros módulos (vacunas) sin depender del repositorio.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
		return false, nil
	}
	return false, err
}
