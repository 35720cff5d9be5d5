// Package records arma la ficha de un animal: datos, padres y vacunas con su urgencia.
package records

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
)

type AnimalReader interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type VaccinationReader interface {
	ByAnimal(ctx context.Context, animalID string, today time.Time) ([]vaccines.Classified, error)
}

// ParentRef es la referencia corta a madre o padre.
type ParentRef struct {
	ID    string
	Code  string
	Alias string
}

type Sheet struct {
	Animal       animals.Animal
	Mother       *ParentRef
	Father       *ParentRef
	Vaccinations []vaccines.Classified
}

type Service struct {
	animals  AnimalReader
	vaccines VaccinationReader
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(a AnimalReader, v VaccinationReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		animals:  a,
		vaccines: v,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock fija de dónde sale "hoy"; nil conserva el reloj actual.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Get lee el animal y luego, en paralelo, padres e historial de vacunas.
// Un padre que ya no existe se omite; cualquier otro error cancela la ficha.
func (s *Service) Get(ctx context.Context, animalID string) (Sheet, error) {
	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return Sheet{}, err
	}

	sheet := Sheet{Animal: a}
	today := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ref, err := s.parent(gctx, a.MotherID)
		sheet.Mother = ref
		return err
	})
	g.Go(func() error {
		ref, err := s.parent(gctx, a.FatherID)
		sheet.Father = ref
		return err
	})
	g.Go(func() error {
		items, err := s.vaccines.ByAnimal(gctx, a.ID, today)
		sheet.Vaccinations = items
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("animal sheet incomplete", zap.String("animal_id", a.ID), zap.Error(err))
		return Sheet{}, err
	}
	return sheet, nil
}

func (s *Service) parent(ctx context.Context, id *string) (*ParentRef, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	p, err := s.animals.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ParentRef{ID: p.ID, Code: p.Code, Alias: p.Alias}, nil
}
