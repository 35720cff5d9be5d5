package animals

import (
	"context"
	"fmt"

	"livestock-records/internal/lifecycle"
)

// Consultas por etapa. La fuente filtra; el orden y los agregados salen de lifecycle.

// Ranked lista los animales vivos por etapa canónica y, dentro de la etapa, mayor edad primero.
func (s *Service) Ranked(ctx context.Context) ([]Animal, error) {
	items, err := s.alive(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	lifecycle.SortByStage(items, lifecycle.ByAgeDesc[Animal])
	return items, nil
}

// ByStage valida la etiqueta antes de tocar la fuente.
func (s *Service) ByStage(ctx context.Context, stage string) ([]Animal, error) {
	st, err := lifecycle.ParseStage(stage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	items, err := s.alive(ctx, ListFilter{Stage: &st})
	if err != nil {
		return nil, err
	}
	lifecycle.SortByAgeDesc(items)
	return items, nil
}

// ByAgeRange: ambos extremos inclusivos, como BETWEEN.
func (s *Service) ByAgeRange(ctx context.Context, minAge, maxAge int) ([]Animal, error) {
	if minAge < 0 || maxAge < 0 {
		return nil, fmt.Errorf("%w: ages must not be negative", ErrInvalidInput)
	}
	if minAge > maxAge {
		return nil, fmt.Errorf("%w: min_age must not be greater than max_age", ErrInvalidInput)
	}
	lo, hi := float64(minAge), float64(maxAge)
	items, err := s.alive(ctx, ListFilter{MinAge: &lo, MaxAge: &hi})
	if err != nil {
		return nil, err
	}
	lifecycle.SortByAgeDesc(items)
	return items, nil
}

func (s *Service) Stats(ctx context.Context) (lifecycle.StageSummary, error) {
	items, err := s.alive(ctx, ListFilter{})
	if err != nil {
		return lifecycle.StageSummary{}, err
	}
	return lifecycle.SummarizeByStage(items), nil
}

func (s *Service) Weights(ctx context.Context) ([]lifecycle.WeightStats, error) {
	summary, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return summary.Weights(), nil
}

func (s *Service) Transitions(ctx context.Context) ([]lifecycle.StageChange[Animal], error) {
	items, err := s.alive(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return lifecycle.PlanTransitions(items), nil
}

func (s *Service) Catalog(ctx context.Context) ([]lifecycle.Stage, error) {
	items, err := s.alive(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return lifecycle.StageCatalog(items), nil
}

func (s *Service) alive(ctx context.Context, f ListFilter) ([]Animal, error) {
	items, err := s.repo.ListAlive(ctx, f)
	if err != nil {
		return nil, s.sourceErr("list alive animals", err)
	}
	return items, nil
}
