package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"livestock-records/internal/adapters/storage/herdview"
	"livestock-records/internal/domain/animals"
)

// AnimalRepo hace en memoria lo que la vista vista_animal_completa hace en Postgres:
// si un animal no trae etapa, la deriva de la fecha de nacimiento al leer.
type AnimalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
	now  func() time.Time
}

func NewAnimalRepo() *AnimalRepo {
	return &AnimalRepo{
		byID: make(map[string]animals.Animal),
		now:  time.Now,
	}
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkNew(a); err != nil {
		return err
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AnimalRepo) CreateMany(ctx context.Context, as []animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validar todo antes de escribir: todo o nada.
	seen := make(map[string]bool, len(as))
	for _, a := range as {
		if err := r.checkNew(a); err != nil {
			return err
		}
		if seen[a.Code] {
			return animals.ErrDuplicateCode
		}
		seen[a.Code] = true
	}
	for _, a := range as {
		r.byID[a.ID] = a
	}
	return nil
}

func (r *AnimalRepo) checkNew(a animals.Animal) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	for _, x := range r.byID {
		if x.Code == a.Code {
			return animals.ErrDuplicateCode
		}
	}
	return nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return herdview.Complete(a, r.now()), nil
}

func (r *AnimalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	return r.list(func(animals.Animal) bool { return true }), nil
}

func (r *AnimalRepo) ListAlive(ctx context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	return r.list(func(a animals.Animal) bool {
		return a.IsAlive() && f.Matches(a)
	}), nil
}

func (r *AnimalRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *AnimalRepo) list(keep func(animals.Animal) bool) []animals.Animal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := r.now()
	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		a = herdview.Complete(a, today)
		if keep(a) {
			out = append(out, a)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Code < out[j].Code
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
