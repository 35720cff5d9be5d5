package animals

import (
	"context"

	"livestock-records/internal/lifecycle"
)

// Repository es la fuente de registros. Filtra por columnas de almacenamiento;
// el orden por etapa lo aplica el servicio con el comparador de lifecycle.
type Repository interface {
	Create(ctx context.Context, a Animal) error
	// CreateMany inserta todo o nada.
	CreateMany(ctx context.Context, as []Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	ListAlive(ctx context.Context, filter ListFilter) ([]Animal, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter aplica sobre animales vivos. Campos nil = sin filtro.
type ListFilter struct {
	Stage  *lifecycle.Stage
	MinAge *float64
	MaxAge *float64
}

// Matches evalúa el filtro en memoria (adapters sin SQL).
func (f ListFilter) Matches(a Animal) bool {
	if f.Stage != nil && a.Stage != *f.Stage {
		return false
	}
	if f.MinAge != nil && a.AgeMonths < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && a.AgeMonths > *f.MaxAge {
		return false
	}
	return true
}
