package lifecycle

import (
	"cmp"
	"slices"
)

// AgeAndStageProvider expone los valores derivados que entrega la fuente de datos.
// El motor nunca los recalcula.
type AgeAndStageProvider interface {
	LifeStage() Stage
	AgeInMonths() float64
	AnimalSex() Sex
	// LastWeight devuelve el último peso conocido; ok=false si no hay pesaje.
	LastWeight() (kg float64, ok bool)
}

// CompareStages es el único comparador de etapas. Todas las consultas que ordenan
// o agrupan por etapa pasan por aquí.
func CompareStages(a, b Stage) int {
	if c := cmp.Compare(a.Rank(), b.Rank()); c != 0 {
		return c
	}
	// Dos etiquetas desconocidas: orden alfabético para que la salida sea estable.
	if a.Rank() == unknownRank {
		return cmp.Compare(a, b)
	}
	return 0
}

// SortByStage ordena in-place por etapa y desempata con tie (puede ser nil).
func SortByStage[T AgeAndStageProvider](items []T, tie func(a, b T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := CompareStages(a.LifeStage(), b.LifeStage()); c != 0 {
			return c
		}
		if tie == nil {
			return 0
		}
		return tie(a, b)
	})
}

// ByAgeDesc es el desempate de los listados: mayor edad primero.
func ByAgeDesc[T AgeAndStageProvider](a, b T) int {
	return cmp.Compare(b.AgeInMonths(), a.AgeInMonths())
}

// SortByAgeDesc ordena listados de una sola etapa o de un rango de edad.
func SortByAgeDesc[T AgeAndStageProvider](items []T) {
	slices.SortStableFunc(items, ByAgeDesc[T])
}

// StageCatalog devuelve las etapas distintas presentes, en orden canónico.
func StageCatalog[T AgeAndStageProvider](items []T) []Stage {
	seen := map[Stage]struct{}{}
	out := make([]Stage, 0, len(Stages()))
	for _, it := range items {
		st := it.LifeStage()
		if _, ok := seen[st]; ok {
			continue
		}
		seen[st] = struct{}{}
		out = append(out, st)
	}
	slices.SortStableFunc(out, CompareStages)
	return out
}
