package lifecycle

import (
	"cmp"
	"slices"
)

// Transition describe el próximo cambio de etapa de un animal.
type Transition struct {
	Current Stage `json:"current_stage"`
	Next    Stage `json:"next_stage"`
	// MonthsRemaining es nil cuando no hay transición. No se recorta a cero:
	// un valor negativo indica que la etiqueta aún no se actualizó en la fuente.
	MonthsRemaining *float64 `json:"months_remaining"`
}

// Umbrales en meses al final de cada etapa no terminal.
const (
	lactanteEndsAt    = 3
	criaEndsAt        = 6
	crecimientoEndsAt = 12
)

// Predict calcula la siguiente etapa y los meses que faltan.
func Predict(stage Stage, sex Sex, ageMonths float64) Transition {
	t := Transition{Current: stage, Next: StageNone}

	var threshold float64
	switch stage {
	case StageLactante:
		threshold, t.Next = lactanteEndsAt, StageCria
	case StageCria:
		threshold, t.Next = criaEndsAt, StageCrecimiento
	case StageCrecimiento:
		threshold = crecimientoEndsAt
		switch sex {
		case SexFemale:
			t.Next = StageVaca
		case SexMale:
			t.Next = StageToro
		}
	default:
		return t
	}

	remaining := threshold - ageMonths
	t.MonthsRemaining = &remaining
	return t
}

// StageChange acompaña un registro con su transición prevista.
type StageChange[T AgeAndStageProvider] struct {
	Item       T
	Transition Transition
}

// PlanTransitions filtra los animales en etapas no terminales y los ordena
// por meses restantes ascendente (nil al final), desempatando por etapa.
func PlanTransitions[T AgeAndStageProvider](items []T) []StageChange[T] {
	out := make([]StageChange[T], 0, len(items))
	for _, it := range items {
		st := it.LifeStage()
		if !st.IsValid() || st.IsTerminal() {
			continue
		}
		out = append(out, StageChange[T]{
			Item:       it,
			Transition: Predict(st, it.AnimalSex(), it.AgeInMonths()),
		})
	}

	slices.SortStableFunc(out, func(a, b StageChange[T]) int {
		if c := compareRemaining(a.Transition.MonthsRemaining, b.Transition.MonthsRemaining); c != 0 {
			return c
		}
		return CompareStages(a.Transition.Current, b.Transition.Current)
	})
	return out
}

func compareRemaining(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}
