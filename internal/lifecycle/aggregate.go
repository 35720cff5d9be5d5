package lifecycle

import (
	"math"
	"slices"
)

// StageStats es el resumen estadístico de una etapa.
type StageStats struct {
	Stage   Stage `json:"stage"`
	Total   int   `json:"total"`
	Females int   `json:"females"`
	Males   int   `json:"males"`

	AvgAgeMonths float64 `json:"avg_age_months"`
	MinAgeMonths float64 `json:"min_age_months"`
	MaxAgeMonths float64 `json:"max_age_months"`

	// WithWeight cuenta los animales con peso conocido; solo ellos entran en los pesos.
	WithWeight int      `json:"with_weight"`
	AvgWeight  *float64 `json:"avg_weight"`
	MinWeight  *float64 `json:"min_weight"`
	MaxWeight  *float64 `json:"max_weight"`
}

// Totals se pliega desde los buckets por etapa, nunca desde el lote crudo.
type Totals struct {
	Animals int `json:"animals"`
	Females int `json:"females"`
	Males   int `json:"males"`
}

type StageSummary struct {
	ByStage []StageStats `json:"by_stage"`
	Totals  Totals       `json:"totals"`
}

// WeightStats es la vista "comparativa de pesos" del mismo resumen.
type WeightStats struct {
	Stage      Stage    `json:"stage"`
	AvgWeight  *float64 `json:"avg_weight"`
	MinWeight  *float64 `json:"min_weight"`
	MaxWeight  *float64 `json:"max_weight"`
	WithWeight int      `json:"with_weight"`
}

type stageAcc struct {
	stats     StageStats
	ageSum    float64
	weightSum float64
}

// SummarizeByStage agrupa por etapa y calcula conteos, edades y pesos.
// Promedios y pesos se redondean a dos decimales.
func SummarizeByStage[T AgeAndStageProvider](items []T) StageSummary {
	accs := map[Stage]*stageAcc{}
	for _, it := range items {
		st := it.LifeStage()
		acc, ok := accs[st]
		if !ok {
			acc = &stageAcc{stats: StageStats{Stage: st}}
			accs[st] = acc
		}
		acc.add(it)
	}

	out := make([]StageStats, 0, len(accs))
	for _, acc := range accs {
		out = append(out, acc.finish())
	}
	slices.SortFunc(out, func(a, b StageStats) int { return CompareStages(a.Stage, b.Stage) })

	return StageSummary{ByStage: out, Totals: foldTotals(out)}
}

func foldTotals(stats []StageStats) Totals {
	var t Totals
	for _, s := range stats {
		t.Animals += s.Total
		t.Females += s.Females
		t.Males += s.Males
	}
	return t
}

// Weights proyecta el resumen a la comparativa de pesos.
func (s StageSummary) Weights() []WeightStats {
	out := make([]WeightStats, 0, len(s.ByStage))
	for _, st := range s.ByStage {
		out = append(out, WeightStats{
			Stage:      st.Stage,
			AvgWeight:  st.AvgWeight,
			MinWeight:  st.MinWeight,
			MaxWeight:  st.MaxWeight,
			WithWeight: st.WithWeight,
		})
	}
	return out
}

func (a *stageAcc) add(it AgeAndStageProvider) {
	s := &a.stats
	age := it.AgeInMonths()

	if s.Total == 0 || age < s.MinAgeMonths {
		s.MinAgeMonths = age
	}
	if s.Total == 0 || age > s.MaxAgeMonths {
		s.MaxAgeMonths = age
	}
	s.Total++
	a.ageSum += age

	switch it.AnimalSex() {
	case SexFemale:
		s.Females++
	case SexMale:
		s.Males++
	}

	kg, ok := it.LastWeight()
	if !ok {
		return
	}
	if s.WithWeight == 0 || kg < *s.MinWeight {
		s.MinWeight = ptr(kg)
	}
	if s.WithWeight == 0 || kg > *s.MaxWeight {
		s.MaxWeight = ptr(kg)
	}
	s.WithWeight++
	a.weightSum += kg
}

func (a *stageAcc) finish() StageStats {
	s := a.stats
	if s.Total > 0 {
		s.AvgAgeMonths = round2(a.ageSum / float64(s.Total))
	}
	if s.WithWeight > 0 {
		s.AvgWeight = ptr(round2(a.weightSum / float64(s.WithWeight)))
		s.MinWeight = ptr(round2(*s.MinWeight))
		s.MaxWeight = ptr(round2(*s.MaxWeight))
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr[T any](v T) *T { return &v }
