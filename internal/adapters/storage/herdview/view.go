// Package herdview completa los campos derivados (edad en meses y etapa) en los
// adapters que no tienen la vista vista_animal_completa de Postgres.
// Replica la misma regla que la vista; el motor de clasificación nunca la usa.
package herdview

import (
	"math"
	"time"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/lifecycle"
)

// Complete deja intacto un animal que ya trae etapa.
func Complete(a animals.Animal, today time.Time) animals.Animal {
	if a.Stage != "" || a.BirthDate.IsZero() {
		return a
	}
	months, whole := AgeInMonths(a.BirthDate, today)
	a.AgeMonths = months
	switch {
	case whole < 3:
		a.Stage = lifecycle.StageLactante
	case whole < 6:
		a.Stage = lifecycle.StageCria
	case whole < 12:
		a.Stage = lifecycle.StageCrecimiento
	case a.Sex == lifecycle.SexFemale:
		a.Stage = lifecycle.StageVaca
	default:
		a.Stage = lifecycle.StageToro
	}
	return a
}

// AgeInMonths devuelve la edad en meses con dos decimales (días/30) y los meses completos.
func AgeInMonths(birth, today time.Time) (float64, int) {
	y1, m1, d1 := birth.Date()
	y2, m2, d2 := today.Date()

	months := (y2-y1)*12 + int(m2-m1)
	days := d2 - d1
	if days < 0 {
		months--
		// días del mes anterior a "today"
		days += time.Date(y2, m2, 0, 0, 0, 0, 0, time.UTC).Day()
	}
	if months < 0 {
		return 0, 0
	}
	return math.Round((float64(months)+float64(days)/30)*100) / 100, months
}
