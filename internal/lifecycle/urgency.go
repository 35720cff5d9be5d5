package lifecycle

import (
	"slices"
	"time"
)

// Urgency clasifica una próxima dosis respecto de "hoy". No se persiste.
type Urgency string

const (
	UrgencyUndated  Urgency = "undated"
	UrgencyOnTime   Urgency = "on_time"
	UrgencyUpcoming Urgency = "upcoming"
	UrgencyUrgent   Urgency = "urgent"
)

// UpcomingWindowDays es la ventana (inclusiva) en la que una dosis cuenta como próxima.
const UpcomingWindowDays = 30

// Urgencies devuelve las categorías en orden de severidad, con Undated al final.
func Urgencies() []Urgency {
	return []Urgency{UrgencyUrgent, UrgencyUpcoming, UrgencyOnTime, UrgencyUndated}
}

// Severity: menor es más grave.
func (u Urgency) Severity() int {
	switch u {
	case UrgencyUrgent:
		return 1
	case UrgencyUpcoming:
		return 2
	case UrgencyOnTime:
		return 3
	default:
		return 4
	}
}

// Classify aplica las reglas en orden; la primera que coincide gana.
// Las fechas se comparan por día calendario.
func Classify(next *time.Time, today time.Time) Urgency {
	if next == nil {
		return UrgencyUndated
	}
	d := civilDate(*next)
	t := civilDate(today)
	switch {
	case !d.After(t):
		return UrgencyUrgent
	case !d.After(t.AddDate(0, 0, UpcomingWindowDays)):
		return UrgencyUpcoming
	default:
		return UrgencyOnTime
	}
}

// DaysOverdue es hoy - próxima dosis en días; negativo si aún no vence.
// Sin fecha devuelve ok=false.
func DaysOverdue(next *time.Time, today time.Time) (int, bool) {
	if next == nil {
		return 0, false
	}
	diff := civilDate(today).Sub(civilDate(*next))
	return int(diff.Hours() / 24), true
}

// civilDate descarta hora y zona: solo importa el día del calendario del valor.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClockIn devuelve un reloj cuyo día calendario es el de loc.
// Con loc nil usa la zona local del proceso.
func ClockIn(loc *time.Location) func() time.Time {
	if loc == nil {
		return time.Now
	}
	return func() time.Time { return time.Now().In(loc) }
}

// DoseScheduled es cualquier registro con una próxima dosis opcional.
type DoseScheduled interface {
	NextDose() *time.Time
}

// UrgencyBuckets particiona un lote: cada registro cae en exactamente un bucket.
type UrgencyBuckets[T DoseScheduled] struct {
	Urgent   []T
	Upcoming []T
	OnTime   []T
	Undated  []T
}

// GroupByUrgency clasifica el lote con un único "today".
// Dentro de cada bucket el orden es por próxima dosis ascendente, sin fecha al final.
func GroupByUrgency[T DoseScheduled](items []T, today time.Time) UrgencyBuckets[T] {
	sorted := slices.Clone(items)
	SortByNextDose(sorted)

	b := UrgencyBuckets[T]{
		Urgent:   []T{},
		Upcoming: []T{},
		OnTime:   []T{},
		Undated:  []T{},
	}
	for _, it := range sorted {
		switch Classify(it.NextDose(), today) {
		case UrgencyUrgent:
			b.Urgent = append(b.Urgent, it)
		case UrgencyUpcoming:
			b.Upcoming = append(b.Upcoming, it)
		case UrgencyOnTime:
			b.OnTime = append(b.OnTime, it)
		default:
			b.Undated = append(b.Undated, it)
		}
	}
	return b
}

// BySeverity concatena Urgent, Upcoming y OnTime. Undated queda fuera.
func (b UrgencyBuckets[T]) BySeverity() []T {
	out := make([]T, 0, len(b.Urgent)+len(b.Upcoming)+len(b.OnTime))
	out = append(out, b.Urgent...)
	out = append(out, b.Upcoming...)
	out = append(out, b.OnTime...)
	return out
}

// Counts devuelve el tamaño de cada bucket.
func (b UrgencyBuckets[T]) Counts() map[Urgency]int {
	return map[Urgency]int{
		UrgencyUrgent:   len(b.Urgent),
		UrgencyUpcoming: len(b.Upcoming),
		UrgencyOnTime:   len(b.OnTime),
		UrgencyUndated:  len(b.Undated),
	}
}

// Len es el total de registros particionados.
func (b UrgencyBuckets[T]) Len() int {
	return len(b.Urgent) + len(b.Upcoming) + len(b.OnTime) + len(b.Undated)
}

// SortByNextDose: ascendente por día, registros sin fecha al final (NULLS LAST).
func SortByNextDose[T DoseScheduled](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		na, nb := a.NextDose(), b.NextDose()
		switch {
		case na == nil && nb == nil:
			return 0
		case na == nil:
			return 1
		case nb == nil:
			return -1
		}
		return civilDate(*na).Compare(civilDate(*nb))
	})
}
