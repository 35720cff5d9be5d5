package vaccines

import (
	"time"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/lifecycle"
)

type Vaccine struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Application es una vacuna aplicada a un animal.
// Los campos Animal* y Vaccine* son de solo lectura: los completa la fuente al listar.
type Application struct {
	ID        string
	AnimalID  string
	VaccineID string

	AppliedOn  time.Time
	NextDoseOn *time.Time

	CreatedAt time.Time

	AnimalCode         string
	AnimalAlias        string
	AnimalStatus       animals.Status
	VaccineName        string
	VaccineDescription string
}

func (a Application) NextDose() *time.Time { return a.NextDoseOn }

var _ lifecycle.DoseScheduled = Application{}

// Classified es una aplicación con su urgencia calculada para un día dado.
type Classified struct {
	Application
	Urgency lifecycle.Urgency
	// DaysOverdue es nil cuando no hay próxima dosis.
	DaysOverdue *int
}

// Semaphore agrupa las aplicaciones de animales vivos por urgencia.
type Semaphore struct {
	Today   time.Time
	Buckets lifecycle.UrgencyBuckets[Application]
}
