package animals

import (
	"time"

	"livestock-records/internal/lifecycle"
)

// Status define el estado de vida del animal.
// @Enum VIVO, MUERTO
type Status string

const (
	StatusAlive    Status = "VIVO"
	StatusDeceased Status = "MUERTO"
)

func (s Status) IsValid() bool {
	return s == StatusAlive || s == StatusDeceased
}

// Animal es el registro de un bovino tal como lo entrega la fuente de datos.
// Stage, AgeMonths y LastWeightKg vienen calculados (vista_animal_completa);
// este servicio nunca los recalcula.
type Animal struct {
	ID   string
	Code string // codigo_animal, único

	EarTag string
	RFID   string
	Alias  string

	Sex       lifecycle.Sex
	BirthDate time.Time
	Breed     string
	Color     string

	InitialWeightKg float64
	Status          Status

	DischargeDate   *time.Time
	DischargeReason string

	MotherID *string
	FatherID *string

	BirthPlace string
	Origin     string
	FarmID     *string
	FarmName   string

	// Derivados por la fuente
	Stage        lifecycle.Stage
	AgeMonths    float64
	LastWeightKg *float64

	CreatedAt time.Time
}

func (a Animal) LifeStage() lifecycle.Stage { return a.Stage }
func (a Animal) AgeInMonths() float64       { return a.AgeMonths }
func (a Animal) AnimalSex() lifecycle.Sex   { return a.Sex }

func (a Animal) LastWeight() (float64, bool) {
	if a.LastWeightKg == nil {
		return 0, false
	}
	return *a.LastWeightKg, true
}

func (a Animal) IsAlive() bool { return a.Status == StatusAlive }

var _ lifecycle.AgeAndStageProvider = Animal{}
