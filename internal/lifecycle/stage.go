// Package lifecycle deriva estados operativos a partir de registros fechados:
// urgencia de vacunación, próximos cambios de etapa y resúmenes por etapa.
// Todas las funciones son puras; "hoy" siempre llega como parámetro.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// Stage es la etapa de vida de un animal, calculada fuera del motor (vista de la BD).
type Stage string

const (
	StageLactante    Stage = "Lactante"
	StageCria        Stage = "Cría"
	StageCrecimiento Stage = "Crecimiento"
	StageVaca        Stage = "Vaca"
	StageToro        Stage = "Toro"

	// StageNone se usa como "próxima etapa" cuando no hay transición.
	StageNone Stage = "N/A"
)

// unknownRank ordena al final cualquier etiqueta fuera del catálogo.
const unknownRank = 6

var ErrUnknownStage = errors.New("unknown stage")

// Stages devuelve el catálogo canónico en orden.
func Stages() []Stage {
	return []Stage{StageLactante, StageCria, StageCrecimiento, StageVaca, StageToro}
}

func (s Stage) String() string { return string(s) }

// IsValid indica si la etapa pertenece al catálogo canónico.
func (s Stage) IsValid() bool {
	switch s {
	case StageLactante, StageCria, StageCrecimiento, StageVaca, StageToro:
		return true
	default:
		return false
	}
}

// IsTerminal: Vaca y Toro no tienen transición siguiente.
func (s Stage) IsTerminal() bool {
	return s == StageVaca || s == StageToro
}

// Rank: Lactante=1 … Toro=5, desconocida=6.
func (s Stage) Rank() int {
	switch s {
	case StageLactante:
		return 1
	case StageCria:
		return 2
	case StageCrecimiento:
		return 3
	case StageVaca:
		return 4
	case StageToro:
		return 5
	default:
		return unknownRank
	}
}

// ParseStage acepta solo las cinco etiquetas canónicas (con espacios recortados).
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.TrimSpace(s))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}
	return st, nil
}

// Sex del animal tal como se guarda en la BD.
type Sex string

const (
	SexFemale Sex = "H"
	SexMale   Sex = "M"
)

func (s Sex) IsValid() bool {
	return s == SexFemale || s == SexMale
}

// ParseSex normaliza "h"/"m" y los nombres largos.
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H", "HEMBRA", "F", "FEMALE":
		return SexFemale, nil
	case "M", "MACHO", "MALE":
		return SexMale, nil
	default:
		return "", fmt.Errorf("invalid sex %q", s)
	}
}
