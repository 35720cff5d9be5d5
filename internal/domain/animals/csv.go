package animals

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// csvColumns es el orden de la plantilla descargable.
var csvColumns = []string{
	"codigo_animal",
	"arete_numero",
	"chip_rfid",
	"alias",
	"sexo",
	"fecha_nacimiento",
	"raza",
	"color",
	"peso_inicial",
	"estado",
	"fecha_baja",
	"motivo_baja",
	"lugar_nacimiento",
	"procedencia",
}

var csvSampleRows = [][]string{
	{"BOV001", "ARETE-001", "RFID-12345", "Manchita", "H", "2023-01-15", "Holstein", "Blanco con negro", "450.5", "VIVO", "", "", "Finca Los Alpes", "Nacido en finca"},
	{"BOV002", "ARETE-002", "", "Torito", "M", "2023-03-20", "Brahman", "Gris", "500", "VIVO", "", "", "Finca Santa Rosa", "Comprado"},
}

// WriteTemplate escribe la plantilla CSV con BOM para que Excel respete UTF-8.
func WriteTemplate(w io.Writer) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	if err := cw.WriteAll(csvSampleRows); err != nil {
		return err
	}
	return cw.Error()
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Registered int        `json:"registered"`
	Total      int        `json:"total"`
	Errors     []RowError `json:"errors"`
}

// ImportCSV inserta fila por fila; las filas con error se reportan y no detienen el resto.
// Row cuenta desde 2 (la fila 1 es el encabezado).
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ImportResult{}, fmt.Errorf("%w: empty csv", ErrInvalidInput)
		}
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	index := headerIndex(header)
	for _, col := range []string{"codigo_animal", "alias", "sexo", "fecha_nacimiento", "peso_inicial"} {
		if _, ok := index[col]; !ok {
			return ImportResult{}, fmt.Errorf("%w: missing column %s", ErrInvalidInput, col)
		}
	}

	res := ImportResult{Errors: []RowError{}}
	row := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: row %d: %v", ErrInvalidInput, row, err)
		}
		if isBlank(rec) {
			continue
		}
		res.Total++

		in, err := inputFromRecord(rec, index)
		if err == nil {
			_, err = s.Create(ctx, in)
		}
		if err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				return res, err
			}
			res.Errors = append(res.Errors, RowError{Row: row, Error: err.Error()})
			continue
		}
		res.Registered++
	}

	s.logger.Info("csv import finished",
		zap.Int("registered", res.Registered),
		zap.Int("total", res.Total),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}

func headerIndex(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		out[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return out
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func inputFromRecord(rec []string, index map[string]int) (CreateInput, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	in := CreateInput{
		Code:            get("codigo_animal"),
		EarTag:          get("arete_numero"),
		RFID:            get("chip_rfid"),
		Alias:           get("alias"),
		Sex:             get("sexo"),
		Breed:           get("raza"),
		Color:           get("color"),
		Status:          get("estado"),
		DischargeReason: get("motivo_baja"),
		BirthPlace:      get("lugar_nacimiento"),
		Origin:          get("procedencia"),
	}

	if v := get("fecha_nacimiento"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return CreateInput{}, fmt.Errorf("%w: fecha_nacimiento must be YYYY-MM-DD", ErrInvalidInput)
		}
		in.BirthDate = &t
	}
	if v := get("fecha_baja"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return CreateInput{}, fmt.Errorf("%w: fecha_baja must be YYYY-MM-DD", ErrInvalidInput)
		}
		in.DischargeDate = &t
	}
	if v := get("peso_inicial"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return CreateInput{}, fmt.Errorf("%w: peso_inicial must be a number", ErrInvalidInput)
		}
		in.InitialWeightKg = &w
	}
	return in, nil
}
