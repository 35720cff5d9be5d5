package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"livestock-records/internal/lifecycle"

	"github.com/go-chi/chi/v5"
)

// maxImportSize limita el CSV subido (10 MB).
const maxImportSize = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/total", countAnimalsHandler(svc))

		// Carga masiva: JSON (todo o nada) o CSV (fila por fila)
		ar.Post("/bulk", bulkCreateHandler(svc))
		ar.Get("/import/template", importTemplateHandler())
		ar.Post("/import", importCSVHandler(svc))
	})

	r.Route("/stages", func(sr chi.Router) {
		sr.Get("/", rankedHandler(svc))
		sr.Get("/catalog", stageCatalogHandler(svc))
		sr.Get("/stats", stageStatsHandler(svc))
		sr.Get("/transitions", transitionsHandler(svc))
		sr.Get("/weights", weightsHandler(svc))
		sr.Get("/age-range", ageRangeHandler(svc))
		sr.Get("/{stage}", byStageHandler(svc))
	})
}

// createAnimalRequest es el cuerpo para registrar un animal. Fechas en YYYY-MM-DD.
type createAnimalRequest struct {
	Code            string   `json:"code"`
	EarTag          string   `json:"ear_tag"`
	RFID            string   `json:"rfid"`
	Alias           string   `json:"alias"`
	Sex             string   `json:"sex" enums:"H,M"`
	BirthDate       string   `json:"birth_date"`
	Breed           string   `json:"breed"`
	Color           string   `json:"color"`
	InitialWeightKg *float64 `json:"initial_weight_kg"`
	Status          string   `json:"status" enums:"VIVO,MUERTO"` // opcional, VIVO por defecto
	DischargeDate   string   `json:"discharge_date"`             // opcional
	DischargeReason string   `json:"discharge_reason"`
	MotherID        *string  `json:"mother_id"`
	FatherID        *string  `json:"father_id"`
	BirthPlace      string   `json:"birth_place"`
	Origin          string   `json:"origin"`
	FarmID          *string  `json:"farm_id"`
}

// AnimalResponse es la vista pública de un animal, con sus campos derivados.
// También la usa la ficha del animal (records).
type AnimalResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	EarTag          string          `json:"ear_tag,omitempty"`
	RFID            string          `json:"rfid,omitempty"`
	Alias           string          `json:"alias"`
	Sex             lifecycle.Sex   `json:"sex"`
	BirthDate       string          `json:"birth_date"`
	Breed           string          `json:"breed,omitempty"`
	Color           string          `json:"color,omitempty"`
	InitialWeightKg float64         `json:"initial_weight_kg"`
	Status          Status          `json:"status"`
	DischargeDate   *string         `json:"discharge_date,omitempty"`
	DischargeReason string          `json:"discharge_reason,omitempty"`
	MotherID        *string         `json:"mother_id,omitempty"`
	FatherID        *string         `json:"father_id,omitempty"`
	BirthPlace      string          `json:"birth_place,omitempty"`
	Origin          string          `json:"origin,omitempty"`
	FarmID          *string         `json:"farm_id,omitempty"`
	FarmName        string          `json:"farm_name,omitempty"`
	Stage           lifecycle.Stage `json:"stage,omitempty"`
	AgeMonths       float64         `json:"age_months"`
	LastWeightKg    *float64        `json:"last_weight_kg,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type transitionResponse struct {
	Animal          AnimalResponse  `json:"animal"`
	CurrentStage    lifecycle.Stage `json:"current_stage"`
	NextStage       lifecycle.Stage `json:"next_stage"`
	MonthsRemaining *float64        `json:"months_remaining"`
}

type stageStatsResponse struct {
	ByStage []lifecycle.StageStats `json:"by_stage"`
	Totals  lifecycle.Totals       `json:"totals"`
}

type invalidStageResponse struct {
	Message     string            `json:"message"`
	ValidStages []lifecycle.Stage `json:"valid_stages"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Registra un bovino. Código, alias, sexo, fecha de nacimiento y peso inicial son obligatorios.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} AnimalResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 409 {string} string "código duplicado"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Tags animals
// @Produce json
// @Success 200 {array} AnimalResponse
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// countAnimalsHandler godoc
// @Summary Total de animales registrados
// @Tags animals
// @Produce json
// @Success 200 {object} map[string]int
// @Router /animals/total [get]
func countAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"total": n})
	}
}

// bulkCreateHandler godoc
// @Summary Registro masivo de animales
// @Description Inserta todos los animales o ninguno.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body []createAnimalRequest true "Lote de animales"
// @Success 201 {array} AnimalResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 409 {string} string "código duplicado"
// @Router /animals/bulk [post]
func bulkCreateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ins := make([]CreateInput, 0, len(reqs))
		for i, req := range reqs {
			in, err := req.toInput()
			if err != nil {
				http.Error(w, "item "+strconv.Itoa(i)+": "+err.Error(), http.StatusBadRequest)
				return
			}
			ins = append(ins, in)
		}

		items, err := svc.CreateMany(r.Context(), ins)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponses(items))
	}
}

// importTemplateHandler godoc
// @Summary Descargar plantilla CSV
// @Tags animals
// @Produce text/csv
// @Success 200 {string} string "plantilla"
// @Router /animals/import/template [get]
func importTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="plantilla_animales.csv"`)
		w.WriteHeader(http.StatusOK)
		_ = WriteTemplate(w)
	}
}

// importCSVHandler godoc
// @Summary Importar animales desde CSV
// @Description Procesa fila por fila; las filas inválidas se reportan con su número (desde 2).
// @Tags animals
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Archivo CSV"
// @Success 200 {object} ImportResult
// @Failure 400 {string} string "archivo ausente o inválido"
// @Router /animals/import [post]
func importCSVHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			http.Error(w, "multipart form required", http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		if !strings.HasSuffix(strings.ToLower(hdr.Filename), ".csv") {
			http.Error(w, "file must be a .csv", http.StatusBadRequest)
			return
		}

		res, err := svc.ImportCSV(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// rankedHandler godoc
// @Summary Animales vivos por etapa
// @Description Orden canónico de etapas y, dentro de cada etapa, mayor edad primero.
// @Tags stages
// @Produce json
// @Success 200 {array} AnimalResponse
// @Router /stages [get]
func rankedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Ranked(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// stageCatalogHandler godoc
// @Summary Etapas presentes en el hato
// @Tags stages
// @Produce json
// @Success 200 {array} string
// @Router /stages/catalog [get]
func stageCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stages, err := svc.Catalog(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stages)
	}
}

// stageStatsHandler godoc
// @Summary Estadísticas por etapa
// @Tags stages
// @Produce json
// @Success 200 {object} stageStatsResponse
// @Router /stages/stats [get]
func stageStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stageStatsResponse{
			ByStage: summary.ByStage,
			Totals:  summary.Totals,
		})
	}
}

// transitionsHandler godoc
// @Summary Próximos cambios de etapa
// @Description Solo Lactante, Cría y Crecimiento; menos meses restantes primero.
// @Tags stages
// @Produce json
// @Success 200 {array} transitionResponse
// @Router /stages/transitions [get]
func transitionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, err := svc.Transitions(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]transitionResponse, 0, len(plan))
		for _, c := range plan {
			out = append(out, transitionResponse{
				Animal:          ToAnimalResponse(c.Item),
				CurrentStage:    c.Transition.Current,
				NextStage:       c.Transition.Next,
				MonthsRemaining: c.Transition.MonthsRemaining,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// weightsHandler godoc
// @Summary Comparativo de pesos por etapa
// @Tags stages
// @Produce json
// @Success 200 {array} lifecycle.WeightStats
// @Router /stages/weights [get]
func weightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := svc.Weights(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ws)
	}
}

// ageRangeHandler godoc
// @Summary Animales vivos por rango de edad (meses)
// @Tags stages
// @Produce json
// @Param min_age query int true "Edad mínima en meses"
// @Param max_age query int true "Edad máxima en meses"
// @Success 200 {array} AnimalResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Router /stages/age-range [get]
func ageRangeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		minRaw, maxRaw := strings.TrimSpace(q.Get("min_age")), strings.TrimSpace(q.Get("max_age"))
		if minRaw == "" || maxRaw == "" {
			http.Error(w, "min_age and max_age are required", http.StatusBadRequest)
			return
		}
		minAge, err := strconv.Atoi(minRaw)
		if err != nil {
			http.Error(w, "min_age must be an integer", http.StatusBadRequest)
			return
		}
		maxAge, err := strconv.Atoi(maxRaw)
		if err != nil {
			http.Error(w, "max_age must be an integer", http.StatusBadRequest)
			return
		}

		items, err := svc.ByAgeRange(r.Context(), minAge, maxAge)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// byStageHandler godoc
// @Summary Animales vivos de una etapa
// @Tags stages
// @Produce json
// @Param stage path string true "Etapa" Enums(Lactante, Cría, Crecimiento, Vaca, Toro)
// @Success 200 {array} AnimalResponse
// @Failure 400 {object} invalidStageResponse
// @Router /stages/{stage} [get]
func byStageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stage := chi.URLParam(r, "stage")
		if v, err := url.PathUnescape(stage); err == nil {
			stage = v
		}

		items, err := svc.ByStage(r.Context(), stage)
		if err != nil {
			if errors.Is(err, lifecycle.ErrUnknownStage) || errors.Is(err, ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, invalidStageResponse{
					Message:     "invalid stage: " + stage,
					ValidStages: lifecycle.Stages(),
				})
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

func (req createAnimalRequest) toInput() (CreateInput, error) {
	in := CreateInput{
		Code:            req.Code,
		EarTag:          req.EarTag,
		RFID:            req.RFID,
		Alias:           req.Alias,
		Sex:             req.Sex,
		Breed:           req.Breed,
		Color:           req.Color,
		InitialWeightKg: req.InitialWeightKg,
		Status:          req.Status,
		DischargeReason: req.DischargeReason,
		MotherID:        req.MotherID,
		FatherID:        req.FatherID,
		BirthPlace:      req.BirthPlace,
		Origin:          req.Origin,
		FarmID:          req.FarmID,
	}

	if strings.TrimSpace(req.BirthDate) != "" {
		t, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			return CreateInput{}, errors.New("birth_date must be YYYY-MM-DD")
		}
		in.BirthDate = &t
	}
	if strings.TrimSpace(req.DischargeDate) != "" {
		t, err := time.Parse(dateLayout, req.DischargeDate)
		if err != nil {
			return CreateInput{}, errors.New("discharge_date must be YYYY-MM-DD")
		}
		in.DischargeDate = &t
	}
	return in, nil
}

func ToAnimalResponse(a Animal) AnimalResponse {
	out := AnimalResponse{
		ID:              a.ID,
		Code:            a.Code,
		EarTag:          a.EarTag,
		RFID:            a.RFID,
		Alias:           a.Alias,
		Sex:             a.Sex,
		BirthDate:       a.BirthDate.Format(dateLayout),
		Breed:           a.Breed,
		Color:           a.Color,
		InitialWeightKg: a.InitialWeightKg,
		Status:          a.Status,
		DischargeReason: a.DischargeReason,
		MotherID:        a.MotherID,
		FatherID:        a.FatherID,
		BirthPlace:      a.BirthPlace,
		Origin:          a.Origin,
		FarmID:          a.FarmID,
		FarmName:        a.FarmName,
		Stage:           a.Stage,
		AgeMonths:       a.AgeMonths,
		LastWeightKg:    a.LastWeightKg,
		CreatedAt:       a.CreatedAt,
	}
	if a.DischargeDate != nil {
		d := a.DischargeDate.Format(dateLayout)
		out.DischargeDate = &d
	}
	return out
}

func toAnimalResponses(items []Animal) []AnimalResponse {
	out := make([]AnimalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ToAnimalResponse(a))
	}
	return out
}

// writeError traduce errores de dominio a HTTP. Los de la fuente no exponen detalle.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicateCode):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
