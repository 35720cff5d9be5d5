package vaccines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/lifecycle"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vaccines", func(vr chi.Router) {
		vr.Get("/catalog", listCatalogHandler(svc))
		vr.Post("/catalog", createVaccineHandler(svc))

		vr.Route("/applications", func(ar chi.Router) {
			ar.Post("/", applyVaccineHandler(svc))
			ar.Get("/", listApplicationsHandler(svc))

			// Semáforo y urgentes: solo animales vivos
			ar.Get("/semaphore", semaphoreHandler(svc))
			ar.Get("/urgent", urgentHandler(svc))
			ar.Get("/animal/{animalID}", listByAnimalHandler(svc))

			ar.Put("/{applicationID}/next-dose", updateNextDoseHandler(svc))
			ar.Put("/{applicationID}", updateApplicationHandler(svc))
			ar.Delete("/{applicationID}", deleteApplicationHandler(svc))
		})
	})
}

type createVaccineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type vaccineResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// applyVaccineRequest registra una vacuna aplicada. Fechas en YYYY-MM-DD.
type applyVaccineRequest struct {
	AnimalID   string `json:"animal_id"`
	VaccineID  string `json:"vaccine_id"`
	AppliedOn  string `json:"applied_on"`
	NextDoseOn string `json:"next_dose_on"` // opcional
}

type updateNextDoseRequest struct {
	NextDoseOn string `json:"next_dose_on"`
}

type updateApplicationRequest struct {
	AppliedOn  string `json:"applied_on"`
	NextDoseOn string `json:"next_dose_on"`
}

// ApplicationResponse es una aplicación con sus datos de animal y vacuna.
// Urgency y DaysOverdue solo vienen en los listados clasificados.
type ApplicationResponse struct {
	ID                 string            `json:"id"`
	AnimalID           string            `json:"animal_id"`
	AnimalCode         string            `json:"animal_code,omitempty"`
	AnimalAlias        string            `json:"animal_alias,omitempty"`
	AnimalStatus       animals.Status    `json:"animal_status,omitempty"`
	VaccineID          string            `json:"vaccine_id"`
	VaccineName        string            `json:"vaccine_name,omitempty"`
	VaccineDescription string            `json:"vaccine_description,omitempty"`
	AppliedOn          string            `json:"applied_on"`
	NextDoseOn         *string           `json:"next_dose_on"`
	Urgency            lifecycle.Urgency `json:"urgency,omitempty" enums:"undated,on_time,upcoming,urgent"`
	DaysOverdue        *int              `json:"days_overdue,omitempty"`
}

type semaphoreResponse struct {
	Today    string                `json:"today"`
	Urgent   []ApplicationResponse `json:"urgent"`
	Upcoming []ApplicationResponse `json:"upcoming"`
	OnTime   []ApplicationResponse `json:"on_time"`
	Undated  []ApplicationResponse `json:"undated"`
	Counts   map[string]int        `json:"counts"`
}

// listCatalogHandler godoc
// @Summary Catálogo de vacunas
// @Tags vaccines
// @Produce json
// @Success 200 {array} vaccineResponse
// @Router /vaccines/catalog [get]
func listCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Catalog(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]vaccineResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccineResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createVaccineHandler godoc
// @Summary Agregar vacuna al catálogo
// @Tags vaccines
// @Accept json
// @Produce json
// @Param payload body createVaccineRequest true "Vacuna; name obligatorio"
// @Success 201 {object} vaccineResponse
// @Failure 400 {string} string "invalid json / name requerido"
// @Router /vaccines/catalog [post]
func createVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		v, err := svc.CreateVaccine(r.Context(), req.Name, req.Description)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toVaccineResponse(v))
	}
}

// applyVaccineHandler godoc
// @Summary Registrar aplicación de vacuna
// @Description Animal, vacuna y fecha de aplicación son obligatorios. La próxima dosis es opcional.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param payload body applyVaccineRequest true "Aplicación; fechas YYYY-MM-DD"
// @Success 201 {object} ApplicationResponse
// @Failure 400 {string} string "invalid json / fechas inválidas"
// @Failure 404 {string} string "animal o vacuna no existe"
// @Router /vaccines/applications [post]
func applyVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		applied, err := parseDate(req.AppliedOn, "applied_on")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next, err := parseDate(req.NextDoseOn, "next_dose_on")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Apply(r.Context(), ApplyInput{
			AnimalID:   req.AnimalID,
			VaccineID:  req.VaccineID,
			AppliedOn:  applied,
			NextDoseOn: next,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

// listApplicationsHandler godoc
// @Summary Listar aplicaciones con su urgencia
// @Description Próxima dosis ascendente; sin próxima dosis al final.
// @Tags vaccines
// @Produce json
// @Success 200 {array} ApplicationResponse
// @Router /vaccines/applications [get]
func listApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), svc.Today())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToClassifiedResponses(items))
	}
}

// semaphoreHandler godoc
// @Summary Semáforo de vacunación
// @Description Agrupa las aplicaciones de animales vivos en urgent, upcoming, on_time y undated.
// @Tags vaccines
// @Produce json
// @Success 200 {object} semaphoreResponse
// @Router /vaccines/applications/semaphore [get]
func semaphoreHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := svc.Today()
		sem, err := svc.Semaphore(r.Context(), today)
		if err != nil {
			writeError(w, err)
			return
		}

		counts := make(map[string]int, 4)
		for u, n := range sem.Buckets.Counts() {
			counts[string(u)] = n
		}

		writeJSON(w, http.StatusOK, semaphoreResponse{
			Today:    today.Format(dateLayout),
			Urgent:   toBucketResponses(sem.Buckets.Urgent, lifecycle.UrgencyUrgent),
			Upcoming: toBucketResponses(sem.Buckets.Upcoming, lifecycle.UrgencyUpcoming),
			OnTime:   toBucketResponses(sem.Buckets.OnTime, lifecycle.UrgencyOnTime),
			Undated:  toBucketResponses(sem.Buckets.Undated, lifecycle.UrgencyUndated),
			Counts:   counts,
		})
	}
}

// urgentHandler godoc
// @Summary Vacunas urgentes y próximas
// @Description Animales vivos con dosis vencida o dentro de los próximos 30 días, con días de atraso.
// @Tags vaccines
// @Produce json
// @Success 200 {array} ApplicationResponse
// @Router /vaccines/applications/urgent [get]
func urgentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Urgent(r.Context(), svc.Today())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToClassifiedResponses(items))
	}
}

// listByAnimalHandler godoc
// @Summary Historial de vacunas de un animal
// @Tags vaccines
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {array} ApplicationResponse
// @Router /vaccines/applications/animal/{animalID} [get]
func listByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ByAnimal(r.Context(), chi.URLParam(r, "animalID"), svc.Today())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToClassifiedResponses(items))
	}
}

// updateNextDoseHandler godoc
// @Summary Actualizar próxima dosis
// @Tags vaccines
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la aplicación"
// @Param payload body updateNextDoseRequest true "next_dose_on obligatorio"
// @Success 200 {object} ApplicationResponse
// @Failure 400 {string} string "fecha inválida"
// @Failure 404 {string} string "aplicación no existe"
// @Router /vaccines/applications/{applicationID}/next-dose [put]
func updateNextDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateNextDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		next, err := parseDate(req.NextDoseOn, "next_dose_on")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateNextDose(r.Context(), chi.URLParam(r, "applicationID"), next)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// updateApplicationHandler godoc
// @Summary Actualizar fechas de una aplicación
// @Tags vaccines
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la aplicación"
// @Param payload body updateApplicationRequest true "Ambas fechas obligatorias"
// @Success 200 {object} ApplicationResponse
// @Failure 400 {string} string "fechas inválidas"
// @Failure 404 {string} string "aplicación no existe"
// @Router /vaccines/applications/{applicationID} [put]
func updateApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		applied, err := parseDate(req.AppliedOn, "applied_on")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next, err := parseDate(req.NextDoseOn, "next_dose_on")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "applicationID"), applied, next)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// deleteApplicationHandler godoc
// @Summary Eliminar aplicación
// @Tags vaccines
// @Param applicationID path string true "ID de la aplicación"
// @Success 204
// @Failure 404 {string} string "aplicación no existe"
// @Router /vaccines/applications/{applicationID} [delete]
func deleteApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "applicationID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// parseDate: vacío = nil.
func parseDate(v, field string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, errors.New(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toVaccineResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
	}
}

func toApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                 a.ID,
		AnimalID:           a.AnimalID,
		AnimalCode:         a.AnimalCode,
		AnimalAlias:        a.AnimalAlias,
		AnimalStatus:       a.AnimalStatus,
		VaccineID:          a.VaccineID,
		VaccineName:        a.VaccineName,
		VaccineDescription: a.VaccineDescription,
		AppliedOn:          a.AppliedOn.Format(dateLayout),
		NextDoseOn:         formatDate(a.NextDoseOn),
	}
}

func toClassifiedResponse(c Classified) ApplicationResponse {
	out := toApplicationResponse(c.Application)
	out.Urgency = c.Urgency
	out.DaysOverdue = c.DaysOverdue
	return out
}

// ToClassifiedResponses lo reutiliza la ficha del animal.
func ToClassifiedResponses(items []Classified) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toClassifiedResponse(c))
	}
	return out
}

func toBucketResponses(items []Application, u lifecycle.Urgency) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		r := toApplicationResponse(a)
		r.Urgency = u
		out = append(out, r)
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVaccineNotFound), errors.Is(err, ErrAnimalNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
