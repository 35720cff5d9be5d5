package records

import (
	"encoding/json"
	"errors"
	"net/http"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/animals/{animalID}/record", getSheetHandler(svc))
}

type parentResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Alias string `json:"alias"`
}

type sheetResponse struct {
	Animal       animals.AnimalResponse         `json:"animal"`
	Mother       *parentResponse                `json:"mother"`
	Father       *parentResponse                `json:"father"`
	Vaccinations []vaccines.ApplicationResponse `json:"vaccinations"`
}

// getSheetHandler godoc
// @Summary Ficha del animal
// @Description Datos del animal, código y alias de madre y padre, y vacunas aplicadas (más reciente primero) con su urgencia.
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} sheetResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/record [get]
func getSheetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sheet, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			switch {
			case errors.Is(err, animals.ErrNotFound), errors.Is(err, animals.ErrInvalidInput):
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, sheetResponse{
			Animal:       animals.ToAnimalResponse(sheet.Animal),
			Mother:       toParentResponse(sheet.Mother),
			Father:       toParentResponse(sheet.Father),
			Vaccinations: vaccines.ToClassifiedResponses(sheet.Vaccinations),
		})
	}
}

func toParentResponse(p *ParentRef) *parentResponse {
	if p == nil {
		return nil
	}
	return &parentResponse{ID: p.ID, Code: p.Code, Alias: p.Alias}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
