package vaccines

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"livestock-records/internal/lifecycle"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("vaccine application not found")
	ErrVaccineNotFound   = errors.New("vaccine not found")
	ErrAnimalNotFound    = errors.New("animal not found")
	ErrSourceUnavailable = errors.New("record source unavailable")
)

// AnimalDirectory evita importar el repositorio de animales (lo implementa animals.Service).
type AnimalDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// UrgencyObserver recibe las clasificaciones hechas; puede ser nil.
type UrgencyObserver interface {
	ObserveUrgency(u lifecycle.Urgency, n int)
}

type Service struct {
	repo     Repository
	animals  AnimalDirectory
	observer UrgencyObserver
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, animals AnimalDirectory, observer UrgencyObserver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		animals:  animals,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock fija de dónde sale "hoy"; nil conserva el reloj actual.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Today es el único "hoy" de una petición; todas las clasificaciones lo reciben.
func (s *Service) Today() time.Time {
	return s.now()
}

// -------------------------
// Catálogo
// -------------------------

func (s *Service) Catalog(ctx context.Context) ([]Vaccine, error) {
	items, err := s.repo.ListVaccines(ctx)
	if err != nil {
		return nil, s.sourceErr("list vaccines", err)
	}
	slices.SortStableFunc(items, func(a, b Vaccine) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return items, nil
}

func (s *Service) CreateVaccine(ctx context.Context, name, description string) (Vaccine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Vaccine{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	v := Vaccine{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateVaccine(ctx, v); err != nil {
		return Vaccine{}, s.sourceErr("create vaccine", err)
	}
	return v, nil
}

// -------------------------
// Aplicaciones
// -------------------------

type ApplyInput struct {
	AnimalID   string
	VaccineID  string
	AppliedOn  *time.Time
	NextDoseOn *time.Time
}

func (s *Service) Apply(ctx context.Context, in ApplyInput) (Application, error) {
	animalID := strings.TrimSpace(in.AnimalID)
	vaccineID := strings.TrimSpace(in.VaccineID)
	switch {
	case animalID == "":
		return Application{}, fmt.Errorf("%w: animal_id is required", ErrInvalidInput)
	case vaccineID == "":
		return Application{}, fmt.Errorf("%w: vaccine_id is required", ErrInvalidInput)
	case in.AppliedOn == nil || in.AppliedOn.IsZero():
		return Application{}, fmt.Errorf("%w: applied_on is required", ErrInvalidInput)
	}
	if err := checkDates(*in.AppliedOn, in.NextDoseOn); err != nil {
		return Application{}, err
	}

	ok, err := s.animals.Exists(ctx, animalID)
	if err != nil {
		return Application{}, s.sourceErr("check animal", err)
	}
	if !ok {
		return Application{}, ErrAnimalNotFound
	}
	if _, err := s.repo.GetVaccine(ctx, vaccineID); err != nil {
		return Application{}, s.sourceErr("get vaccine", err)
	}

	a := Application{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		VaccineID:  vaccineID,
		AppliedOn:  *in.AppliedOn,
		NextDoseOn: in.NextDoseOn,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateApplication(ctx, a); err != nil {
		return Application{}, s.sourceErr("create application", err)
	}

	// Releer para devolver los campos unidos de animal y vacuna.
	joined, err := s.repo.GetApplication(ctx, a.ID)
	if err != nil {
		return Application{}, s.sourceErr("get application", err)
	}
	return joined, nil
}

// List devuelve todas las aplicaciones por próxima dosis ascendente, sin fecha al final.
func (s *Service) List(ctx context.Context, today time.Time) ([]Classified, error) {
	items, err := s.repo.ListApplications(ctx, ApplicationFilter{})
	if err != nil {
		return nil, s.sourceErr("list applications", err)
	}
	lifecycle.SortByNextDose(items)
	return s.classify(items, today), nil
}

// ByAnimal: más reciente primero.
func (s *Service) ByAnimal(ctx context.Context, animalID string, today time.Time) ([]Classified, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, fmt.Errorf("%w: animal id is required", ErrInvalidInput)
	}
	items, err := s.repo.ListApplications(ctx, ApplicationFilter{AnimalID: animalID})
	if err != nil {
		return nil, s.sourceErr("list applications by animal", err)
	}
	slices.SortStableFunc(items, func(a, b Application) int {
		return b.AppliedOn.Compare(a.AppliedOn)
	})
	return s.classify(items, today), nil
}

// Semaphore clasifica solo animales vivos.
func (s *Service) Semaphore(ctx context.Context, today time.Time) (Semaphore, error) {
	items, err := s.repo.ListApplications(ctx, ApplicationFilter{AliveOnly: true})
	if err != nil {
		return Semaphore{}, s.sourceErr("list alive applications", err)
	}
	b := lifecycle.GroupByUrgency(items, today)
	s.observeCounts(b.Counts())
	return Semaphore{Today: today, Buckets: b}, nil
}

// Urgent devuelve urgentes y próximas de animales vivos, próxima dosis ascendente.
// Solo se observan en métricas los registros devueltos.
func (s *Service) Urgent(ctx context.Context, today time.Time) ([]Classified, error) {
	items, err := s.repo.ListApplications(ctx, ApplicationFilter{AliveOnly: true})
	if err != nil {
		return nil, s.sourceErr("list alive applications", err)
	}
	b := lifecycle.GroupByUrgency(items, today)
	// BySeverity deja OnTime al final.
	due := b.BySeverity()[:len(b.Urgent)+len(b.Upcoming)]
	return s.classify(due, today), nil
}

// Digest resume el semáforo del día; lo usa el job programado.
func (s *Service) Digest(ctx context.Context) (map[lifecycle.Urgency]int, error) {
	sem, err := s.Semaphore(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return sem.Buckets.Counts(), nil
}

func (s *Service) UpdateNextDose(ctx context.Context, id string, next *time.Time) (Application, error) {
	if next == nil || next.IsZero() {
		return Application{}, fmt.Errorf("%w: next_dose_on is required", ErrInvalidInput)
	}
	a, err := s.getApplication(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if err := checkDates(a.AppliedOn, next); err != nil {
		return Application{}, err
	}
	a.NextDoseOn = next
	if err := s.repo.UpdateApplication(ctx, a); err != nil {
		return Application{}, s.sourceErr("update next dose", err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, applied, next *time.Time) (Application, error) {
	if applied == nil || applied.IsZero() || next == nil || next.IsZero() {
		return Application{}, fmt.Errorf("%w: applied_on and next_dose_on are required", ErrInvalidInput)
	}
	if err := checkDates(*applied, next); err != nil {
		return Application{}, err
	}
	a, err := s.getApplication(ctx, id)
	if err != nil {
		return Application{}, err
	}
	a.AppliedOn = *applied
	a.NextDoseOn = next
	if err := s.repo.UpdateApplication(ctx, a); err != nil {
		return Application{}, s.sourceErr("update application", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := s.repo.DeleteApplication(ctx, id); err != nil {
		return s.sourceErr("delete application", err)
	}
	s.logger.Info("vaccine application deleted", zap.String("application_id", id))
	return nil
}

func (s *Service) getApplication(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	a, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return Application{}, s.sourceErr("get application", err)
	}
	return a, nil
}

func (s *Service) classify(items []Application, today time.Time) []Classified {
	out := toClassified(items, today)
	counts := make(map[lifecycle.Urgency]int, 4)
	for _, c := range out {
		counts[c.Urgency]++
	}
	s.observeCounts(counts)
	return out
}

func (s *Service) observeCounts(counts map[lifecycle.Urgency]int) {
	if s.observer == nil {
		return
	}
	for u, n := range counts {
		if n > 0 {
			s.observer.ObserveUrgency(u, n)
		}
	}
}

func toClassified(items []Application, today time.Time) []Classified {
	out := make([]Classified, 0, len(items))
	for _, a := range items {
		c := Classified{Application: a, Urgency: lifecycle.Classify(a.NextDoseOn, today)}
		if d, ok := lifecycle.DaysOverdue(a.NextDoseOn, today); ok {
			c.DaysOverdue = &d
		}
		out = append(out, c)
	}
	return out
}

// La próxima dosis no puede ser anterior a la aplicación.
func checkDates(applied time.Time, next *time.Time) error {
	if next != nil && next.Before(applied) {
		return fmt.Errorf("%w: next_dose_on is before applied_on", ErrInvalidInput)
	}
	return nil
}

func (s *Service) sourceErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVaccineNotFound) ||
		errors.Is(err, ErrAnimalNotFound) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	s.logger.Error("record source failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, op, err)
}
