package memory

import (
	"context"
	"errors"
	"sync"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
)

// AnimalLookup es lo mínimo que necesita el repo de vacunas para unir datos del animal.
type AnimalLookup interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type VaccineRepo struct {
	mu       sync.RWMutex
	vaccines map[string]vaccines.Vaccine
	apps     map[string]vaccines.Application
	animals  AnimalLookup
}

func NewVaccineRepo(animals AnimalLookup) *VaccineRepo {
	return &VaccineRepo{
		vaccines: make(map[string]vaccines.Vaccine),
		apps:     make(map[string]vaccines.Application),
		animals:  animals,
	}
}

func (r *VaccineRepo) ListVaccines(ctx context.Context) ([]vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccines.Vaccine, 0, len(r.vaccines))
	for _, v := range r.vaccines {
		out = append(out, v)
	}
	return out, nil
}

func (r *VaccineRepo) CreateVaccine(ctx context.Context, v vaccines.Vaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		return errors.New("vaccine id required")
	}
	if _, exists := r.vaccines[v.ID]; exists {
		return errors.New("vaccine already exists")
	}
	r.vaccines[v.ID] = v
	return nil
}

func (r *VaccineRepo) GetVaccine(ctx context.Context, id string) (vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vaccines[id]
	if !ok {
		return vaccines.Vaccine{}, vaccines.ErrVaccineNotFound
	}
	return v, nil
}

func (r *VaccineRepo) CreateApplication(ctx context.Context, a vaccines.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("application id required")
	}
	if _, exists := r.apps[a.ID]; exists {
		return errors.New("application already exists")
	}
	if _, ok := r.vaccines[a.VaccineID]; !ok {
		return vaccines.ErrVaccineNotFound
	}
	r.apps[a.ID] = a
	return nil
}

func (r *VaccineRepo) GetApplication(ctx context.Context, id string) (vaccines.Application, error) {
	r.mu.RLock()
	a, ok := r.apps[id]
	r.mu.RUnlock()
	if !ok {
		return vaccines.Application{}, vaccines.ErrNotFound
	}

	joined, keep, err := r.join(ctx, a)
	if err != nil {
		return vaccines.Application{}, err
	}
	if !keep {
		return vaccines.Application{}, vaccines.ErrNotFound
	}
	return joined, nil
}

func (r *VaccineRepo) ListApplications(ctx context.Context, f vaccines.ApplicationFilter) ([]vaccines.Application, error) {
	r.mu.RLock()
	snapshot := make([]vaccines.Application, 0, len(r.apps))
	for _, a := range r.apps {
		if f.AnimalID != "" && a.AnimalID != f.AnimalID {
			continue
		}
		snapshot = append(snapshot, a)
	}
	r.mu.RUnlock()

	out := make([]vaccines.Application, 0, len(snapshot))
	for _, a := range snapshot {
		joined, keep, err := r.join(ctx, a)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		if f.AliveOnly && joined.AnimalStatus != animals.StatusAlive {
			continue
		}
		out = append(out, joined)
	}
	return out, nil
}

func (r *VaccineRepo) UpdateApplication(ctx context.Context, a vaccines.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.apps[a.ID]
	if !ok {
		return vaccines.ErrNotFound
	}
	cur.AppliedOn = a.AppliedOn
	cur.NextDoseOn = a.NextDoseOn
	r.apps[a.ID] = cur
	return nil
}

func (r *VaccineRepo) DeleteApplication(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[id]; !ok {
		return vaccines.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

// join replica el INNER JOIN: sin animal o sin vacuna la fila no aparece (keep=false).
func (r *VaccineRepo) join(ctx context.Context, a vaccines.Application) (vaccines.Application, bool, error) {
	an, err := r.animals.GetByID(ctx, a.AnimalID)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return a, false, nil
		}
		return a, false, err
	}

	r.mu.RLock()
	v, ok := r.vaccines[a.VaccineID]
	r.mu.RUnlock()
	if !ok {
		return a, false, nil
	}

	a.AnimalCode = an.Code
	a.AnimalAlias = an.Alias
	a.AnimalStatus = an.Status
	a.VaccineName = v.Name
	a.VaccineDescription = v.Description
	return a, true, nil
}
