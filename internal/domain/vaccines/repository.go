package vaccines

import "context"

type Repository interface {
	ListVaccines(ctx context.Context) ([]Vaccine, error)
	CreateVaccine(ctx context.Context, v Vaccine) error
	GetVaccine(ctx context.Context, id string) (Vaccine, error)

	CreateApplication(ctx context.Context, a Application) error
	// GetApplication y ListApplications devuelven los campos de animal y vacuna ya unidos.
	GetApplication(ctx context.Context, id string) (Application, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	// UpdateApplication solo modifica las fechas.
	UpdateApplication(ctx context.Context, a Application) error
	DeleteApplication(ctx context.Context, id string) error
}

type ApplicationFilter struct {
	AnimalID  string // vacío = todos
	AliveOnly bool
}
