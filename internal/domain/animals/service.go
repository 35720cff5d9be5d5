package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"livestock-records/internal/lifecycle"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("animal not found")
	ErrDuplicateCode     = errors.New("animal code already exists")
	ErrSourceUnavailable = errors.New("record source unavailable")
)

type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

type CreateInput struct {
	Code            string
	EarTag          string
	RFID            string
	Alias           string
	Sex             string
	BirthDate       *time.Time
	Breed           string
	Color           string
	InitialWeightKg *float64
	Status          string
	DischargeDate   *time.Time
	DischargeReason string
	MotherID        *string
	FatherID        *string
	BirthPlace      string
	Origin          string
	FarmID          *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	a, err := s.build(in, s.now())
	if err != nil {
		return Animal{}, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, s.sourceErr("create animal", err)
	}
	return a, nil
}

// CreateMany valida el lote completo antes de insertar; si una fila falla no se inserta nada.
func (s *Service) CreateMany(ctx context.Context, ins []CreateInput) ([]Animal, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}

	now := s.now()
	out := make([]Animal, 0, len(ins))
	codes := make(map[string]int, len(ins))
	for i, in := range ins {
		a, err := s.build(in, now)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if prev, dup := codes[a.Code]; dup {
			return nil, fmt.Errorf("item %d: %w: repeats item %d", i, ErrDuplicateCode, prev)
		}
		codes[a.Code] = i
		out = append(out, a)
	}

	if err := s.repo.CreateMany(ctx, out); err != nil {
		return nil, s.sourceErr("bulk insert animals", err)
	}
	s.logger.Info("animals inserted", zap.Int("count", len(out)))
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, s.sourceErr("get animal", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.sourceErr("list animals", err)
	}
	return items, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.sourceErr("count animals", err)
	}
	return n, nil
}

func (s *Service) build(in CreateInput, now time.Time) (Animal, error) {
	code := strings.TrimSpace(in.Code)
	alias := strings.TrimSpace(in.Alias)
	switch {
	case code == "":
		return Animal{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
	case alias == "":
		return Animal{}, fmt.Errorf("%w: alias is required", ErrInvalidInput)
	case in.BirthDate == nil || in.BirthDate.IsZero():
		return Animal{}, fmt.Errorf("%w: birth_date is required", ErrInvalidInput)
	case in.InitialWeightKg == nil:
		return Animal{}, fmt.Errorf("%w: initial_weight_kg is required", ErrInvalidInput)
	case *in.InitialWeightKg <= 0:
		return Animal{}, fmt.Errorf("%w: initial_weight_kg must be positive", ErrInvalidInput)
	case in.BirthDate.After(now):
		return Animal{}, fmt.Errorf("%w: birth_date is in the future", ErrInvalidInput)
	}

	sex, err := lifecycle.ParseSex(in.Sex)
	if err != nil {
		return Animal{}, fmt.Errorf("%w: sex must be H or M", ErrInvalidInput)
	}

	status := StatusAlive
	if v := strings.ToUpper(strings.TrimSpace(in.Status)); v != "" {
		status = Status(v)
		if !status.IsValid() {
			return Animal{}, fmt.Errorf("%w: status must be VIVO or MUERTO", ErrInvalidInput)
		}
	}

	return Animal{
		ID:              uuid.NewString(),
		Code:            code,
		EarTag:          strings.TrimSpace(in.EarTag),
		RFID:            strings.TrimSpace(in.RFID),
		Alias:           alias,
		Sex:             sex,
		BirthDate:       *in.BirthDate,
		Breed:           strings.TrimSpace(in.Breed),
		Color:           strings.TrimSpace(in.Color),
		InitialWeightKg: *in.InitialWeightKg,
		Status:          status,
		DischargeDate:   in.DischargeDate,
		DischargeReason: strings.TrimSpace(in.DischargeReason),
		MotherID:        trimmedOrNil(in.MotherID),
		FatherID:        trimmedOrNil(in.FatherID),
		BirthPlace:      strings.TrimSpace(in.BirthPlace),
		Origin:          strings.TrimSpace(in.Origin),
		FarmID:          trimmedOrNil(in.FarmID),
		CreatedAt:       now,
	}, nil
}

// sourceErr deja pasar los errores de dominio y envuelve el resto como fuente no disponible.
func (s *Service) sourceErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateCode) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	s.logger.Error("record source failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, op, err)
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
