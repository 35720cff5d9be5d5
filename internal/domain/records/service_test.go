package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
	"livestock-records/internal/lifecycle"
)

type testAnimals map[string]animals.Animal

func (t testAnimals) GetByID(_ context.Context, id string) (animals.Animal, error) {
	a, ok := t[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

type testVaccines struct {
	byAnimal map[string][]vaccines.Classified
	err      error
	gotToday time.Time
}

func (t *testVaccines) ByAnimal(_ context.Context, id string, today time.Time) ([]vaccines.Classified, error) {
	t.gotToday = today
	if t.err != nil {
		return nil, t.err
	}
	return t.byAnimal[id], nil
}

func strptr(s string) *string { return &s }

func herd() testAnimals {
	return testAnimals{
		"mom":  {ID: "mom", Code: "BOV001", Alias: "Manchita"},
		"calf": {ID: "calf", Code: "BOV010", Alias: "Pinta", MotherID: strptr("mom"), FatherID: strptr("gone")},
	}
}

func TestGet_FullSheet(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	vacc := &testVaccines{byAnimal: map[string][]vaccines.Classified{
		"calf": {{Application: vaccines.Application{ID: "app-1", AnimalID: "calf"}, Urgency: lifecycle.UrgencyUndated}},
	}}
	svc := NewService(herd(), vacc, nil)
	svc.now = func() time.Time { return now }

	sheet, err := svc.Get(context.Background(), "calf")
	require.NoError(t, err)

	assert.Equal(t, "BOV010", sheet.Animal.Code)
	if diff := cmp.Diff(&ParentRef{ID: "mom", Code: "BOV001", Alias: "Manchita"}, sheet.Mother); diff != "" {
		t.Fatalf("mother mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, sheet.Father, "missing parent is omitted")
	require.Len(t, sheet.Vaccinations, 1)
	assert.Equal(t, now, vacc.gotToday)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(herd(), &testVaccines{}, nil)

	_, err := svc.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, animals.ErrNotFound)
}

func TestGet_VaccinationFailureCancelsSheet(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(herd(), &testVaccines{err: boom}, nil)

	_, err := svc.Get(context.Background(), "calf")
	require.ErrorIs(t, err, boom)
}
