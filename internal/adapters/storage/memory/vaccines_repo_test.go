package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
	"livestock-records/internal/lifecycle"
)

func seededVaccineRepo(t *testing.T) *VaccineRepo {
	t.Helper()
	ctx := context.Background()

	herd := newAnimalRepoAt(today)
	dead := born("a2", "BOV002", lifecycle.SexMale, 2023, 3, 20)
	dead.Status = animals.StatusDeceased
	require.NoError(t, herd.Create(ctx, born("a1", "BOV001", lifecycle.SexFemale, 2023, 1, 15)))
	require.NoError(t, herd.Create(ctx, dead))

	repo := NewVaccineRepo(herd)
	require.NoError(t, repo.CreateVaccine(ctx, vaccines.Vaccine{ID: "v1", Name: "Aftosa", Description: "fiebre aftosa"}))

	next := today.AddDate(0, 0, 10)
	require.NoError(t, repo.CreateApplication(ctx, vaccines.Application{ID: "p1", AnimalID: "a1", VaccineID: "v1", AppliedOn: today, NextDoseOn: &next}))
	require.NoError(t, repo.CreateApplication(ctx, vaccines.Application{ID: "p2", AnimalID: "a2", VaccineID: "v1", AppliedOn: today}))
	return repo
}

func TestVaccineRepo_JoinsAnimalAndVaccine(t *testing.T) {
	repo := seededVaccineRepo(t)

	a, err := repo.GetApplication(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "BOV001", a.AnimalCode)
	assert.Equal(t, animals.StatusAlive, a.AnimalStatus)
	assert.Equal(t, "Aftosa", a.VaccineName)
	assert.Equal(t, "fiebre aftosa", a.VaccineDescription)
}

func TestVaccineRepo_ListFilters(t *testing.T) {
	repo := seededVaccineRepo(t)
	ctx := context.Background()

	all, err := repo.ListApplications(ctx, vaccines.ApplicationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	alive, err := repo.ListApplications(ctx, vaccines.ApplicationFilter{AliveOnly: true})
	require.NoError(t, err)
	require.Len(t, alive, 1)
	assert.Equal(t, "p1", alive[0].ID)

	byAnimal, err := repo.ListApplications(ctx, vaccines.ApplicationFilter{AnimalID: "a2"})
	require.NoError(t, err)
	require.Len(t, byAnimal, 1)
	assert.Equal(t, "p2", byAnimal[0].ID)
}

func TestVaccineRepo_UpdateOnlyTouchesDates(t *testing.T) {
	repo := seededVaccineRepo(t)
	ctx := context.Background()

	next := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateApplication(ctx, vaccines.Application{ID: "p2", AnimalID: "ignored", AppliedOn: today, NextDoseOn: &next}))

	a, err := repo.GetApplication(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "a2", a.AnimalID)
	require.NotNil(t, a.NextDoseOn)
	assert.Equal(t, next, *a.NextDoseOn)

	err = repo.UpdateApplication(ctx, vaccines.Application{ID: "missing"})
	require.ErrorIs(t, err, vaccines.ErrNotFound)
}

func TestVaccineRepo_Delete(t *testing.T) {
	repo := seededVaccineRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteApplication(ctx, "p1"))
	_, err := repo.GetApplication(ctx, "p1")
	require.ErrorIs(t, err, vaccines.ErrNotFound)
	require.ErrorIs(t, repo.DeleteApplication(ctx, "p1"), vaccines.ErrNotFound)
}

func TestVaccineRepo_UnknownVaccine(t *testing.T) {
	repo := seededVaccineRepo(t)
	err := repo.CreateApplication(context.Background(), vaccines.Application{ID: "p3", AnimalID: "a1", VaccineID: "nope", AppliedOn: today})
	require.ErrorIs(t, err, vaccines.ErrVaccineNotFound)
}
