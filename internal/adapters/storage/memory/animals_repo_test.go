package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/lifecycle"
)

var today = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newAnimalRepoAt(now time.Time) *AnimalRepo {
	r := NewAnimalRepo()
	r.now = func() time.Time { return now }
	return r
}

func born(id, code string, sex lifecycle.Sex, y int, m time.Month, d int) animals.Animal {
	return animals.Animal{
		ID:        id,
		Code:      code,
		Alias:     code,
		Sex:       sex,
		BirthDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Status:    animals.StatusAlive,
		CreatedAt: today,
	}
}

func TestAnimalRepo_DerivesStageFromBirthDate(t *testing.T) {
	repo := newAnimalRepoAt(today)
	ctx := context.Background()

	cases := []struct {
		a     animals.Animal
		stage lifecycle.Stage
		age   float64
	}{
		{born("a1", "L", lifecycle.SexMale, 2024, 5, 1), lifecycle.StageLactante, 1},
		{born("a2", "C", lifecycle.SexFemale, 2024, 1, 15), lifecycle.StageCria, 4.57},
		{born("a3", "V", lifecycle.SexFemale, 2023, 1, 15), lifecycle.StageVaca, 16.57},
		{born("a4", "T", lifecycle.SexMale, 2023, 3, 20), lifecycle.StageToro, 14.4},
	}
	for _, tc := range cases {
		require.NoError(t, repo.Create(ctx, tc.a))
	}

	for _, tc := range cases {
		got, err := repo.GetByID(ctx, tc.a.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.stage, got.Stage, tc.a.Code)
		assert.InDelta(t, tc.age, got.AgeMonths, 1e-9, tc.a.Code)
	}
}

func TestAnimalRepo_KeepsGivenStage(t *testing.T) {
	repo := newAnimalRepoAt(today)
	a := born("a1", "X", lifecycle.SexMale, 2024, 5, 1)
	a.Stage = lifecycle.StageToro
	a.AgeMonths = 40

	require.NoError(t, repo.Create(context.Background(), a))
	got, err := repo.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StageToro, got.Stage)
	assert.Equal(t, 40.0, got.AgeMonths)
}

func TestAnimalRepo_DuplicateCode(t *testing.T) {
	repo := newAnimalRepoAt(today)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, born("a1", "BOV001", lifecycle.SexMale, 2024, 5, 1)))
	err := repo.Create(ctx, born("a2", "BOV001", lifecycle.SexMale, 2024, 5, 1))
	require.ErrorIs(t, err, animals.ErrDuplicateCode)
}

func TestAnimalRepo_CreateManyIsAtomic(t *testing.T) {
	repo := newAnimalRepoAt(today)
	ctx := context.Background()

	err := repo.CreateMany(ctx, []animals.Animal{
		born("a1", "BOV001", lifecycle.SexMale, 2024, 5, 1),
		born("a2", "BOV001", lifecycle.SexMale, 2024, 5, 1),
	})
	require.ErrorIs(t, err, animals.ErrDuplicateCode)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAnimalRepo_ListAliveFilters(t *testing.T) {
	repo := newAnimalRepoAt(today)
	ctx := context.Background()

	dead := born("a3", "D", lifecycle.SexFemale, 2023, 1, 15)
	dead.Status = animals.StatusDeceased
	for _, a := range []animals.Animal{
		born("a1", "L", lifecycle.SexMale, 2024, 5, 1),
		born("a2", "V", lifecycle.SexFemale, 2023, 1, 15),
		dead,
	} {
		require.NoError(t, repo.Create(ctx, a))
	}

	items, err := repo.ListAlive(ctx, animals.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	vaca := lifecycle.StageVaca
	items, err = repo.ListAlive(ctx, animals.ListFilter{Stage: &vaca})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a2", items[0].ID)

	lo, hi := 0.0, 2.0
	items, err = repo.ListAlive(ctx, animals.ListFilter{MinAge: &lo, MaxAge: &hi})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].ID)
}
