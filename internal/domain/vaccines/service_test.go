package vaccines

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/lifecycle"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	vaccines map[string]Vaccine
	apps     map[string]Application
	status   map[string]animals.Status // estado por animal para AliveOnly
	fail     error
}

func newTestRepo() *testRepo {
	return &testRepo{
		vaccines: map[string]Vaccine{},
		apps:     map[string]Application{},
		status:   map[string]animals.Status{},
	}
}

func (r *testRepo) ListVaccines(_ context.Context) ([]Vaccine, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	out := make([]Vaccine, 0, len(r.vaccines))
	for _, v := range r.vaccines {
		out = append(out, v)
	}
	return out, nil
}

func (r *testRepo) CreateVaccine(_ context.Context, v Vaccine) error {
	r.vaccines[v.ID] = v
	return nil
}

func (r *testRepo) GetVaccine(_ context.Context, id string) (Vaccine, error) {
	v, ok := r.vaccines[id]
	if !ok {
		return Vaccine{}, ErrVaccineNotFound
	}
	return v, nil
}

func (r *testRepo) CreateApplication(_ context.Context, a Application) error {
	r.apps[a.ID] = a
	return nil
}

func (r *testRepo) GetApplication(_ context.Context, id string) (Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	a.AnimalStatus = r.status[a.AnimalID]
	a.VaccineName = r.vaccines[a.VaccineID].Name
	return a, nil
}

func (r *testRepo) ListApplications(_ context.Context, f ApplicationFilter) ([]Application, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	out := make([]Application, 0)
	for _, a := range r.apps {
		if f.AnimalID != "" && a.AnimalID != f.AnimalID {
			continue
		}
		if f.AliveOnly && r.status[a.AnimalID] != animals.StatusAlive {
			continue
		}
		a.AnimalStatus = r.status[a.AnimalID]
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) UpdateApplication(_ context.Context, a Application) error {
	if _, ok := r.apps[a.ID]; !ok {
		return ErrNotFound
	}
	r.apps[a.ID] = a
	return nil
}

func (r *testRepo) DeleteApplication(_ context.Context, id string) error {
	if _, ok := r.apps[id]; !ok {
		return ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

type testAnimals map[string]bool

func (d testAnimals) Exists(_ context.Context, id string) (bool, error) {
	return d[id], nil
}

type testObserver map[lifecycle.Urgency]int

func (o testObserver) ObserveUrgency(u lifecycle.Urgency, n int) { o[u] += n }

// today es 2024-06-01; las fechas se expresan como desplazamiento en días.
var today = time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

func on(offset int) *time.Time {
	t := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &t
}

func newTestService(repo *testRepo, obs UrgencyObserver) *Service {
	svc := NewService(repo, testAnimals{"a1": true, "a2": true, "dead": true}, obs, nil)
	svc.now = func() time.Time { return today }
	return svc
}

func seedApps(repo *testRepo) {
	repo.status["a1"] = animals.StatusAlive
	repo.status["a2"] = animals.StatusAlive
	repo.status["dead"] = animals.StatusDeceased
	repo.vaccines["v1"] = Vaccine{ID: "v1", Name: "Aftosa"}

	add := func(id, animal string, applied int, next *time.Time) {
		repo.apps[id] = Application{ID: id, AnimalID: animal, VaccineID: "v1", AppliedOn: *on(applied), NextDoseOn: next}
	}
	add("overdue", "a1", -200, on(-5))
	add("due-today", "a2", -180, on(0))
	add("soon", "a1", -150, on(10))
	add("limit", "a2", -100, on(30))
	add("later", "a1", -30, on(31))
	add("undated", "a2", -10, nil)
	add("dead-overdue", "dead", -300, on(-40))
}

func appIDs(items []Application) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func TestSemaphore_AliveOnlyAndBucketOrder(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	obs := testObserver{}
	svc := newTestService(repo, obs)

	sem, err := svc.Semaphore(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, []string{"overdue", "due-today"}, appIDs(sem.Buckets.Urgent))
	assert.Equal(t, []string{"soon", "limit"}, appIDs(sem.Buckets.Upcoming))
	assert.Equal(t, []string{"later"}, appIDs(sem.Buckets.OnTime))
	assert.Equal(t, []string{"undated"}, appIDs(sem.Buckets.Undated))
	assert.Equal(t, 6, sem.Buckets.Len(), "deceased animals are excluded")

	assert.Equal(t, 2, obs[lifecycle.UrgencyUrgent])
	assert.Equal(t, 1, obs[lifecycle.UrgencyUndated])
}

func TestUrgent_WithDaysOverdue(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	svc := newTestService(repo, nil)

	items, err := svc.Urgent(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, items, 4)

	got := make([]string, 0, len(items))
	for _, c := range items {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"overdue", "due-today", "soon", "limit"}, got)

	require.NotNil(t, items[0].DaysOverdue)
	assert.Equal(t, 5, *items[0].DaysOverdue)
	assert.Equal(t, lifecycle.UrgencyUrgent, items[0].Urgency)
	assert.Equal(t, 0, *items[1].DaysOverdue)
	assert.Equal(t, -10, *items[2].DaysOverdue)
	assert.Equal(t, lifecycle.UrgencyUpcoming, items[3].Urgency)
}

func TestUrgent_ObservesOnlyReturnedRecords(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	obs := testObserver{}
	svc := newTestService(repo, obs)

	_, err := svc.Urgent(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, testObserver{lifecycle.UrgencyUrgent: 2, lifecycle.UrgencyUpcoming: 2}, obs)
}

func TestUrgent_FarmClockDecidesToday(t *testing.T) {
	repo := newTestRepo()
	repo.status["a1"] = animals.StatusAlive
	tomorrowUTC := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	repo.apps["next"] = Application{ID: "next", AnimalID: "a1", VaccineID: "v1",
		AppliedOn: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), NextDoseOn: &tomorrowUTC}

	// 20:00 del 15 en la finca; en UTC ya es el 16.
	farm := time.FixedZone("ECT", -5*60*60)
	instant := time.Date(2025, 3, 15, 20, 0, 0, 0, farm)

	svc := NewService(repo, testAnimals{"a1": true}, nil, nil).
		WithClock(func() time.Time { return instant })
	items, err := svc.Urgent(context.Background(), svc.Today())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, lifecycle.UrgencyUpcoming, items[0].Urgency)
	assert.Equal(t, -1, *items[0].DaysOverdue)

	svc.WithClock(func() time.Time { return instant.UTC() })
	items, err = svc.Urgent(context.Background(), svc.Today())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.UrgencyUrgent, items[0].Urgency)
}

func TestList_AllRecordsNullsLast(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	svc := newTestService(repo, nil)

	items, err := svc.List(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, items, 7)

	assert.Equal(t, "dead-overdue", items[0].ID)
	assert.Equal(t, "undated", items[6].ID)
	assert.Equal(t, lifecycle.UrgencyUndated, items[6].Urgency)
	assert.Nil(t, items[6].DaysOverdue)
}

func TestByAnimal_AppliedDesc(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	svc := newTestService(repo, nil)

	items, err := svc.ByAnimal(context.Background(), "a1", today)
	require.NoError(t, err)

	got := make([]string, 0, len(items))
	for _, c := range items {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"later", "soon", "overdue"}, got)
}

func TestApply(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	svc := newTestService(repo, nil)
	ctx := context.Background()

	a, err := svc.Apply(ctx, ApplyInput{AnimalID: "a1", VaccineID: "v1", AppliedOn: on(0), NextDoseOn: on(180)})
	require.NoError(t, err)
	assert.Equal(t, "Aftosa", a.VaccineName, "joined fields come back from the source")
	assert.Equal(t, animals.StatusAlive, a.AnimalStatus)

	_, err = svc.Apply(ctx, ApplyInput{AnimalID: "ghost", VaccineID: "v1", AppliedOn: on(0)})
	require.ErrorIs(t, err, ErrAnimalNotFound)

	_, err = svc.Apply(ctx, ApplyInput{AnimalID: "a1", VaccineID: "nope", AppliedOn: on(0)})
	require.ErrorIs(t, err, ErrVaccineNotFound)

	_, err = svc.Apply(ctx, ApplyInput{AnimalID: "a1", VaccineID: "v1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Apply(ctx, ApplyInput{AnimalID: "a1", VaccineID: "v1", AppliedOn: on(0), NextDoseOn: on(-1)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdates(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	svc := newTestService(repo, nil)
	ctx := context.Background()

	a, err := svc.UpdateNextDose(ctx, "undated", on(60))
	require.NoError(t, err)
	assert.Equal(t, *on(60), *a.NextDoseOn)
	assert.Equal(t, lifecycle.UrgencyOnTime, lifecycle.Classify(repo.apps["undated"].NextDoseOn, today))

	_, err = svc.UpdateNextDose(ctx, "undated", nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateNextDose(ctx, "missing", on(1))
	require.ErrorIs(t, err, ErrNotFound)

	a, err = svc.Update(ctx, "soon", on(-1), on(364))
	require.NoError(t, err)
	assert.Equal(t, *on(-1), a.AppliedOn)

	_, err = svc.Update(ctx, "soon", on(-1), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	svc := newTestService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), "later"))
	assert.NotContains(t, repo.apps, "later")

	require.ErrorIs(t, svc.Delete(context.Background(), "later"), ErrNotFound)
}

func TestCatalog(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateVaccine(ctx, "  ", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateVaccine(ctx, "Rabia", "")
	require.NoError(t, err)
	_, err = svc.CreateVaccine(ctx, "aftosa", "fiebre aftosa")
	require.NoError(t, err)

	items, err := svc.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "aftosa", items[0].Name)
	assert.Equal(t, "Rabia", items[1].Name)
}

func TestDigest(t *testing.T) {
	repo := newTestRepo()
	seedApps(repo)
	svc := newTestService(repo, nil)

	counts, err := svc.Digest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[lifecycle.Urgency]int{
		lifecycle.UrgencyUrgent:   2,
		lifecycle.UrgencyUpcoming: 2,
		lifecycle.UrgencyOnTime:   1,
		lifecycle.UrgencyUndated:  1,
	}, counts)
}

func TestSourceFailure(t *testing.T) {
	repo := newTestRepo()
	repo.fail = errors.New("timeout")
	svc := newTestService(repo, nil)

	_, err := svc.Semaphore(context.Background(), today)
	require.ErrorIs(t, err, ErrSourceUnavailable)
}
