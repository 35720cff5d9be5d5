package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
	"livestock-records/internal/router"
)

func ptr[T any](v T) *T { return &v }

func seededServices(t *testing.T) *router.Services {
	t.Helper()
	ctx := context.Background()
	svcs := router.NewServices(router.Options{})
	now := time.Now()

	cow, err := svcs.Animals.Create(ctx, animals.CreateInput{
		Code: "BOV001", Alias: "Manchita", Sex: "H",
		BirthDate: ptr(now.AddDate(-2, 0, 0)), InitialWeightKg: ptr(420.0),
	})
	require.NoError(t, err)
	_, err = svcs.Animals.Create(ctx, animals.CreateInput{
		Code: "BOV002", Alias: "Pinto", Sex: "M",
		BirthDate: ptr(now.AddDate(0, -1, 0)), InitialWeightKg: ptr(30.0),
	})
	require.NoError(t, err)

	v, err := svcs.Vaccines.CreateVaccine(ctx, "Aftosa", "")
	require.NoError(t, err)
	_, err = svcs.Vaccines.Apply(ctx, vaccines.ApplyInput{
		AnimalID:   cow.ID,
		VaccineID:  v.ID,
		AppliedOn:  ptr(now.AddDate(0, 0, -30)),
		NextDoseOn: ptr(now.AddDate(0, 0, -1)),
	})
	require.NoError(t, err)
	return svcs
}

func TestReportStages(t *testing.T) {
	svcs := seededServices(t)
	var buf bytes.Buffer
	require.NoError(t, reportStages(context.Background(), &buf, svcs))

	var out struct {
		ByStage []struct {
			Stage string `json:"stage"`
		} `json:"by_stage"`
		Transitions []struct {
			Code string `json:"code"`
		} `json:"transitions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Len(t, out.ByStage, 2)
	require.Len(t, out.Transitions, 1, "solo la cría tiene un cambio de etapa pendiente")
	assert.Equal(t, "BOV002", out.Transitions[0].Code)
}

func TestReportVaccines(t *testing.T) {
	svcs := seededServices(t)
	var buf bytes.Buffer
	require.NoError(t, reportVaccines(context.Background(), &buf, svcs))

	var out struct {
		Counts map[string]int `json:"counts"`
		Due    []struct {
			AnimalCode string `json:"animal_code"`
			Urgency    string `json:"urgency"`
		} `json:"due"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 1, out.Counts["urgent"])
	require.Len(t, out.Due, 1)
	assert.Equal(t, "BOV001", out.Due[0].AnimalCode)
	assert.Equal(t, "urgent", out.Due[0].Urgency)
}
