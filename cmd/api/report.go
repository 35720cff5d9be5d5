package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"livestock-records/internal/domain/vaccines"
	"livestock-records/internal/lifecycle"
	"livestock-records/internal/router"
)

var reportCmd = &cobra.Command{
	Use:       "report [stages|vaccines]",
	Short:     "Imprime en JSON el resumen de etapas o el semáforo de vacunas",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"stages", "vaccines"},
	RunE:      runReport,
}

type transitionLine struct {
	AnimalID   string               `json:"animal_id"`
	Code       string               `json:"code"`
	Alias      string               `json:"alias"`
	Transition lifecycle.Transition `json:"transition"`
}

type stagesReport struct {
	lifecycle.StageSummary
	Transitions []transitionLine `json:"transitions"`
}

type vaccinesReport struct {
	Today  string                         `json:"today"`
	Counts map[lifecycle.Urgency]int      `json:"counts"`
	Due    []vaccines.ApplicationResponse `json:"due"`
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, baseLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	store, err := router.OpenStorage(ctx, cfg, baseLogger.Named("storage"))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	loc, err := cfg.Digest.Location()
	if err != nil {
		return err
	}
	svcs := router.NewServices(router.Options{Storage: store, Logger: baseLogger, Location: loc})

	switch args[0] {
	case "stages":
		return reportStages(ctx, cmd.OutOrStdout(), svcs)
	case "vaccines":
		return reportVaccines(ctx, cmd.OutOrStdout(), svcs)
	}
	return fmt.Errorf("unknown report %q", args[0])
}

func reportStages(ctx context.Context, w io.Writer, svcs *router.Services) error {
	summary, err := svcs.Animals.Stats(ctx)
	if err != nil {
		return err
	}
	changes, err := svcs.Animals.Transitions(ctx)
	if err != nil {
		return err
	}

	out := stagesReport{StageSummary: summary, Transitions: make([]transitionLine, 0, len(changes))}
	for _, c := range changes {
		out.Transitions = append(out.Transitions, transitionLine{
			AnimalID:   c.Item.ID,
			Code:       c.Item.Code,
			Alias:      c.Item.Alias,
			Transition: c.Transition,
		})
	}
	return writeReport(w, out)
}

func reportVaccines(ctx context.Context, w io.Writer, svcs *router.Services) error {
	today := svcs.Vaccines.Today()
	sem, err := svcs.Vaccines.Semaphore(ctx, today)
	if err != nil {
		return err
	}
	due, err := svcs.Vaccines.Urgent(ctx, today)
	if err != nil {
		return err
	}
	return writeReport(w, vaccinesReport{
		Today:  today.Format("2006-01-02"),
		Counts: sem.Buckets.Counts(),
		Due:    vaccines.ToClassifiedResponses(due),
	})
}

func writeReport(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
