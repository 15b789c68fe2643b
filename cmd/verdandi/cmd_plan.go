/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/friendsincode/verdandi/internal/db"
	"github.com/friendsincode/verdandi/internal/engine"
	"github.com/friendsincode/verdandi/internal/planfile"
	"github.com/friendsincode/verdandi/internal/prefs"
	"github.com/friendsincode/verdandi/internal/telemetry"
)

// Plan flags
var (
	planFilePath string
	planUseDB    bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a scheduling plan from a YAML plan file",
	Long: `Loads a plan file describing the scheduling range, the busy calendar,
and the fixed and flexible activities, runs the full pipeline, and prints
the result as JSON.

Preferences come from the plan file's inline preferences block. With
--db-prefs they are loaded from the preference store instead, keyed by
the plan file's user_id.

Examples:
  verdandi plan --file week.yaml
  verdandi plan --file week.yaml --db-prefs`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planFilePath, "file", "", "Path to the YAML plan file (required)")
	planCmd.Flags().BoolVar(&planUseDB, "db-prefs", false, "Load preferences from the database instead of the plan file")
	_ = planCmd.MarkFlagRequired("file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	f, err := planfile.Load(planFilePath)
	if err != nil {
		return err
	}

	var prefSource engine.PreferenceSource = f
	if planUseDB {
		gdb, err := db.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close(gdb)
		if err := db.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		prefSource = prefs.NewStore(gdb, logger)
	}

	if cfg.MetricsBind != "" {
		go serveMetrics(cfg.MetricsBind)
	}

	svc := engine.New(f, prefSource, logger)

	req, err := f.PlanRequest()
	if err != nil {
		return err
	}

	result, err := svc.Plan(context.Background(), req)
	if err != nil {
		return fmt.Errorf("compute plan: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func serveMetrics(bind string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())
	if err := http.ListenAndServe(bind, mux); err != nil {
		logger.Warn().Err(err).Str("bind", bind).Msg("metrics server stopped")
	}
}
