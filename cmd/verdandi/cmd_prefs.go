/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/friendsincode/verdandi/internal/db"
	"github.com/friendsincode/verdandi/internal/models"
	"github.com/friendsincode/verdandi/internal/prefs"
)

// Prefs flags
var (
	prefsUserID   string
	prefsTimezone string
	prefsHours    []string
	prefsDaysOff  []string
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage stored scheduling preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a user's stored preferences",
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace a user's stored preferences",
	Long: `Replaces the user's timezone, working hours, and days off. Working hours
are given per weekday as name=HH:MM-HH:MM; weekdays not listed have no
working window.

Examples:
  verdandi prefs set --user alice --timezone Europe/Oslo \
    --hours monday=09:00-17:00 --hours friday=09:00-13:00 \
    --day-off 2025-12-24`,
	RunE: runPrefsSet,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)

	prefsCmd.PersistentFlags().StringVar(&prefsUserID, "user", "", "User id (required)")
	_ = prefsCmd.MarkPersistentFlagRequired("user")

	prefsSetCmd.Flags().StringVar(&prefsTimezone, "timezone", "UTC", "IANA timezone name")
	prefsSetCmd.Flags().StringArrayVar(&prefsHours, "hours", nil, "Working hours as weekday=HH:MM-HH:MM (repeatable)")
	prefsSetCmd.Flags().StringArrayVar(&prefsDaysOff, "day-off", nil, "Day off as YYYY-MM-DD (repeatable)")
}

func openStore() (*gorm.DB, *prefs.Store, error) {
	gdb, err := db.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return gdb, prefs.NewStore(gdb, logger), nil
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	gdb, store, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	sctx, err := store.ScheduleContext(context.Background(), prefsUserID)
	if err != nil {
		return err
	}

	fmt.Printf("timezone: %s\n", sctx.Timezone)

	weekdays := make([]time.Weekday, 0, len(sctx.WorkingHours))
	for weekday := range sctx.WorkingHours {
		weekdays = append(weekdays, weekday)
	}
	sort.Slice(weekdays, func(i, j int) bool { return weekdays[i] < weekdays[j] })
	for _, weekday := range weekdays {
		window := sctx.WorkingHours[weekday]
		fmt.Printf("%-9s %s-%s\n", strings.ToLower(weekday.String()), window.Start, window.End)
	}

	if len(sctx.DaysOff) > 0 {
		dates := make([]string, 0, len(sctx.DaysOff))
		for date := range sctx.DaysOff {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		fmt.Printf("days off: %s\n", strings.Join(dates, ", "))
	}
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	hours := models.WorkingHours{}
	for _, spec := range prefsHours {
		weekday, window, err := parseHoursSpec(spec)
		if err != nil {
			return err
		}
		hours[weekday] = window
	}

	daysOff := models.DaysOff{}
	for _, date := range prefsDaysOff {
		if err := daysOff.AddISO(date); err != nil {
			return err
		}
	}

	gdb, store, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	sctx := models.NewScheduleContext(prefsTimezone, hours, daysOff)
	if err := store.Save(context.Background(), prefsUserID, sctx); err != nil {
		return err
	}

	fmt.Printf("preferences saved for %s\n", prefsUserID)
	return nil
}

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseHoursSpec parses "weekday=HH:MM-HH:MM".
func parseHoursSpec(spec string) (time.Weekday, models.Window, error) {
	name, window, ok := strings.Cut(spec, "=")
	if !ok {
		return 0, models.Window{}, fmt.Errorf("invalid hours spec %q, want weekday=HH:MM-HH:MM", spec)
	}
	weekday, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, models.Window{}, fmt.Errorf("unknown weekday %q", name)
	}
	start, end, ok := strings.Cut(window, "-")
	if !ok {
		return 0, models.Window{}, fmt.Errorf("invalid hours spec %q, want weekday=HH:MM-HH:MM", spec)
	}
	parsed, err := models.ParseWindow(strings.TrimSpace(start), strings.TrimSpace(end))
	if err != nil {
		return 0, models.Window{}, err
	}
	return weekday, parsed, nil
}
