// cmd/tools/matchctl/grid.go
package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"matching-workers/internal/availability"
	commonhttp "matching-workers/internal/common/http"
	"matching-workers/internal/models"
)

func gridCmd(a *app) *cobra.Command {
	var (
		windowsPath string
		date        string
		therapistID string
		backends    []string
		rulesPath   string
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Build a day grid from a windows file, or a week from a backend or rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if windowsPath != "" {
				day, err := availability.ParseDate(date)
				if err != nil {
					return err
				}
				var windows []models.AvailabilitySlot
				if err := readJSON(windowsPath, &windows); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), models.DaySlots{
					Date:    day.Format(availability.DateLayout),
					IsToday: availability.DayStart(time.Now()).Equal(day),
					Slots:   availability.BuildDayGrid(day, windows),
				})
			}

			if therapistID == "" {
				return errors.New("--therapist is required without --windows")
			}
			var source availability.WindowSource
			switch {
			case rulesPath != "":
				rules, err := availability.LoadRuleSource(rulesPath)
				if err != nil {
					return err
				}
				source = rules
			case len(backends) > 0:
				source = availability.NewHTTPSource(commonhttp.NewClient(timeout, backends...))
			default:
				return errors.New("one of --windows, --rules or --backend is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout*availability.Horizon)
			defer cancel()
			days := availability.NewWeekAssembler(source, a.logger).Generate(ctx, therapistID)
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"therapistId": therapistID,
				"days":        days,
			})
		},
	}
	cmd.Flags().StringVar(&windowsPath, "windows", "", "JSON array of {start_at, end_at} windows for one day")
	cmd.Flags().StringVar(&date, "date", time.Now().In(availability.JST).Format(availability.DateLayout), "Day of --windows (YYYY-MM-DD)")
	cmd.Flags().StringVar(&therapistID, "therapist", "", "Therapist id for a week grid")
	cmd.Flags().StringSliceVar(&backends, "backend", nil, "Backend base URL; repeat for fallbacks")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML shift rules file")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Per-request backend timeout")
	return cmd
}
