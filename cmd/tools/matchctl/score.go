// cmd/tools/matchctl/score.go
package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"matching-workers/internal/matching"
	"matching-workers/internal/models"
)

// guestFlags selects the guest either as a preference file or a search query.
type guestFlags struct {
	preferencePath string
	query          string
}

func (g *guestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.preferencePath, "preference", "", "Guest preference JSON file")
	cmd.Flags().StringVar(&g.query, "query", "", "Guest search query, e.g. \"priceMax=12000&mood=calm\"")
}

func (g *guestFlags) preference() (models.GuestPreference, error) {
	var pref models.GuestPreference
	switch {
	case g.preferencePath != "" && g.query != "":
		return pref, errors.New("use either --preference or --query")
	case g.preferencePath != "":
		return pref, readJSON(g.preferencePath, &pref)
	case g.query != "":
		values, err := url.ParseQuery(g.query)
		if err != nil {
			return pref, fmt.Errorf("parse query: %w", err)
		}
		intent, err := matching.ParseGuestIntent(values)
		if err != nil {
			return pref, err
		}
		return matching.BuildPreference(intent), nil
	}
	return pref, nil
}

func scoreCmd(a *app) *cobra.Command {
	var (
		guest         guestFlags
		therapistPath string
		core          float64
		availability  float64
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one guest against one therapist profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pref, err := guest.preference()
			if err != nil {
				return err
			}
			var therapist models.TherapistProfile
			if err := readJSON(therapistPath, &therapist); err != nil {
				return err
			}
			if core < 0 {
				core = matching.PerformanceCoreScorer{}.CoreScore(therapist)
			}
			if availability < 0 {
				availability = therapist.AvailabilityScore
			}

			result := matching.ComputeMatchingScore(pref, therapist, core, availability)
			a.logger.Debug("scored", map[string]interface{}{"therapistId": result.TherapistID, "score": result.Score})
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	guest.register(cmd)
	cmd.Flags().StringVar(&therapistPath, "therapist", "", "Therapist profile JSON file")
	cmd.Flags().Float64Var(&core, "core", -1, "Core-fit score; derived from the profile when negative")
	cmd.Flags().Float64Var(&availability, "availability", -1, "Availability score; the profile's own when negative")
	_ = cmd.MarkFlagRequired("therapist")
	return cmd
}

func rankCmd(a *app) *cobra.Command {
	var (
		guest          guestFlags
		candidatesPath string
		coreScoresPath string
		maxItems       int
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank candidate therapists for a guest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pref, err := guest.preference()
			if err != nil {
				return err
			}
			var candidates []models.TherapistProfile
			if err := readJSON(candidatesPath, &candidates); err != nil {
				return err
			}
			scores := map[string]float64{}
			if coreScoresPath != "" {
				if err := readJSON(coreScoresPath, &scores); err != nil {
					return err
				}
			}

			ranked := matching.RankMatchingCandidates(pref, candidates, matching.FallbackCoreScorer{
				Scores:   scores,
				Fallback: matching.PerformanceCoreScorer{},
			})
			if maxItems > 0 && len(ranked) > maxItems {
				ranked = ranked[:maxItems]
			}
			a.logger.Debug("ranked", map[string]interface{}{"candidates": len(candidates)})

			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"rankingId":        uuid.New().String(),
				"rankedCandidates": ranked,
				"totalCandidates":  len(candidates),
			})
		},
	}
	guest.register(cmd)
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "JSON array of therapist profiles")
	cmd.Flags().StringVar(&coreScoresPath, "core-scores", "", "JSON object of therapist id to core-fit score")
	cmd.Flags().IntVar(&maxItems, "max", 0, "Return at most this many candidates (0 keeps all)")
	_ = cmd.MarkFlagRequired("candidates")
	return cmd
}
