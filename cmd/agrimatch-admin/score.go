package main

import (
	"context"
	"encoding/json"
	"fmt"

	"agri-match/internal/app"
	"agri-match/internal/domain/job"
	"agri-match/internal/domain/matching"
	"agri-match/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	scoreCandidate string
	scoreJob       string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Inspect match scores",
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the per-rule breakdown of a candidate/job score",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidateID, err := parseIDFlag("candidate", scoreCandidate)
		if err != nil {
			return err
		}
		jobID, err := parseIDFlag("job", scoreJob)
		if err != nil {
			return err
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			var (
				cand    profile.CandidateProfile
				posting job.Posting
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				cand, err = c.Profiles.GetByID(gctx, candidateID)
				return err
			})
			g.Go(func() error {
				var err error
				posting, err = c.Jobs.GetByID(gctx, jobID)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return printJSON(cmd, matching.Explain(cand, posting))
		})
	},
}

var rankJobsCmd = &cobra.Command{
	Use:   "rank-jobs",
	Short: "Rank active jobs for a candidate exactly as GET /matches does",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidateID, err := parseIDFlag("candidate", scoreCandidate)
		if err != nil {
			return err
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			items, err := c.Ranking.RankJobsForCandidate(ctx, candidateID)
			if err != nil {
				return err
			}

			type row struct {
				JobID      uuid.UUID `json:"job_id"`
				Title      string    `json:"title"`
				Location   string    `json:"location"`
				MatchScore int       `json:"match_score"`
			}
			out := make([]row, 0, len(items))
			for _, it := range items {
				out = append(out, row{JobID: it.Job.ID, Title: it.Job.Title, Location: it.Job.Location, MatchScore: it.MatchScore})
			}
			return printJSON(cmd, out)
		})
	},
}

func parseIDFlag(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s must be a uuid: %w", name, err)
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	scoreCmd.PersistentFlags().StringVar(&scoreCandidate, "candidate", "", "candidate profile id")
	explainCmd.Flags().StringVar(&scoreJob, "job", "", "job posting id")

	scoreCmd.AddCommand(explainCmd, rankJobsCmd)
	rootCmd.AddCommand(scoreCmd)
}
