package main

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/vytor/hippomemory/internal/engine"
	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/models"
	"github.com/vytor/hippomemory/internal/stats"
	"github.com/vytor/hippomemory/internal/terminal"
)

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streaks, totals and the solve distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			p, err := rt.progress.Load(ctx)
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), p, rt.today(a.now()))
			return nil
		},
	}
}

func writeStats(out io.Writer, p *models.UserProgress, today int) {
	fastest := "-"
	if p.FastestTime != nil {
		fastest = stats.FormatClock(*p.FastestTime)
	}
	average := "-"
	if p.TotalGamesWon > 0 {
		average = stats.FormatClock(int(math.Round(p.AverageTimeToComplete)))
	}

	fmt.Fprintf(out, "Played:         %d\n", p.TotalGamesPlayed)
	fmt.Fprintf(out, "Win %%:          %d\n", stats.WinPercent(p))
	fmt.Fprintf(out, "Current streak: %d\n", p.AttemptStreak)
	fmt.Fprintf(out, "Win streak:     %d\n", p.WinStreak)
	fmt.Fprintf(out, "Longest streak: %d\n", p.LongestStreak)
	fmt.Fprintf(out, "Fastest:        %s\n", fastest)
	fmt.Fprintf(out, "Average:        %s\n", average)
	fmt.Fprintln(out, "Solved in round:")
	for r := 1; r <= models.MaxRounds; r++ {
		fmt.Fprintf(out, "  %d: %d\n", r, p.SolveDistribution[r])
	}

	switch rec, ok := p.Completions[today]; {
	case ok && rec.Won:
		fmt.Fprintf(out, "Today: won on %s in %d rounds\n", rec.Difficulty, rec.RoundsCompleted)
	case ok:
		fmt.Fprintf(out, "Today: lost on %s\n", rec.Difficulty)
	case p.InProgress != nil && p.InProgress.DayNumber == today:
		fmt.Fprintf(out, "Today: in progress (%s)\n", p.InProgress.Difficulty)
	default:
		fmt.Fprintln(out, "Today: not played")
	}
}

func (a *app) shareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "share [day]",
		Short: "Print the share card for a finished day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			day, err := dayArg(args, rt.today(a.now()))
			if err != nil {
				return err
			}
			r, p, err := completedReview(ctx, rt, day)
			if err != nil {
				return err
			}
			text, ok := r.ShareText(p.WinStreak)
			if !ok {
				return errors.NewValidationError("share", fmt.Sprintf("day %d was recorded without round scores", day))
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func (a *app) reviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review [day]",
		Short: "Show a finished day's board with each guess",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			day, err := dayArg(args, rt.today(a.now()))
			if err != nil {
				return err
			}
			r, _, err := completedReview(ctx, rt, day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), terminal.FormatReview(r))
			return nil
		},
	}
}

func (a *app) resetCommand() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget today's result and any saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.NewValidationError("yes", "reset discards today's result; rerun with --yes")
			}
			ctx := cmd.Context()
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			reset, err := rt.progress.ResetDay(ctx, rt.today(a.now()))
			if err != nil {
				return err
			}
			if reset {
				fmt.Fprintln(cmd.OutOrStdout(), "Today's progress was reset.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to reset today.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "confirm the reset")
	return cmd
}

func completedReview(ctx context.Context, rt *runtime, day int) (*engine.Review, *models.UserProgress, error) {
	p, err := rt.progress.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	rec, ok := p.Completions[day]
	if !ok || !rec.Completed {
		return nil, nil, errors.NewNotFoundError("completed puzzle", day)
	}
	view, err := rt.provider.LoadDaily(ctx, day, rec.Difficulty)
	if err != nil {
		return nil, nil, err
	}
	r := engine.BuildReview(view, rec)
	return &r, p, nil
}
