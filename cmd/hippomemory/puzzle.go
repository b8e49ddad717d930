package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vytor/hippomemory/internal/models"
)

func (a *app) puzzleCommand() *cobra.Command {
	var (
		difficulty string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "puzzle [day]",
		Short: "Print a day's puzzle (answers included)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := models.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			provider, err := a.provider(ctx)
			if err != nil {
				return err
			}
			day, err := dayArg(args, provider.Calendar().DayNumberForDate(a.now()))
			if err != nil {
				return err
			}
			view, err := provider.LoadDaily(ctx, day, d)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				raw, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(raw))
				return nil
			}
			fmt.Fprintf(out, "Day %d (%s) %s on %s: %d tiles, %ds to memorize\n",
				view.DayNumber, view.Date, view.Category, view.Difficulty, view.NumTiles, view.RevealTime)
			for i, item := range view.Items {
				fmt.Fprintf(out, "%3d  %s\n", i+1, item.Display())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(models.Medium), "easy, medium or hard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	return cmd
}
