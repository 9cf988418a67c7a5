package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"courseops/internal/board"
	"courseops/internal/config"
	"courseops/internal/tracker"
)

func newBoardCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		week  int
		list  bool
		token string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Maintain weekly sprint boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list {
				if err := requireWeekFlag(week); err != nil {
					return err
				}
			}

			return withTracker(cfg, token, func(t tracker.Tracker) error {
				m, err := board.New(t, cfg.RetryPolicy(), slog.Default().With("component", "board"))
				if err != nil {
					return err
				}

				if list {
					boards, err := m.Boards(cmd.Context())
					if err != nil {
						return err
					}
					if *jsonOutput {
						return writeJSON(boards)
					}
					for _, b := range boards {
						if err := writePlain("%s %s (created %s)\n", b.ID, b.Name, formatTime(b.CreatedAt)); err != nil {
							return err
						}
					}
					return nil
				}

				result, err := m.EnsureWeek(cmd.Context(), week)
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(boardReport(result))
				}
				return writeBoardResult(result)
			})
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "ensure the board for this course week")
	cmd.Flags().BoolVar(&list, "list", false, "list existing boards")
	cmd.Flags().StringVar(&token, "token", "", "tracker API token override")

	return cmd
}

type boardSummary struct {
	Board   tracker.Board `json:"board"`
	Created bool          `json:"created"`
	Added   []string      `json:"added"`
	Skipped []string      `json:"skipped"`
	Failed  []failureLine `json:"failed,omitempty"`
}

func boardReport(result board.Result) boardSummary {
	out := boardSummary{
		Board:   result.Board,
		Created: result.Created,
		Added:   result.Added,
		Skipped: result.Skipped,
	}
	for _, f := range result.Failed {
		out.Failed = append(out.Failed, failureLine{Title: f.ItemID, Error: f.Err.Error()})
	}
	return out
}

func writeBoardResult(result board.Result) error {
	verb := "reusing"
	if result.Created {
		verb = "created"
	}
	if err := writePlain("%s board %s %s\n", verb, result.Board.ID, result.Board.Name); err != nil {
		return err
	}
	if err := writePlain("added: %d\n", len(result.Added)); err != nil {
		return err
	}
	for _, id := range result.Added {
		if err := writePlain("  + %s\n", id); err != nil {
			return err
		}
	}
	if err := writePlain("already on board: %d\n", len(result.Skipped)); err != nil {
		return err
	}
	for _, f := range result.Failed {
		if err := writePlain("  ! %s: %v\n", f.ItemID, f.Err); err != nil {
			return err
		}
	}
	return nil
}
