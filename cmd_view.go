package main

import (
	"github.com/spf13/cobra"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/planner/session"
	"github.com/navarrs/a-star/pkg/planner/viewer"
)

var viewSnapshots string

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the map in a window and pick routes with the mouse",
	Long: `Open the map in a window. Click once to place the start and again to place
the goal; the route is planned and drawn. Keys 1, 2 and 3 switch between the
manhattan, euclidean and octagonal heuristics, R resets, S saves a snapshot
and Esc quits. Each planned route is also printed as ->(row,col) steps.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewSnapshots, "snapshots", ".", "Directory for snapshots saved with S")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	h, err := search.ParseHeuristic(heuristicName)
	if err != nil {
		return err
	}
	m, err := loadMap(logger)
	if err != nil {
		return err
	}

	v := viewer.New(session.New(m, logger), h, logger)
	v.SetTrace(cmd.OutOrStdout())
	v.SetMaxExpansions(maxExpansions)
	v.SetSnapshotDir(viewSnapshots)
	return v.Run()
}
