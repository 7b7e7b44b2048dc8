package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/devtools"
	"github.com/navarrs/a-star/pkg/planner/session"
)

var (
	dumpStart string
	dumpGoal  string
	dumpOut   string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the occupancy grid as text",
	Long: `Write a debug dump of the occupancy grid: metadata, legend and an ASCII map
that --grid can read back. With --start and --goal the route is planned and
drawn on the map.

Examples:
  astar dump --map maps/map1.png --out grid.txt
  astar dump --dev --start 1,1 --goal 18,38`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpStart, "start", "", "Start cell as row,col")
	dumpCmd.Flags().StringVar(&dumpGoal, "goal", "", "Goal cell as row,col")
	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "Write the dump to this file instead of stdout")
	dumpCmd.MarkFlagsRequiredTogether("start", "goal")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := loadMap(logger)
	if err != nil {
		return err
	}

	start, goal := world.NewCell(-1, -1), world.NewCell(-1, -1)
	var path []world.Cell
	if dumpStart != "" {
		q, err := buildQuery(dumpStart, dumpGoal)
		if err != nil {
			return err
		}
		start, goal = q.Start, q.Goal
		res, err := session.New(m, logger).Plan(q)
		if err != nil {
			return err
		}
		path = res.Path
	}

	if dumpOut == "" {
		devtools.DumpGrid(cmd.OutOrStdout(), m.Grid, path, start, goal)
		return nil
	}
	written, err := devtools.DumpToFile(dumpOut, m.Grid, path, start, goal)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), written)
	return nil
}
