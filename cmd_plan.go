package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navarrs/a-star/pkg/planner/render"
	"github.com/navarrs/a-star/pkg/planner/session"
)

var (
	planStart  string
	planGoal   string
	planFormat string
	planImage  string
	planShow   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a route between two cells",
	Long: `Plan a route between two cells of the map and print it.

Examples:
  astar plan --map maps/map1.png --start 2,3 --goal 40,60
  astar plan --grid level.txt --start 0,0 --goal 9,9 --format json
  astar plan --dev --start 1,1 --goal 18,38 --show --image route.png`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planStart, "start", "", "Start cell as row,col")
	planCmd.Flags().StringVar(&planGoal, "goal", "", "Goal cell as row,col")
	planCmd.Flags().StringVar(&planFormat, "format", session.FormatText, "Output format (text, yaml, json)")
	planCmd.Flags().StringVar(&planImage, "image", "", "Write the map with the route drawn on it to this PNG file")
	planCmd.Flags().BoolVar(&planShow, "show", false, "Print the grid with the route to the terminal")
	planCmd.MarkFlagRequired("start")
	planCmd.MarkFlagRequired("goal")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if !session.ValidFormat(planFormat) {
		return fmt.Errorf("unsupported format: %s", planFormat)
	}
	logger, closeLog, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	q, err := buildQuery(planStart, planGoal)
	if err != nil {
		return err
	}
	m, err := loadMap(logger)
	if err != nil {
		return err
	}

	s := session.New(m, logger)
	route, err := s.PlanRoute(q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if planShow {
		r := render.NewTerminal(out)
		r.Render(m.Grid, route.Cells(), q.Start, q.Goal)
	}
	if err := session.FormatRoute(out, route, planFormat); err != nil {
		return err
	}
	if planImage != "" {
		if err := render.SavePNG(planImage, render.Overlay(m, route.Cells(), q.Start, q.Goal)); err != nil {
			return err
		}
		logger.Info("route image written", "path", planImage)
	}
	return nil
}
