package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/navarrs/a-star/pkg/engine/search"
	"github.com/navarrs/a-star/pkg/engine/world"
	"github.com/navarrs/a-star/pkg/planner/config"
	"github.com/navarrs/a-star/pkg/planner/devtools"
	"github.com/navarrs/a-star/pkg/planner/logging"
	"github.com/navarrs/a-star/pkg/planner/mapgen"
	"github.com/navarrs/a-star/pkg/planner/messages"
)

// Window size used when a text grid is shown as an image
const gridWindow = 12

var (
	configPath    string
	mapPath       string
	gridPath      string
	useDevGrid    bool
	heuristicName string
	logLevel      string
	logFile       string
	maxExpansions int
	dilation      int
	messagesPath  string
)

var rootCmd = &cobra.Command{
	Use:   "astar",
	Short: "A* path planning on occupancy grids",
	Long: `astar builds an occupancy grid from a map image (or a text grid) and plans
routes across it with A* using a manhattan, euclidean or octagonal heuristic.

Examples:
  astar plan --map maps/map1.png --start 2,3 --goal 40,60
  astar plan --grid level.txt --start 0,0 --goal 9,9 --heuristic octagonal --format yaml
  astar view --map maps/map1.png --config map.yml
  astar dump --dev --start 1,1 --goal 18,38`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if messagesPath != "" {
			return messages.Load(messagesPath)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Map configuration file (YAML); PLANNER_* variables override it")
	flags.StringVar(&mapPath, "map", "", "Map image (png, jpeg, gif, bmp, tiff, webp)")
	flags.StringVar(&gridPath, "grid", "", "Text grid file ('#' blocked, '.' free) instead of a map image")
	flags.BoolVar(&useDevGrid, "dev", false, "Use the built-in developer test grid")
	flags.StringVar(&heuristicName, "heuristic", search.Euclidean.String(), "Heuristic: manhattan, euclidean or octagonal")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error or quiet")
	flags.StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
	flags.IntVar(&maxExpansions, "max-expansions", 0, "Stop a search after this many expansions (0 = unbounded)")
	flags.IntVar(&dilation, "dilation", -1, "Override the configured obstacle dilation radius")
	flags.StringVar(&messagesPath, "messages", "", "Message catalogue (.po) replacing the built-in one")
	rootCmd.MarkFlagsMutuallyExclusive("map", "grid", "dev")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Style{color.FgRed, color.OpBold}.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

// newLogger builds the logger selected by --log-level and --log-file.
// The returned closer must be called when the command finishes.
func newLogger(stderr io.Writer) (*slog.Logger, func(), error) {
	level := logging.LevelFromString(logLevel)
	if logFile == "" {
		return logging.NewLogger(stderr, level), func() {}, nil
	}
	logger, f, err := logging.NewFileLogger(logFile, level)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logger, func() { f.Close() }, nil
}

// loadMap builds the map selected by --map, --grid or --dev.
func loadMap(logger *slog.Logger) (*mapgen.Map, error) {
	switch {
	case useDevGrid:
		logger.Debug("using developer grid")
		return mapgen.FromGrid(devtools.DevGrid(), gridWindow), nil
	case gridPath != "":
		data, err := os.ReadFile(gridPath)
		if err != nil {
			return nil, err
		}
		g, err := world.ParseGrid(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", gridPath, err)
		}
		if msg := g.Validate(); msg != "" {
			return nil, fmt.Errorf("%s: %s", gridPath, msg)
		}
		logger.Debug("loaded text grid", "path", gridPath, "rows", g.Height(), "cols", g.Width())
		return mapgen.FromGrid(g, gridWindow), nil
	case mapPath != "":
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if dilation >= 0 {
			cfg.Dilation = dilation
		}
		m, err := mapgen.Load(mapPath, cfg)
		if err != nil {
			return nil, err
		}
		if msg := m.Grid.Validate(); msg != "" {
			return nil, fmt.Errorf("%s: %s", mapPath, msg)
		}
		logger.Info("map loaded",
			"path", mapPath,
			"rows", m.Grid.Height(),
			"cols", m.Grid.Width(),
			"free_cells", m.Grid.FreeCount(),
		)
		return m, nil
	default:
		return nil, fmt.Errorf("no map: pass --map, --grid or --dev")
	}
}

// parseCell reads a cell written as "row,col".
func parseCell(s string) (world.Cell, error) {
	rowText, colText, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return world.Cell{}, fmt.Errorf("cell %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil {
		return world.Cell{}, fmt.Errorf("cell %q: bad row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil {
		return world.Cell{}, fmt.Errorf("cell %q: bad column: %w", s, err)
	}
	return world.NewCell(row, col), nil
}

// buildQuery combines the endpoints with the global search flags.
func buildQuery(startText, goalText string) (search.Query, error) {
	h, err := search.ParseHeuristic(heuristicName)
	if err != nil {
		return search.Query{}, err
	}
	start, err := parseCell(startText)
	if err != nil {
		return search.Query{}, fmt.Errorf("--start: %w", err)
	}
	goal, err := parseCell(goalText)
	if err != nil {
		return search.Query{}, fmt.Errorf("--goal: %w", err)
	}
	return search.Query{Start: start, Goal: goal, Heuristic: h, MaxExpansions: maxExpansions}, nil
}
