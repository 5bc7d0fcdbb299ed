package main

import (
	"flag"
	"log"
	"os"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleetgrid/internal/config"
	"fleetgrid/internal/ui"
)

func main() {
	log.SetOutput(os.Stderr)

	cfg := config.Default()
	var configPath string
	flag.StringVar(&configPath, "config", "", "Optional YAML config file (flags override it)")
	flag.IntVar(&cfg.TotalRows, "rows", cfg.TotalRows, "Number of rows to generate")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "Rows generated per chunk")
	flag.IntVar(&cfg.ItemHeight, "item-height", cfg.ItemHeight, "Lines per table row")
	flag.IntVar(&cfg.Overscan, "overscan", cfg.Overscan, "Extra rows rendered above and below the viewport")
	flag.IntVar(&cfg.FrameFPS, "frame-fps", cfg.FrameFPS, "Window recompute rate (frames per second)")
	flag.IntVar(&cfg.PlotFPS, "plot-fps", cfg.PlotFPS, "Detail sparkline refresh rate (frames per second)")
	flag.IntVar(&cfg.ViewSplit, "view-split", cfg.ViewSplit, "Table pane width as % of the screen [20,80]")
	flag.DurationVar(&cfg.SearchDebounce, "search-debounce", cfg.SearchDebounce, "Delay before typed search text takes effect")
	flag.BoolVar(&cfg.StatsEnabled, "stats", cfg.StatsEnabled, "Show runtime performance stats")
	flag.IntVar(&cfg.StatsWindow, "stats-window", cfg.StatsWindow, "Number of recent samples kept per metric")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write a debug log to this file")
	flag.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Use the terminal alternate screen buffer")
	flag.Parse()

	if configPath != "" {
		fromFlags := cfg
		cfg = config.Default()
		if err := cfg.LoadFile(configPath); err != nil {
			log.Fatal(err)
		}
		applyFlagOverrides(&cfg, fromFlags)
	}
	if err := cfg.ValidateAndNormalize(); err != nil {
		log.Fatal(err)
	}

	if !term.IsTerminal(os.Stdout.Fd()) {
		log.Fatal("fleetgrid renders to a terminal; stdout is not one")
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	logger.Info().Int("rows", cfg.TotalRows).Int("chunk_size", cfg.ChunkSize).Msg("starting")

	opts := []tui.ProgramOption{tui.WithInputTTY(), tui.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	if _, err := tui.NewProgram(ui.New(cfg, logger), opts...).Run(); err != nil {
		log.Fatal(err)
	}
}

// applyFlagOverrides copies values for flags that were explicitly set on the
// command line over the file-loaded config.
func applyFlagOverrides(dst *config.Config, fromFlags config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			dst.TotalRows = fromFlags.TotalRows
		case "chunk-size":
			dst.ChunkSize = fromFlags.ChunkSize
		case "item-height":
			dst.ItemHeight = fromFlags.ItemHeight
		case "overscan":
			dst.Overscan = fromFlags.Overscan
		case "frame-fps":
			dst.FrameFPS = fromFlags.FrameFPS
		case "plot-fps":
			dst.PlotFPS = fromFlags.PlotFPS
		case "view-split":
			dst.ViewSplit = fromFlags.ViewSplit
		case "search-debounce":
			dst.SearchDebounce = fromFlags.SearchDebounce
		case "stats":
			dst.StatsEnabled = fromFlags.StatsEnabled
		case "stats-window":
			dst.StatsWindow = fromFlags.StatsWindow
		case "log-file":
			dst.LogFile = fromFlags.LogFile
		case "alt-screen":
			dst.AltScreen = fromFlags.AltScreen
		}
	})
}

// newLogger returns a Nop logger unless a log file is configured; the TUI
// owns stdout, so there is nowhere else sensible to write.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	logger := zerolog.New(f).With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()
	return logger, func() { _ = f.Close() }, nil
}
