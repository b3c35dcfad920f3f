package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"igc_reader/internal/config"
	"igc_reader/internal/database"
	"igc_reader/internal/igcfile"
	"igc_reader/internal/report"
	"igc_reader/internal/track"

	"gopkg.in/natefinch/lumberjack.v2"
)

// exitFailure is returned for every failed invocation
const exitFailure = -1

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// stdout carries the report, logs go elsewhere
	var w io.Writer = os.Stderr
	if cfg.Log.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    16, // MB
			MaxBackups: 3,
			MaxAge:     30,
		}
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("igc_reader", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	format := fs.String("format", "", "Report format: text, json or msgpack")
	geojsonPath := fs.String("geojson", "", "Write the flight track to this GeoJSON file")
	dbPath := fs.String("db", "", "Archive the flight in this SQLite database")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: igc_reader [flags] <file.igc>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	if *configPath != "" {
		os.Setenv("IGC_READER_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// Logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		return exitFailure
	}

	if *format != "" {
		cfg.Report.Format = strings.ToLower(*format)
	}
	if *geojsonPath != "" {
		cfg.GeoJSONPath = *geojsonPath
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if err := config.Validate(cfg); err != nil {
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Invalid command line override", "error", err)
		return exitFailure
	}

	initLogger(cfg)

	if fs.NArg() < 1 || fs.Arg(0) == "" {
		fs.Usage()
		return exitFailure
	}
	path := fs.Arg(0)

	flight, err := igcfile.NewDecoder().DecodeFile(path)
	if errors.Is(err, igcfile.ErrInputUnavailable) {
		slog.Error("Input file unavailable", "path", path, "error", err)
		return exitFailure
	}
	if err != nil {
		slog.Error("Failed to decode IGC file", "path", path, "error", err)
		return exitFailure
	}

	slog.Info("Decoded IGC file",
		"path", path,
		"fix_count", flight.FixCount(),
		"pilot", flight.Header.Pilot,
		"utc_date", flight.Header.UTCDate,
	)

	if cfg.Report.Format == report.FormatText {
		fmt.Fprintf(stdout, "File: %s\n", path)
	}
	if err := report.Write(stdout, cfg.Report.Format, flight); err != nil {
		slog.Error("Failed to write report", "error", err)
		return exitFailure
	}

	if cfg.GeoJSONPath != "" {
		if err := track.WriteGeoJSON(cfg.GeoJSONPath, flight); err != nil {
			slog.Error("Failed to export track", "path", cfg.GeoJSONPath, "error", err)
			return exitFailure
		}
		slog.Info("Exported track", "path", cfg.GeoJSONPath)
	}

	if cfg.DBPath != "" {
		db, err := database.New(cfg.DBPath, cfg.DBBatchSize)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			return exitFailure
		}
		defer db.Close()

		id, err := db.SaveFlight(path, flight)
		if err != nil {
			slog.Error("Failed to archive flight", "db_path", cfg.DBPath, "error", err)
			return exitFailure
		}
		slog.Info("Archived flight", "db_path", cfg.DBPath, "flight_id", id)
	}

	return 0
}
