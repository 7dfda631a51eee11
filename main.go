package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/THANGADHIWAN/focal/cmd"
	"github.com/THANGADHIWAN/focal/internal/conf"
	"github.com/THANGADHIWAN/focal/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading settings: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	var closeLog func() error
	if settings.Main.Log.Enabled {
		closeLog, err = logging.InitFile(settings.Main.Log.Path, level, logging.FileLoggerOptions{
			MaxSizeMB:  settings.Main.Log.MaxSizeMB,
			MaxBackups: settings.Main.Log.MaxBackups,
			MaxAgeDays: settings.Main.Log.MaxAgeDays,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
	}

	rootCmd := cmd.RootCommand(settings)
	rootCmd.Version = version

	err = rootCmd.Execute()
	if closeLog != nil {
		_ = closeLog()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
