package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/config"
	"github.com/Veraticus/veggie-board/internal/tui"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive price board",
		Long: `Start the full screen price board. It opens on the page you last left
unless --page is given. Logs go to the log file while it runs.`,
		RunE: runTUI,
	}

	cmd.Flags().String("page", "", "start page (landing, price-board, dashboard, login, signup)")
	cmd.Flags().String("theme", "", "color theme ("+strings.Join(themes.Names, ", ")+")")
	cmd.Flags().String("record", "", "write a frame-by-frame recording to this directory")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Logging to the terminal would corrupt the screen.
	logPath := config.ResolvePath(viper.GetString("logging.file"), config.DefaultLogPath)
	logFile, err := openLogFile(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	if err := setupLogging(logFile); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
	}

	if page, _ := cmd.Flags().GetString("page"); page != "" {
		start, ok := tui.ParsePage(page)
		if !ok {
			return fmt.Errorf("%w: unknown page %q", common.ErrInvalidConfig, page)
		}
		opts = append(opts, tui.WithStartPage(start))
	}
	if dir, _ := cmd.Flags().GetString("record"); dir != "" {
		opts = append(opts, tui.WithRecording(config.ExpandPath(dir)))
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	opts = append(opts, tui.WithClient(a.client), tui.WithSession(a.session))

	slog.Info("Starting TUI", "api", a.client.BaseURL(), "log", logPath)
	return tui.Run(ctx, opts...)
}
