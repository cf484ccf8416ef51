package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lexiqai/ttsdesk/internal/config"
	"github.com/lexiqai/ttsdesk/internal/converter"
	"github.com/lexiqai/ttsdesk/internal/observability"
	"github.com/lexiqai/ttsdesk/internal/ui"
)

var (
	version   = "dev"
	gitCommit string
)

func formatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// setup loads configuration, starts logging and builds the app.
// The returned cleanup closes the log file.
func setup(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logFile, err := observability.OpenLogFile(cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty, logFile)

	a, err := newApp(ctx, cfg)
	if err != nil {
		logFile.Close()
		return nil, nil, err
	}
	return a, func() { logFile.Close() }, nil
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ttsdesk",
		Short:         "Convert text to speech and save it as an audio file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return runUI(cmd.Context(), a)
		},
	}

	cmd.AddCommand(
		newLanguagesCommand(),
		newSayCommand(),
		newVersionCommand(),
	)

	return cmd
}

func runUI(ctx context.Context, a *app) error {
	observability.Version = formatVersion()
	if a.cfg.MetricsEnabled {
		a.startMetricsServer(ctx)
	}

	a.logger.Info().Str("version", formatVersion()).Msg("Starting text to speech desk")

	// Conversions still running when the UI exits are cancelled.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewModel(ctx, a.catalog, a.defaultLanguage(), a.worker)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui exited: %w", err)
	}

	a.logger.Info().Msg("Text to speech desk exited")
	return nil
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List supported languages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			def := a.defaultLanguage()
			out := cmd.OutOrStdout()
			for i, e := range a.catalog.Entries() {
				marker := " "
				if i == def {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, e.Label())
			}
			return nil
		},
	}
}

func newSayCommand() *cobra.Command {
	var (
		lang string
		slow bool
	)

	cmd := &cobra.Command{
		Use:   "say [text...]",
		Short: "Convert text once without the interactive UI",
		Long:  "Convert the given text, or standard input when no text is given, and print the saved file path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}

			a, cleanup, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			code := lang
			if code == "" {
				code = a.catalog.At(a.defaultLanguage()).Code
			}

			res := a.worker.Convert(cmd.Context(), converter.Request{
				Text:         text,
				LanguageCode: code,
				Slow:         slow,
			})
			if !res.OK() {
				return res.Err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.FilePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language code (default: configured or English)")
	cmd.Flags().BoolVarP(&slow, "slow", "s", false, "speak slowly")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ttsdesk %s\n", formatVersion())
		},
	}
}
