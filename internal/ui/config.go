package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/luach/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  luach config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.OutOrStdout(), bufio.NewReader(os.Stdin), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(out io.Writer, reader *bufio.Reader, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	if !promptYesNo(out, reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.School.ID = promptValue(out, reader, "School id", cfg.School.ID)
	cfg.School.Classes = promptSlice(out, reader, "Classes (comma-separated)", cfg.School.Classes)
	cfg.School.DefaultClass = promptValue(out, reader, "Default class", cfg.School.DefaultClass)
	cfg.Exams.Season = promptValue(out, reader, "Exam season (summer/winter)", cfg.Exams.Season)
	cfg.Exams.Source = promptValue(out, reader, "Timetable source", cfg.Exams.Source)
	cfg.Storage.DBPath = promptValue(out, reader, "Database path", cfg.Storage.DBPath)
	cfg.Log.Level = promptValue(out, reader, "Log level", cfg.Log.Level)
	cfg.Log.Format = promptValue(out, reader, "Log format (console/json)", cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[school]")
	fmt.Fprintf(out, "  id            = %s\n", cfg.School.ID)
	fmt.Fprintf(out, "  default_class = %s\n", cfg.School.DefaultClass)
	fmt.Fprintf(out, "  classes       = %s\n", strings.Join(cfg.School.Classes, ", "))
	fmt.Fprintln(out, "\n[exams]")
	fmt.Fprintf(out, "  season        = %s\n", cfg.Exams.Season)
	fmt.Fprintf(out, "  source        = %s\n", cfg.Exams.Source)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path       = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level         = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  format        = %s\n", cfg.Log.Format)
}

func promptYesNo(out io.Writer, reader *bufio.Reader, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(out io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(out io.Writer, reader *bufio.Reader, label string, current []string) []string {
	fmt.Fprintf(out, "  %s [%s]: ", label, strings.Join(current, ", "))
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
