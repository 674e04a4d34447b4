package cmd

import (
	"fmt"
	"io"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell event log.",
}

// readEvents feeds every entry of the configured event log to handler.
func readEvents(handler func(le *logger.LogEntry)) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	fd, err := config.ReadEventLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	return logger.ReadJSONLinesLog(fd, handler)
}

func printYAML(w io.Writer, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(out))
	return nil
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var report logger.Report
		if err := readEvents(report.Update); err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), &report)
	},
}

var bugsCommand = &cobra.Command{
	Use:   "bugs",
	Short: "Show failed executions and syntax errors.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		report := logger.NewBugReport()
		if err := readEvents(report.Update); err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), report)
	},
}

var sessionsCommand = &cobra.Command{
	Use:   "sessions",
	Short: "Show the commands run by each session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		report := &logger.InteractionReport{}
		if err := readEvents(report.Update); err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(bugsCommand)
	eventsCmd.AddCommand(sessionsCommand)
}
