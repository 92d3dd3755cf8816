package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"drive-portfolio/pkg/client"
	"drive-portfolio/pkg/tui"
)

var logFile string

// newBrowseCmd creates a new command for browsing the portfolio in the terminal
func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the portfolio in the terminal",
		Long: `Browse the portfolio in the terminal. The listing is fetched from PORTFOLIO_API_URL;
when it cannot be reached a demonstration portfolio is shown instead.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				logrus.Fatalf("Failed to load configuration: %v", err)
			}

			// Log lines would corrupt the alt screen
			logrus.SetOutput(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					logrus.SetOutput(os.Stderr)
					logrus.Fatalf("Failed to open log file: %v", err)
				}
				defer f.Close()
				logrus.SetOutput(f)
			}

			m := tui.New(cmd.Context(), client.New(cfg.APIURL), tui.NewHTTPPreloader(nil))
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				logrus.SetOutput(os.Stderr)
				logrus.Fatalf("Browser error: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while browsing")
	return cmd
}
