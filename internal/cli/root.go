// Package cli wires the cobra command tree and the interactive terminal
// interview built on bubbletea.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/khallinan12345/community-research-assistant/internal/config"
	"github.com/khallinan12345/community-research-assistant/internal/fetch"
	"github.com/khallinan12345/community-research-assistant/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	State     *service.State
	Interview service.InterviewService
	Research  service.ResearchService
	Assets    service.AssetsService
	Report    service.ReportService
	Fetcher   *fetch.Fetcher
	Config    config.Config

	// IsInteractive reports whether stdin is an interactive terminal; the
	// interview command refuses to run without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "community-researcher" command and
// registers all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "community-researcher",
		Short: "Guided community interview, research, and reporting",
	}

	root.AddCommand(
		newServeCmd(app),
		newInterviewCmd(app),
	)

	return root
}
