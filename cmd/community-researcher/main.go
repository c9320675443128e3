package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/khallinan12345/community-research-assistant/internal/cli"
	"github.com/khallinan12345/community-research-assistant/internal/config"
	"github.com/khallinan12345/community-research-assistant/internal/fetch"
	"github.com/khallinan12345/community-research-assistant/internal/llm"
	"github.com/khallinan12345/community-research-assistant/internal/search"
	"github.com/khallinan12345/community-research-assistant/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	completion := llm.NewClient(llmCfg, observer)
	searcher := search.NewClient(search.LoadConfig())

	state := service.NewState()

	app := &cli.App{
		State:     state,
		Interview: service.NewInterviewService(state, completion),
		Research:  service.NewResearchService(state, completion, searcher),
		Assets:    service.NewAssetsService(state, completion),
		Report:    service.NewReportService(state, completion),
		Fetcher:   fetch.NewFetcher(),
		Config:    config.Load(),
	}

	// Detect interactive terminal for the interview entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
