package cli

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/khallinan12345/community-research-assistant/internal/cli/formatter"
	"github.com/khallinan12345/community-research-assistant/internal/domain"
)

// newInterviewCmd creates the "interview" subcommand running the interactive
// terminal interview. It requires a real terminal.
func newInterviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "interview",
		Short: "Run the guided interview in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errors.New("the interview requires an interactive terminal")
			}

			if !app.State.Village().Complete() {
				village, err := runIntroductionForm()
				if err != nil {
					return err
				}
				app.State.SetVillage(village)
			}

			model := newInterviewModel(app)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// runIntroductionForm captures the village identity before the interview
// starts. Name and country are mandatory; the role defaults to a generic
// community representative.
func runIntroductionForm() (domain.VillageInfo, error) {
	var village domain.VillageInfo

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Village or community name").
				Validate(requireValue("the village name is required")).
				Value(&village.Name),
			huh.NewInput().
				Title("Country").
				Validate(requireValue("the country is required")).
				Value(&village.Country),
			huh.NewInput().
				Title("Your role in the community").
				Placeholder("e.g. village chief, teacher, health worker").
				Value(&village.Role),
		),
	).WithTheme(researcherHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return domain.VillageInfo{}, err
	}

	village.Name = strings.TrimSpace(village.Name)
	village.Country = strings.TrimSpace(village.Country)
	village.Role = strings.TrimSpace(village.Role)
	return village, nil
}

func requireValue(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// researcherHuhTheme returns a custom huh theme using the terminal palette.
func researcherHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
