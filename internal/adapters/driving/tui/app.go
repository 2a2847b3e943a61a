// Package tui implements the interactive question-and-answer shell:
// enter a repository URL, wait for indexing, ask questions in a loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driving"
	"github.com/arroyo-labs/repoqa-cli/internal/snippet"
)

// state identifies what the shell is currently doing.
type state int

const (
	stateRepoInput state = iota
	stateLoading
	stateQuestion
	stateAnswering
)

// Messages produced by the background commands.
type (
	repoLoadedMsg struct {
		repo   domain.Repo
		chunks int
	}
	loadFailedMsg struct{ err error }
	answerMsg     struct{ result domain.QueryResult }
	askFailedMsg  struct{ err error }
)

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// App is the bubbletea model of the shell.
type App struct {
	session driving.SessionService
	ctx     context.Context
	styles  Styles

	state   state
	input   textinput.Model
	spin    spinner.Model
	repo    string
	chunks  int
	pending string
	result  *domain.QueryResult
	err     error
	width   int
}

// NewApp creates the shell around a session service.
func NewApp(session driving.SessionService) *App {
	input := textinput.New()
	input.Placeholder = "github.com/owner/repo"
	input.Focus()
	input.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		session: session,
		ctx:     context.Background(),
		styles:  DefaultStyles(),
		state:   stateRepoInput,
		input:   input,
		spin:    spin,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if a.state == stateLoading || a.state == stateAnswering {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil

	case repoLoadedMsg:
		a.state = stateQuestion
		a.repo = msg.repo.String()
		a.chunks = msg.chunks
		a.result = nil
		a.err = nil
		a.input.Placeholder = "ask a question about the code"
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink

	case loadFailedMsg:
		a.state = stateRepoInput
		a.err = msg.err
		a.input.Focus()
		return a, textinput.Blink

	case answerMsg:
		a.state = stateQuestion
		a.result = &msg.result
		a.err = nil
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink

	case askFailedMsg:
		a.state = stateQuestion
		a.err = msg.err
		a.input.Focus()
		return a, textinput.Blink
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit

	case "ctrl+r":
		// Switch repository: back to the URL prompt.
		if a.state == stateQuestion || a.state == stateRepoInput {
			a.state = stateRepoInput
			a.err = nil
			a.input.Placeholder = "github.com/owner/repo"
			a.input.SetValue("")
			a.input.Focus()
		}
		return a, nil

	case "enter":
		return a.submit()
	}

	if a.state == stateLoading || a.state == stateAnswering {
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit acts on the current input depending on the state.
func (a *App) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(a.input.Value())
	if value == "" {
		return a, nil
	}

	switch a.state {
	case stateRepoInput:
		a.state = stateLoading
		a.pending = value
		a.err = nil
		return a, tea.Batch(a.spin.Tick, a.loadRepo(value))

	case stateQuestion:
		a.state = stateAnswering
		a.pending = value
		a.err = nil
		return a, tea.Batch(a.spin.Tick, a.ask(value))
	}
	return a, nil
}

// loadRepo ingests the repository in the background.
func (a *App) loadRepo(repoURL string) tea.Cmd {
	return func() tea.Msg {
		repo, chunks, err := a.session.Load(a.ctx, repoURL)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return repoLoadedMsg{repo: repo, chunks: chunks}
	}
}

// ask answers the question in the background.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.session.Ask(a.ctx, question)
		if err != nil {
			return askFailedMsg{err: err}
		}
		return answerMsg{result: result}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("repoqa"))
	if a.repo != "" {
		b.WriteString("  ")
		b.WriteString(a.styles.Repo.Render(a.repo))
		b.WriteString(a.styles.Label.Render(fmt.Sprintf("  (%d chunks)", a.chunks)))
	}
	b.WriteString("\n\n")

	switch a.state {
	case stateRepoInput:
		b.WriteString(a.styles.Prompt.Render("Which repository should I read?"))
		b.WriteString("\n")
		b.WriteString(a.input.View())

	case stateLoading:
		fmt.Fprintf(&b, "%s Indexing %s ...", a.spin.View(), a.pending)

	case stateQuestion:
		if a.result != nil {
			b.WriteString(a.renderResult())
			b.WriteString("\n")
		}
		b.WriteString(a.input.View())

	case stateAnswering:
		fmt.Fprintf(&b, "%s Thinking about %q ...", a.spin.View(), a.pending)
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
	}

	b.WriteString(a.styles.Help.Render("\nenter: submit • ctrl+r: switch repo • esc: quit"))
	return b.String()
}

// renderResult renders the last answer and its evidence snippets.
func (a *App) renderResult() string {
	var b strings.Builder

	b.WriteString(a.styles.Answer.Render(a.result.Answer))
	b.WriteString("\n")

	for i, chunk := range a.result.Evidence {
		label := fmt.Sprintf("%d. %s (%s)", i+1, chunk.FilePath, snippet.Language(chunk.FileExt))
		b.WriteString("\n")
		b.WriteString(a.styles.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(a.styles.Evidence.Render(snippet.Extract(chunk.Content, snippet.DefaultContextLines)))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the shell and blocks until it exits.
func Run(session driving.SessionService) error {
	program := tea.NewProgram(NewApp(session), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
