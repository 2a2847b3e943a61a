package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

// stubSession implements driving.SessionService for testing.
type stubSession struct {
	repo    domain.Repo
	chunks  int
	loadErr error
	result  domain.QueryResult
	askErr  error
	current string
}

func (s *stubSession) Load(_ context.Context, _ string) (domain.Repo, int, error) {
	if s.loadErr != nil {
		return domain.Repo{}, 0, s.loadErr
	}
	s.current = s.repo.String()
	return s.repo, s.chunks, nil
}

func (s *stubSession) Ask(_ context.Context, _ string) (domain.QueryResult, error) {
	if s.askErr != nil {
		return domain.QueryResult{}, s.askErr
	}
	return s.result, nil
}

func (s *stubSession) CurrentRepo() string { return s.current }

func keyPress(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enter() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typeString(t *testing.T, app *App, s string) *App {
	t.Helper()
	for _, r := range s {
		model, _ := app.Update(keyPress(r))
		app = model.(*App)
	}
	return app
}

func TestApp_StartsAtRepoPrompt(t *testing.T) {
	app := NewApp(&stubSession{})

	view := app.View()
	assert.Contains(t, view, "repoqa")
	assert.Contains(t, view, "Which repository")
}

func TestApp_LoadFlow(t *testing.T) {
	session := &stubSession{
		repo:   domain.Repo{Owner: "octo", Name: "demo"},
		chunks: 42,
	}
	app := NewApp(session)
	app = typeString(t, app, "github.com/octo/demo")

	model, cmd := app.Update(enter())
	app = model.(*App)
	require.NotNil(t, cmd)
	assert.Equal(t, stateLoading, app.state)
	assert.Contains(t, app.View(), "Indexing")

	model, _ = app.Update(repoLoadedMsg{repo: session.repo, chunks: session.chunks})
	app = model.(*App)
	assert.Equal(t, stateQuestion, app.state)

	view := app.View()
	assert.Contains(t, view, "octo/demo")
	assert.Contains(t, view, "42 chunks")
}

func TestApp_LoadFailureReturnsToPrompt(t *testing.T) {
	app := NewApp(&stubSession{})
	app.state = stateLoading

	model, _ := app.Update(loadFailedMsg{err: errors.New("repository not found")})
	app = model.(*App)

	assert.Equal(t, stateRepoInput, app.state)
	assert.Contains(t, app.View(), "repository not found")
}

func TestApp_AnswerRendersEvidence(t *testing.T) {
	app := NewApp(&stubSession{})
	app.state = stateQuestion
	app.repo = "octo/demo"

	result := domain.QueryResult{
		Answer: "The parser lives in parser.py.",
		Evidence: []domain.Chunk{
			{FilePath: "src/parser.py", FileExt: ".py", Content: "def parse(raw):\n    return raw"},
		},
	}
	model, _ := app.Update(answerMsg{result: result})
	app = model.(*App)

	view := app.View()
	assert.Contains(t, view, "The parser lives in parser.py.")
	assert.Contains(t, view, "src/parser.py")
	assert.Contains(t, view, "python")
	assert.Contains(t, view, "def parse(raw):")
}

func TestApp_SwitchRepoResetsPrompt(t *testing.T) {
	app := NewApp(&stubSession{})
	app.state = stateQuestion
	app.repo = "octo/demo"

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	app = model.(*App)

	assert.Equal(t, stateRepoInput, app.state)
	assert.Contains(t, app.View(), "Which repository")
}

func TestApp_InputIgnoredWhileBusy(t *testing.T) {
	app := NewApp(&stubSession{})
	app.state = stateAnswering
	before := app.input.Value()

	app = typeString(t, app, "xyz")
	assert.Equal(t, before, app.input.Value())
}

func TestApp_QuitKeys(t *testing.T) {
	app := NewApp(&stubSession{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
