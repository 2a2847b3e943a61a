package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arroyo-labs/repoqa-cli/internal/adapters/driven/config/file"
	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

// stubSession implements driving.SessionService for testing.
type stubSession struct {
	repo    domain.Repo
	chunks  int
	loadErr error
	result  domain.QueryResult
}

func (s *stubSession) Load(_ context.Context, _ string) (domain.Repo, int, error) {
	if s.loadErr != nil {
		return domain.Repo{}, 0, s.loadErr
	}
	return s.repo, s.chunks, nil
}

func (s *stubSession) Ask(_ context.Context, _ string) (domain.QueryResult, error) {
	return s.result, nil
}

func (s *stubSession) CurrentRepo() string { return s.repo.String() }

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "repoqa version")
}

func TestAskCmd_NoServiceConfigured(t *testing.T) {
	oldService := sessionService
	sessionService = nil
	defer func() { sessionService = oldService }()

	_, err := execute(t, "ask", "github.com/octo/demo", "what is this?")
	assert.Error(t, err)
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	oldService := sessionService
	sessionService = &stubSession{
		repo:   domain.Repo{Owner: "octo", Name: "demo"},
		chunks: 7,
		result: domain.QueryResult{
			Answer: "It greets the world.",
			Evidence: []domain.Chunk{
				{FilePath: "hello.py"},
				{FilePath: "lib/util.py"},
			},
		},
	}
	defer func() { sessionService = oldService }()

	out, err := execute(t, "ask", "github.com/octo/demo", "what", "is", "this?")
	require.NoError(t, err)

	assert.Contains(t, out, "Indexed octo/demo (7 chunks)")
	assert.Contains(t, out, "It greets the world.")
	assert.Contains(t, out, "1. hello.py")
	assert.Contains(t, out, "2. lib/util.py")
}

func TestAskCmd_LoadError(t *testing.T) {
	oldService := sessionService
	sessionService = &stubSession{loadErr: domain.ErrRepoNotFound}
	defer func() { sessionService = oldService }()

	_, err := execute(t, "ask", "github.com/octo/gone", "anything?")
	assert.ErrorIs(t, err, domain.ErrRepoNotFound)
}

func TestConfigCmd_ShowAndSet(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	oldStore := configStore
	configStore = store
	defer func() { configStore = oldStore }()

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "(not set)")

	_, err = execute(t, "config", "set", "profile", "diverse")
	require.NoError(t, err)
	assert.Equal(t, "diverse", store.Config().Profile)

	_, err = execute(t, "config", "set", "profile", "bogus")
	assert.Error(t, err)
}
