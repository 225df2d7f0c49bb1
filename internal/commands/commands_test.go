package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/NikitaCOEUR/cmdsuggest/internal/completion"
	"github.com/NikitaCOEUR/cmdsuggest/internal/config"
	"github.com/NikitaCOEUR/cmdsuggest/internal/console"
	"github.com/NikitaCOEUR/cmdsuggest/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) Write(string) {}

func (r *lineRecorder) Writeln(data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, data)
}

func (r *lineRecorder) OnData(func(string)) func() { return func() {} }

func (r *lineRecorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:        "warn",
		HistorySize:     20,
		WindowSize:      5,
		SpinnerInterval: 50 * time.Millisecond,
		Commands: map[string]config.CommandConfig{
			"deploy": {
				Description: "Deploy a service",
				Output:      "deploying {{ .Named.service }} to {{ .Named.env }}",
				Args: []config.ArgConfig{
					{Name: "env", Values: []string{"prod", "staging"}},
					{Name: "service", Exec: "echo {{ .Named.env }}-api; echo {{ .Named.env }}-web"},
				},
			},
			"login": {
				Args: []config.ArgConfig{
					{Name: "user", Values: []string{"alice"}, OnAccept: "{{ .Value | upper }}"},
					{Name: "password", Values: []string{"hunter2"}, Masked: true, ShowAlways: true},
					{Name: "note"},
				},
			},
			"echo": {},
		},
	}
}

func newSet(t *testing.T, cfg *config.Config) *Set {
	t.Helper()
	s, err := New(cfg, nil, nil)
	require.NoError(t, err)
	return s
}

func suggest(t *testing.T, s *Set, line string) []completion.Suggestion {
	t.Helper()
	args := completion.ParseArgs(line)
	provider, ok := s.providers[args.Command()]
	require.True(t, ok, "no provider for %s", args.Command())
	list, err := provider(context.Background(), args, nil)
	require.NoError(t, err)
	return list
}

func TestNew_Names(t *testing.T) {
	s := newSet(t, testConfig())
	assert.Equal(t, []string{"deploy", "echo", "exit", "help", "login"}, s.Names())
	assert.NotContains(t, s.providers, "echo", "commands without arguments are free")
}

func TestNew_InvalidOutputTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.Commands["broken"] = config.CommandConfig{Output: "{{ .Named"}

	_, err := New(cfg, nil, nil)
	require.Error(t, err)

	var valErr *derrors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "commands/broken/output", valErr.Field)
}

func TestOptions(t *testing.T) {
	s := newSet(t, testConfig())
	opts := s.Options()

	assert.Equal(t, 20, opts.HistorySize)
	assert.Equal(t, 5, opts.WindowSize)
	assert.Equal(t, 50*time.Millisecond, opts.SpinnerInterval)
	assert.False(t, opts.HistoryNavigation)
	assert.Len(t, opts.Commands, 5)
	assert.NotNil(t, opts.Logger)
}

func TestProvider_StaticValues(t *testing.T) {
	s := newSet(t, testConfig())

	list := suggest(t, s, "deploy ")
	assert.Equal(t, []string{"prod", "staging"}, []string{list[0].Label, list[1].Label})
	assert.False(t, list[0].Masked)
}

func TestProvider_PastLastArgIsFree(t *testing.T) {
	s := newSet(t, testConfig())
	assert.Nil(t, suggest(t, s, "deploy prod api "))
}

func TestProvider_FreeArg(t *testing.T) {
	s := newSet(t, testConfig())
	assert.Nil(t, suggest(t, s, "login alice pw "))
}

func TestProvider_Flags(t *testing.T) {
	s := newSet(t, testConfig())

	list := suggest(t, s, "login alice ")
	require.Len(t, list, 1)
	assert.True(t, list[0].Masked)
	assert.True(t, list[0].ShowAlways)
	assert.Nil(t, list[0].OnAccept)
}

func TestProvider_Exec(t *testing.T) {
	s := newSet(t, testConfig())

	list := suggest(t, s, "deploy staging ")
	require.Len(t, list, 2)
	assert.Equal(t, "staging-api", list[0].ID)
	assert.Equal(t, "staging-web", list[1].Label)
}

func TestProvider_ExecFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Commands["pods"] = config.CommandConfig{Args: []config.ArgConfig{
		{Name: "pod", Exec: "echo 'cluster unreachable' >&2; exit 1"},
	}}
	s := newSet(t, cfg)

	args := completion.ParseArgs("pods ")
	_, err := s.providers["pods"](context.Background(), args, nil)
	require.Error(t, err)

	var execErr *derrors.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Contains(t, err.Error(), "cluster unreachable")
}

func TestProvider_OnAccept(t *testing.T) {
	s := newSet(t, testConfig())

	list := suggest(t, s, "login ")
	require.Len(t, list, 1)
	require.NotNil(t, list[0].OnAccept)

	revised, err := list[0].OnAccept(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ALICE", revised.Label)
	assert.Equal(t, "alice", revised.ID)

	args := completion.ParseArgs("login ")
	assert.Equal(t, "login ALICE ", args.Replace(context.Background(), list[0]))
}

func TestProvider_OnAcceptEmptyResult(t *testing.T) {
	cfg := testConfig()
	cfg.Commands["pick"] = config.CommandConfig{Args: []config.ArgConfig{
		{Name: "v", Values: []string{"x"}, OnAccept: "{{ if false }}never{{ end }}"},
	}}
	s := newSet(t, cfg)

	list := suggest(t, s, "pick ")
	_, err := list[0].OnAccept(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewritten to nothing")
}

func TestHandler_Output(t *testing.T) {
	s := newSet(t, testConfig())
	term := &lineRecorder{}

	err := s.handlers["deploy"](context.Background(), completion.ParseArgs("deploy prod prod-api"), term)
	require.NoError(t, err)
	assert.Equal(t, []string{"deploying prod-api to prod"}, term.Lines())
}

func TestHandler_MultilineOutput(t *testing.T) {
	cfg := testConfig()
	cfg.Commands["list"] = config.CommandConfig{Output: "{{ range .Args }}{{ . }}\n{{ end }}"}
	s := newSet(t, cfg)
	term := &lineRecorder{}

	require.NoError(t, s.handlers["list"](context.Background(), completion.ParseArgs("list a b "), term))
	assert.Equal(t, []string{"a", "b"}, term.Lines())
}

func TestHandler_DefaultOutputMasksSecrets(t *testing.T) {
	s := newSet(t, testConfig())
	term := &lineRecorder{}

	args := completion.ParseArgs("login alice ")
	args.Replace(context.Background(), completion.Suggestion{ID: "pw", Label: "hunter2", Masked: true})
	args.Parse("login alice hunter2 hello")

	require.NoError(t, s.handlers["login"](context.Background(), args, term))
	assert.Equal(t, []string{"alice ******* hello"}, term.Lines())
}

func TestHandler_RenderFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Commands["boom"] = config.CommandConfig{Output: `{{ fail "no way" }}`}
	s := newSet(t, cfg)

	err := s.handlers["boom"](context.Background(), completion.ParseArgs("boom"), &lineRecorder{})
	require.Error(t, err)

	var handlerErr *derrors.HandlerError
	require.True(t, errors.As(err, &handlerErr))
	assert.Equal(t, "boom", handlerErr.Command)
}

func TestData(t *testing.T) {
	cfg := testConfig()
	cfg.ConfigDir = "/etc/cmdsuggest"
	s := newSet(t, cfg)

	args := completion.ParseArgs("deploy prod ")
	args.Replace(context.Background(), completion.Suggestion{ID: "svc-1", Label: "api"})

	data := s.data(args)
	assert.Equal(t, "deploy", data["Command"])
	assert.Equal(t, []string{"prod", "api"}, data["Args"])
	assert.Equal(t, map[string]string{"env": "prod", "service": "api"}, data["Named"])
	assert.Equal(t, map[string]string{"env": "prod", "service": "svc-1"}, data["IDs"])
	assert.Equal(t, "/etc/cmdsuggest", data["CONFIG_DIR"])
}

func TestHelp(t *testing.T) {
	s := newSet(t, testConfig())

	t.Run("lists every command", func(t *testing.T) {
		term := &lineRecorder{}
		require.NoError(t, s.help(context.Background(), completion.ParseArgs("help "), term))
		out := strings.Join(term.Lines(), "\n")
		assert.Contains(t, out, "deploy <env> <service>")
		assert.Contains(t, out, "exit")
	})

	t.Run("describes one command", func(t *testing.T) {
		term := &lineRecorder{}
		require.NoError(t, s.help(context.Background(), completion.ParseArgs("help deploy"), term))
		out := strings.Join(term.Lines(), "\n")
		assert.Contains(t, out, "Deploy a service")
		assert.NotContains(t, out, "login")
	})

	t.Run("unknown command", func(t *testing.T) {
		err := s.help(context.Background(), completion.ParseArgs("help nope"), &lineRecorder{})
		var unknown *derrors.UnknownCommandError
		assert.True(t, errors.As(err, &unknown))
	})

	t.Run("suggests command names", func(t *testing.T) {
		list := suggest(t, s, "help ")
		assert.Len(t, list, 5)
		assert.Nil(t, suggest(t, s, "help deploy "))
	})
}

func TestExit(t *testing.T) {
	called := false
	s, err := New(testConfig(), nil, func() { called = true })
	require.NoError(t, err)

	require.NoError(t, s.handlers["exit"](context.Background(), completion.ParseArgs("exit"), &lineRecorder{}))
	assert.True(t, called)

	noExit := newSet(t, testConfig())
	assert.NoError(t, noExit.handlers["exit"](context.Background(), completion.ParseArgs("exit"), &lineRecorder{}))
}

func TestSession(t *testing.T) {
	s := newSet(t, testConfig())
	c := console.New(s.Options())
	term := &lineRecorder{}
	defer c.Activate(context.Background(), term)()

	for _, r := range "dep st " {
		require.True(t, c.HandleData(context.Background(), string(r)))
	}
	require.Equal(t, "deploy staging ", c.Line())

	// second exec value, then run
	for _, key := range []string{"\x1b[B", "\t", "\r"} {
		require.True(t, c.HandleData(context.Background(), key))
	}

	assert.Equal(t, []string{"deploying staging-web to staging"}, term.Lines())
	assert.Equal(t, []string{"deploy staging staging-web"}, c.History())
}
