// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/staranto/heroctl/internal/catalog"
	"github.com/staranto/heroctl/internal/config"
	"github.com/staranto/heroctl/internal/hero"
	"github.com/staranto/heroctl/internal/meta"
	"github.com/staranto/heroctl/internal/session"
	"github.com/staranto/heroctl/internal/tui"
)

const aBombJSON = `{"id": 1, "name": "A-Bomb",
  "biography": {"fullName": "Richard Milhouse Jones", "publisher": "Marvel Comics", "alignment": "good"},
  "powerstats": {"intelligence": 38, "strength": 100, "speed": 17, "durability": 80, "power": 24, "combat": 64}}`

const abeJSON = `{"id": 2, "name": "Abe Sapien",
  "biography": {"fullName": "Abraham Sapien", "publisher": null, "alignment": "good"},
  "powerstats": {"intelligence": 88, "strength": 18, "speed": 35, "durability": 42, "power": 52, "combat": 65}}`

const catalogJSON = "[" + aBombJSON + "," + abeJSON + "]"

// useConfig points the config layer at a file holding body, or at nothing when
// body is empty.
func useConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if body != "" {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	t.Setenv(config.EnvPath, path)

	saved := config.Config
	t.Cleanup(func() { config.Config = saved })
	config.Config = config.Type{}
	cfg = config.Type{Source: path}
	if body != "" {
		var err error
		cfg, err = config.Load(path)
		require.NoError(t, err)
	}
}

func catalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// run builds the app and runs heroctl with args, returning what it wrote.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	args = append([]string{"heroctl"}, args...)

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	err = app.Run(context.Background(), args)
	return buf.String(), err
}

func TestInitApp(t *testing.T) {
	useConfig(t, "")

	app, err := InitApp(context.Background(), []string{"heroctl", "catalog"})
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"random", "catalog", "tui", "completion"}, names)
	assert.Equal(t, "catalog", config.Config.Namespace)

	for _, c := range app.Commands {
		for i := 1; i < len(c.Flags); i++ {
			assert.LessOrEqual(t, c.Flags[i-1].Names()[0], c.Flags[i].Names()[0], "%s flags not sorted", c.Name)
		}
	}

	// Every command shares the one tracker.
	var trackers []*session.Tracker
	for _, c := range app.Commands {
		trackers = append(trackers, GetMeta(c).Tracker)
	}
	require.NotNil(t, trackers[0])
	for _, tr := range trackers {
		assert.Same(t, trackers[0], tr)
	}
}

func TestInitApp_FlagNamespace(t *testing.T) {
	useConfig(t, "")

	_, err := InitApp(context.Background(), []string{"heroctl", "--url", "https://example.com", "random"})
	require.NoError(t, err)
	assert.Equal(t, "", config.Config.Namespace)
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{Metadata: map[string]any{"meta": "nope"}}))

	m := meta.Meta{Args: []string{"heroctl", "random"}}
	assert.Equal(t, m, GetMeta(&cli.Command{Metadata: map[string]any{"meta": m}}))
}

func TestTracker(t *testing.T) {
	assert.NotNil(t, Tracker(meta.Meta{}))

	tr := session.New()
	assert.Same(t, tr, Tracker(meta.Meta{Tracker: tr}))
}

func TestCatalog_JSON(t *testing.T) {
	useConfig(t, "")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "catalog", "-o", "json", "-s", "-total")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	require.True(t, doc.IsArray(), out)
	assert.Equal(t, []string{"A-Bomb", "Abe Sapien"}, toStrings(doc.Get("#.name").Array()))
	assert.Equal(t, "Marvel Comics", doc.Get("0.publisher").String())
	assert.Equal(t, "Unknown", doc.Get("1.publisher").String())
	assert.Equal(t, int64(323), doc.Get("0.total").Int())
	assert.Equal(t, int64(300), doc.Get("1.total").Int())
}

func TestCatalog_Attrs(t *testing.T) {
	useConfig(t, "")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "catalog", "-o", "json",
		"-a", "!id,name::u,biography.fullName:real")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.False(t, doc.Get("0.id").Exists())
	assert.Equal(t, "A-BOMB", doc.Get("0.name").String())
	assert.Equal(t, "Abraham Sapien", doc.Get("1.real").String())
}

func TestCatalog_Text(t *testing.T) {
	useConfig(t, "")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "catalog", "--titles", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "publisher")
	assert.Contains(t, out, "A-Bomb")
	assert.Contains(t, out, "Unknown")
}

func TestCatalog_Raw(t *testing.T) {
	useConfig(t, "")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "catalog", "-o", "raw")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.Get(out, "#").Int())
	assert.Equal(t, "Richard Milhouse Jones", gjson.Get(out, "0.biography.fullName").String())
}

func TestCatalog_BadOutput(t *testing.T) {
	useConfig(t, "")

	_, err := run(t, "catalog", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestRandom_JSONWithHistory(t *testing.T) {
	useConfig(t, "")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "random", "-n", "5", "-o", "json", "--history")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	assert.Len(t, doc.Get("heroes").Array(), 5)

	history := doc.Get("history.#.id").Array()
	assert.NotEmpty(t, history)
	assert.LessOrEqual(t, len(history), 2)
	if len(history) == 2 {
		assert.NotEqual(t, history[0].Int(), history[1].Int())
	}
}

func TestRandom_YAML(t *testing.T) {
	useConfig(t, "")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "random", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: A")
	assert.Contains(t, out, "powerstats:")
}

func TestRandom_Card(t *testing.T) {
	useConfig(t, "")
	srv := catalogServer(t, http.StatusOK, "["+aBombJSON+"]")

	out, err := run(t, "--url", srv.URL, "random", "--history", "--titles")
	require.NoError(t, err)
	assert.Contains(t, out, "A-Bomb")
	assert.Contains(t, out, "Richard Milhouse Jones")
	assert.Contains(t, out, "323/600")
	assert.Contains(t, out, "History")
}

func TestRandom_CountFromConfig(t *testing.T) {
	useConfig(t, "random:\n  count: 3\n")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "random", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, gjson.Parse(out).Array(), 3)
}

func TestRandom_Errors(t *testing.T) {
	useConfig(t, "")

	t.Run("zero count", func(t *testing.T) {
		_, err := run(t, "random", "-n", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--count must be at least 1")
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := run(t, "--url", "ftp://example.com/all.json", "random")
		assert.ErrorIs(t, err, catalog.ErrInvalidURL)
	})

	t.Run("server error", func(t *testing.T) {
		srv := catalogServer(t, http.StatusInternalServerError, "boom")
		_, err := run(t, "--url", srv.URL, "random")
		var reqErr *catalog.RequestError
		assert.True(t, errors.As(err, &reqErr), "got %v", err)
	})

	t.Run("bad document", func(t *testing.T) {
		srv := catalogServer(t, http.StatusOK, `{"not": "an array"}`)
		_, err := run(t, "--url", srv.URL, "random")
		assert.ErrorIs(t, err, catalog.ErrDecoding)
	})

	t.Run("empty catalog", func(t *testing.T) {
		srv := catalogServer(t, http.StatusOK, `[]`)
		_, err := run(t, "--url", srv.URL, "random")
		assert.ErrorIs(t, err, catalog.ErrNoData)
	})

	t.Run("huge count", func(t *testing.T) {
		_, err := run(t, "random", "-n", "1000000000000")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--count must be at most 1000")
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := run(t, "--timeout=-1s", "random")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--timeout must not be negative")
	})
}

func TestRandom_SchemaAndExamples(t *testing.T) {
	useConfig(t, "")

	out, err := run(t, "random", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema for Record --")
	assert.Contains(t, out, "biography.publisher")

	out, err = run(t, "random", "--examples")
	require.NoError(t, err)
	assert.Contains(t, out, "heroctl random -n 3 --history")
}

func TestNewCatalogClient_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		args    []string
		want    time.Duration
		wantErr string
	}{
		{name: "default", want: catalog.DefaultTimeout},
		{name: "config seconds", config: "source:\n  timeout: 5\n", want: 5 * time.Second},
		{name: "config duration", config: "source:\n  timeout: 1m\n", want: time.Minute},
		{name: "flag wins", config: "source:\n  timeout: 5\n", args: []string{"--timeout", "2s"}, want: 2 * time.Second},
		{name: "flag wins over bad config", config: "source:\n  timeout: soon\n", args: []string{"--timeout", "2s"}, want: 2 * time.Second},
		{name: "zero disables", args: []string{"--timeout", "0s"}, want: 0},
		{name: "config zero disables", config: "source:\n  timeout: 0\n", want: 0},
		{name: "config malformed", config: "source:\n  timeout: soon\n", wantErr: "source.timeout"},
		{name: "config negative", config: "source:\n  timeout: -5\n", wantErr: "source.timeout must not be negative"},
		{name: "config negative duration", config: "source:\n  timeout: -1m\n", wantErr: "source.timeout must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, tt.config)

			var got *catalog.Client
			cmd := &cli.Command{
				Name:  "heroctl",
				Flags: NewSourceFlags(),
				Action: func(_ context.Context, cmd *cli.Command) error {
					var err error
					got, err = NewCatalogClient(cmd)
					return err
				},
			}
			err := cmd.Run(context.Background(), append([]string{"heroctl"}, tt.args...))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Timeout())
			assert.Equal(t, catalog.DefaultURL, got.URL())
		})
	}
}

func TestRandom_BadConfigTimeout(t *testing.T) {
	useConfig(t, "source:\n  timeout: soon\n")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	_, err := run(t, "--url", srv.URL, "random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.timeout")
}

// failingWriter accepts writes until one contains fail.
type failingWriter struct {
	fail string
	buf  bytes.Buffer
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if strings.Contains(string(p), w.fail) {
		return 0, errors.New("disk full")
	}
	return w.buf.Write(p)
}

func TestEmitPicks_HistoryWriteError(t *testing.T) {
	tr := session.New()
	r := hero.Record{ID: 1, Name: "A-Bomb"}
	tr.RecordView(r)

	w := &failingWriter{fail: "History"}
	cmd := &cli.Command{
		Name: "random",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.BoolFlag{Name: "history"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return emitPicks(cmd, w, tr, []hero.Record{r})
		},
	}

	err := cmd.Run(context.Background(), []string{"random", "--history"})
	assert.EqualError(t, err, "disk full")
	assert.Contains(t, w.buf.String(), "A-Bomb")
}

func TestTui_Action(t *testing.T) {
	useConfig(t, "")

	var (
		calls   int
		gotOpts int
		gotTr   *session.Tracker
		gotPick tui.Picker
	)
	saved := runTUI
	t.Cleanup(func() { runTUI = saved })
	runTUI = func(_ context.Context, p tui.Picker, tr *session.Tracker, opts ...tea.ProgramOption) error {
		calls++
		gotPick, gotTr, gotOpts = p, tr, len(opts)
		return nil
	}

	_, err := run(t, "--url", "https://example.com/all.json", "tui")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NotNil(t, gotTr)
	assert.Equal(t, 1, gotOpts)
	require.IsType(t, &catalog.Client{}, gotPick)
	assert.Equal(t, "https://example.com/all.json", gotPick.(*catalog.Client).URL())

	_, err = run(t, "tui", "--no-alt-screen")
	require.NoError(t, err)
	assert.Equal(t, 0, gotOpts)
}

func TestCompletion(t *testing.T) {
	useConfig(t, "")

	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _heroctl heroctl")

	out, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef heroctl")
}

func TestExamples_CoverListingCommands(t *testing.T) {
	for _, name := range []string{"random", "catalog", "tui"} {
		assert.NotEmpty(t, Examples[name], name)
		for _, ex := range Examples[name] {
			assert.True(t, strings.HasPrefix(ex[0], "heroctl"), ex[0])
		}
	}
}

func toStrings(results []gjson.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.String())
	}
	return out
}

func TestCatalog_AttrsFromConfig(t *testing.T) {
	useConfig(t, "catalog:\n  attrs: \"appearance.race:race\"\n")
	srv := catalogServer(t, http.StatusOK, catalogJSON)

	out, err := run(t, "--url", srv.URL, "catalog", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "race: null")
	assert.Contains(t, out, "publisher: Unknown")
}
