package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/metainspect/cmd/metainspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head>
			<title>Home</title>
			<meta name="description" content="The home page">
			<meta name="keywords" content="a,b">
			</head><body><a href="/about">About</a></body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_Inspect(t *testing.T) {
	t.Parallel()

	t.Run("prints JSON results", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"inspect", srv.URL}, stdout, stderr)
		require.NoError(t, err)

		var results []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, srv.URL+"/", results[0]["url"])
		assert.Equal(t, "Home", results[0]["title"])
		assert.Equal(t, "The home page", results[0]["description"])
		assert.Nil(t, results[0]["author"])
		assert.Equal(t, []any{"a", "b"}, results[0]["keywords"])
		assert.Equal(t, []any{"/about"}, results[0]["links"])
		assert.Contains(t, stderr.String(), "msg=fetch")
	})

	t.Run("prints text results", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"inspect", "--format", "text", srv.URL}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "title: Home\n")
		assert.Contains(t, stdout.String(), "author: <none>\n")
	})

	t.Run("reports failures and still prints successes", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"inspect", srv.URL, srv.URL + "/missing"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 inspections failed")
		assert.Contains(t, stderr.String(), "response status code was 404 (unexpected_status)")
		var results []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
		assert.Len(t, results, 1)
	})

	t.Run("debug logging with verbose flag", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"-v", "inspect", srv.URL}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stderr.String(), "parsing page title")
	})
}

func TestMain_Run_SaveAndHistory(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(ctx, []string{"inspect", "--save", "--db", dbPath, srv.URL}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Saved inspection")

	stdout.Reset()
	err = main.NewMain().Run(ctx, []string{"history", "--db", dbPath}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), srv.URL+"/")
	assert.Contains(t, stdout.String(), "Home")
	assert.Contains(t, stdout.String(), "200")
}
