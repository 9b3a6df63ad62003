package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyuz43/jsast-go/internal/jsparser"
	"github.com/soyuz43/jsast-go/internal/utils"
	"github.com/soyuz43/jsast-go/test"
)

func quietLog() *logrus.Entry {
	logger, _ := logtest.NewNullLogger()
	return logrus.NewEntry(logger)
}

func post(t *testing.T, srv *httptest.Server, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestParseEndpoint(t *testing.T) {
	parser := &test.FakeParser{Backend: "goja", Result: test.MustDecode(t,
		`{"type":"Program","body":[{"type":"Literal","value":1}]}`)}
	srv := httptest.NewServer(New(parser, jsparser.Options{}, quietLog()).Handler())
	defer srv.Close()

	status, body := post(t, srv, "/parse", `{"source":"1;"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "goja", body["backend"])
	assert.EqualValues(t, 3, body["nodes"])

	out := body["outline"].(map[string]any)
	assert.Equal(t, "Program (Program)", out["label"])
	ast := body["ast"].(map[string]any)
	assert.Equal(t, "Program", ast["type"])
	assert.Equal(t, []string{"1;"}, parser.Calls())
}

func TestParseEndpointErrors(t *testing.T) {
	syntax := httptest.NewServer(New(test.NewSyntaxErrorParser(), jsparser.Options{}, quietLog()).Handler())
	defer syntax.Close()

	status, body := post(t, syntax, "/parse", `{"source":"function ("}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.EqualValues(t, 1, body["line"])
	assert.EqualValues(t, 10, body["column"])
	assert.Contains(t, body["error"], "Unexpected end of input")

	status, body = post(t, syntax, "/parse", `{"source":"   "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "please enter JavaScript code", body["error"])

	status, _ = post(t, syntax, "/parse", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	missing := httptest.NewServer(New(nil, jsparser.Options{}, quietLog()).Handler())
	defer missing.Close()
	status, _ = post(t, missing, "/parse", `{"source":"1;"}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(New(nil, jsparser.Options{}, quietLog()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/parse")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestBackendsEndpoint(t *testing.T) {
	srv := httptest.NewServer(New(&test.FakeParser{Backend: "tree-sitter"}, jsparser.Options{}, quietLog()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/backends")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body BackendsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "tree-sitter", body.Selected)
	require.Len(t, body.Backends, len(jsparser.Backends()))
	assert.Equal(t, jsparser.TreeSitterBackend, body.Backends[0].Name)
}

func TestServeStopsOnInactivity(t *testing.T) {
	stateDir := t.TempDir()
	listener, err := Listen(Config{Host: "127.0.0.1"})
	require.NoError(t, err)

	s := New(nil, jsparser.Options{}, quietLog())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(context.Background(), listener, Config{InactivityTimeout: 300 * time.Millisecond, StateDir: stateDir})
	}()

	require.Eventually(t, func() bool {
		_, err := utils.ReadPortFile(stateDir)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	port, err := utils.ReadPortFile(stateDir)
	require.NoError(t, err)
	assert.Equal(t, listener.Addr().(*net.TCPAddr).Port, port)

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after inactivity")
	}
	_, err = utils.ReadPortFile(stateDir)
	assert.Error(t, err, "port file must be removed on shutdown")
}

func TestServeStopsOnCancel(t *testing.T) {
	listener, err := Listen(Config{Host: "127.0.0.1"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(nil, jsparser.Options{}, quietLog()).Serve(ctx, listener, Config{})
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServeFailureStopsShutdownWatcher(t *testing.T) {
	stateDir := t.TempDir()
	listener, err := Listen(Config{Host: "127.0.0.1"})
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	logger, hook := logtest.NewNullLogger()
	done := make(chan error, 1)
	go func() {
		done <- New(nil, jsparser.Options{}, logrus.NewEntry(logger)).Serve(context.Background(), listener, Config{StateDir: stateDir})
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server error")
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the listener failed")
	}

	var stopped bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Shutting down server" {
			stopped = true
		}
	}
	assert.True(t, stopped, "shutdown goroutine must finish before Serve returns")

	_, err = utils.ReadPortFile(stateDir)
	assert.Error(t, err)
}
