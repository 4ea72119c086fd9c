package main

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	name string
	data string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if ev.name != "" || ev.data != "" {
				return ev
			}
		case strings.HasPrefix(line, "event:"):
			ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			ev.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func readThemeEvent(t *testing.T, r *bufio.Reader) themeState {
	t.Helper()
	for {
		ev := readEvent(t, r)
		if ev.name != "theme" {
			continue
		}
		var state themeState
		require.NoError(t, json.Unmarshal([]byte(ev.data), &state))
		return state
	}
}

func TestThemeEvents_StreamsResolvedAppearance(t *testing.T) {
	a, r := newTestApp(t, filepath.Join(t.TempDir(), "prefs.db"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/theme/events", nil)
	require.NoError(t, err)
	stream, err := client.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	assert.Contains(t, stream.Header.Get("Content-Type"), "text/event-stream")

	events := bufio.NewReader(stream.Body)
	assert.Equal(t, themeState{Theme: "system", IsDark: false}, readThemeEvent(t, events))

	// OS flips to dark while the preference is system.
	resp, err = client.PostForm(srv.URL+"/theme/os", url.Values{"dark": {"true"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, themeState{Theme: "system", IsDark: true}, readThemeEvent(t, events))

	// An explicit light choice flips it back.
	resp, err = client.PostForm(srv.URL+"/theme", url.Values{"theme": {"light"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, themeState{Theme: "light", IsDark: false}, readThemeEvent(t, events))

	// Open streams pin the session against eviction.
	assert.Zero(t, a.sessions.evictIdle(time.Now().Add(time.Hour)))
}
