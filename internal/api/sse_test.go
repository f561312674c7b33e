package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/logging"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/presets"
)

type sseMessage struct {
	Event string
	Data  string
}

// openStream connects to an SSE endpoint and returns parsed messages.
// The stream is closed when the test ends.
func openStream(t *testing.T, ts *httptest.Server, path string) <-chan sseMessage {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	messages := make(chan sseMessage, 16)
	go func() {
		defer close(messages)
		scanner := bufio.NewScanner(resp.Body)
		var current sseMessage
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event:"):
				current.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				current.Data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			case line == "" && current.Data != "":
				messages <- current
				current = sseMessage{}
			}
		}
	}()
	return messages
}

func nextMessage(t *testing.T, messages <-chan sseMessage) sseMessage {
	t.Helper()
	select {
	case msg, ok := <-messages:
		require.True(t, ok, "stream closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for SSE message")
		return sseMessage{}
	}
}

func TestEventStream(t *testing.T) {
	env := newTestEnv(t, Options{AuthUsername: "admin", AuthPassword: "secret"})
	ts := httptest.NewServer(env.server.GetMux())
	t.Cleanup(ts.Close)

	messages := openStream(t, ts, "/api/events?auth="+basicAuth("admin", "secret"))

	first := nextMessage(t, messages)
	assert.Equal(t, "connected", first.Event)

	p, err := env.presets.Create(context.Background(), presets.CreateParams{
		Name: "SSE",
		Config: ffmpeg.Config{
			Input:  ffmpeg.InputConfig{Path: "in"},
			Output: ffmpeg.OutputConfig{Path: "out"},
		},
	})
	require.NoError(t, err)

	msg := nextMessage(t, messages)
	require.Equal(t, "preset-created", msg.Event)
	var created events.PresetCreatedEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Data), &created))
	assert.Equal(t, p.ID, created.PresetID)

	_, err = env.presets.Preview(context.Background(), p.ID)
	require.NoError(t, err)

	msg = nextMessage(t, messages)
	assert.Equal(t, "command-generated", msg.Event)
}

func TestEventStreamRequiresAuth(t *testing.T) {
	env := newTestEnv(t, Options{AuthUsername: "admin", AuthPassword: "secret"})
	ts := httptest.NewServer(env.server.GetMux())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/api/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogStreamSkipsReplayedEntries(t *testing.T) {
	env := newTestEnv(t, Options{})
	ts := httptest.NewServer(env.server.GetMux())
	t.Cleanup(ts.Close)

	// The handler subscribes when the request arrives, so keep publishing
	// until the client has seen an entry.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				env.bus.Publish(events.LogEntryEvent{Seq: 3, Level: "info", Module: "api", Message: "old"})
				env.bus.Publish(events.LogEntryEvent{Seq: 6, Level: "warn", Module: "presets", Message: "new"})
			}
		}
	}()

	messages := openStream(t, ts, "/api/logs/stream?since=5")

	msg := nextMessage(t, messages)
	// "message" is the SSE default event name and is not transmitted
	assert.Empty(t, msg.Event)
	var entry events.LogEntryEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Data), &entry))
	assert.Equal(t, uint64(6), entry.Seq)
	assert.Equal(t, "new", entry.Message)
}

func TestLogEntryToEvent(t *testing.T) {
	ts := time.Date(2025, 1, 9, 10, 30, 0, 123000000, time.UTC)
	ev := LogEntryToEvent(logging.LogEntry{
		Seq:        7,
		Timestamp:  ts,
		Level:      "error",
		Module:     "presets",
		Message:    "save failed",
		Attributes: map[string]any{"op": "add"},
	})

	assert.Equal(t, uint64(7), ev.Seq)
	assert.Equal(t, "2025-01-09T10:30:00.123Z", ev.Timestamp)
	assert.Equal(t, "presets", ev.Module)
	assert.Equal(t, "add", ev.Attributes["op"])
}
