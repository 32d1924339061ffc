package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedHandler serves count synthetic items with the dashboard's cursor
// scheme. Each item carries an id unless bare is set.
func pagedHandler(t *testing.T, count int, bare bool) http.HandlerFunc {
	t.Helper()
	items := make([]map[string]any, count)
	for i := range items {
		if bare {
			items[i] = map[string]any{"value": i}
		} else {
			items[i] = map[string]any{"id": fmt.Sprintf("item-%04d", i), "value": i}
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		perPage, err := strconv.Atoi(r.URL.Query().Get("perPage"))
		require.NoError(t, err)

		start := 0
		if after := r.URL.Query().Get("startingAfter"); after != "" {
			for i, item := range items {
				if item["id"] == after {
					start = i + 1
					break
				}
			}
		}
		end := start + perPage
		if end > len(items) {
			end = len(items)
		}
		page := []map[string]any{}
		if start < end {
			page = items[start:end]
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}
}

func newTestClient(srvURL string) *Client {
	return NewClient(Options{
		BaseURL:     srvURL,
		APIKey:      "test-key",
		MaxRetries:  -1, // fail fast
		BaseBackoff: time.Millisecond,
	})
}

func TestFetchAllCompleteness(t *testing.T) {
	const perPage = 10

	for _, count := range []int{0, 1, perPage, perPage + 1, 10 * perPage} {
		t.Run(fmt.Sprintf("%d items", count), func(t *testing.T) {
			srv := httptest.NewServer(pagedHandler(t, count, false))
			defer srv.Close()

			items, warnings, err := newTestClient(srv.URL).fetchAll(context.Background(), "test.list", "/things", nil, perPage)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			require.Len(t, items, count)

			// No duplicates, no reordering.
			for i, item := range items {
				assert.Equal(t, fmt.Sprintf("item-%04d", i), stringField(item, "id"))
			}
		})
	}
}

func TestFetchAllCursorExhausted(t *testing.T) {
	// A full page whose last item exposes no cursor field halts pagination
	// with a warning instead of looping or failing.
	const perPage = 5
	srv := httptest.NewServer(pagedHandler(t, perPage, true))
	defer srv.Close()

	items, warnings, err := newTestClient(srv.URL).fetchAll(context.Background(), "test.list", "/things", nil, perPage)
	require.NoError(t, err)
	assert.Len(t, items, perPage)
	require.Len(t, warnings, 1)
	assert.Equal(t, warnCursorExhausted, warnings[0])
}

func TestFetchAllClampsPerPage(t *testing.T) {
	var gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("perPage")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).fetchAll(context.Background(), "test.list", "/things", nil, MaxPerPage+1)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(MaxPerPage), gotPerPage)
}

func TestNextCursorPriority(t *testing.T) {
	tests := []struct {
		name string
		item string
		want string
	}{
		{"id wins over serial", `{"id":"a-1","serial":"Q2AB-0001"}`, "a-1"},
		{"serial when no id", `{"serial":"Q2AB-0001","mac":"aa:bb"}`, "Q2AB-0001"},
		{"mac as last resort", `{"mac":"aa:bb:cc:dd:ee:ff"}`, "aa:bb:cc:dd:ee:ff"},
		{"empty id falls through", `{"id":"","serial":"Q2AB-0001"}`, "Q2AB-0001"},
		{"no candidate", `{"value":42}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextCursor(json.RawMessage(tt.item)))
		})
	}
}

func TestFilterByName(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"serial":"Q2AB-0001","name":"MR44-Lobby"}`),
		json.RawMessage(`{"serial":"Q2AB-0002","name":"Switch-Core"}`),
		json.RawMessage(`{"serial":"Q2AB-0003","description":"mr33 spare"}`),
		json.RawMessage(`{"serial":"Q2AB-0004"}`),
	}

	filtered := filterByName(items, "mr")
	require.Len(t, filtered, 2)
	assert.Equal(t, "Q2AB-0001", stringField(filtered[0], "serial"))
	assert.Equal(t, "Q2AB-0003", stringField(filtered[1], "serial"))

	// The name field, when present, decides; a matching description does
	// not rescue a non-matching name.
	masked := filterByName([]json.RawMessage{
		json.RawMessage(`{"name":"Switch-Core","description":"mr closet"}`),
	}, "mr")
	assert.Empty(t, masked)

	assert.Equal(t, items, filterByName(items, ""))
}

func TestUnwrapCollection(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantLen    int
		wantSingle bool
	}{
		{"bare array", `[{"id":"a"},{"id":"b"}]`, 2, false},
		{"items envelope", `{"items":[{"id":"a"}],"meta":{}}`, 1, false},
		{"results envelope", `{"results":[{"id":"a"},{"id":"b"},{"id":"c"}]}`, 3, false},
		{"singular object", `{"id":"a","name":"HQ"}`, 1, true},
		{"null body", `null`, 0, false},
		{"empty array", `[]`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll, err := unwrapCollection(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Len(t, coll.items, tt.wantLen)
			assert.Equal(t, tt.wantSingle, coll.single)
		})
	}

	_, err := unwrapCollection(json.RawMessage(`{"broken`))
	assert.Error(t, err)
}
