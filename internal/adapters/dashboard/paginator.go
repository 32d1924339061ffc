package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/bei612/meraki-workflows/internal/telemetry"
)

// MaxPerPage is the protocol ceiling for the perPage parameter. Larger
// requests are clamped down with a logged warning.
const MaxPerPage = 5000

// cursorFields are probed in priority order against the last item of a page
// to derive the next startingAfter cursor. The probing is an inherited,
// deliberately bounded heuristic: when none of the fields is present
// pagination stops with a warning instead of guessing further.
var cursorFields = []string{"id", "serial", "networkId", "alertId", "licenseId", "mac", "clientId"}

// warnCursorExhausted marks a fetch that stopped because no cursor field
// could be derived; the accumulated items may be incomplete.
const warnCursorExhausted = "pagination halted: no cursor field on last item; results may be incomplete"

// fetchAll walks a paginated endpoint to completion using startingAfter
// cursors. It returns the accumulated items, non-fatal warnings, and the
// error that interrupted pagination, if any. A non-nil error still comes
// with whatever was accumulated before it; callers decide whether partial
// data is acceptable.
func (c *Client) fetchAll(ctx context.Context, op, path string, query url.Values, perPage int) ([]json.RawMessage, []string, error) {
	var warnings []string

	if perPage > MaxPerPage {
		log.Printf("dashboard: %s: perPage %d exceeds protocol maximum, clamping to %d", op, perPage, MaxPerPage)
		perPage = MaxPerPage
	}
	if perPage <= 0 {
		perPage = MaxPerPage
	}

	var all []json.RawMessage
	startingAfter := ""

	for {
		q := cloneQuery(query)
		q.Set("perPage", strconv.Itoa(perPage))
		if startingAfter != "" {
			q.Set("startingAfter", startingAfter)
		}

		raw, err := c.get(ctx, op, path, q, classList)
		if err != nil {
			return all, warnings, err
		}
		telemetry.PagesFetched.WithLabelValues(op).Inc()

		coll, err := unwrapCollection(raw)
		if err != nil {
			return all, warnings, fmt.Errorf("%s: unwrapping page: %w", op, err)
		}

		// Singular payload: the endpoint is not paginated.
		if coll.single {
			all = append(all, coll.items...)
			return all, warnings, nil
		}

		if len(coll.items) == 0 {
			return all, warnings, nil
		}

		all = append(all, coll.items...)

		// A short page is the final page.
		if len(coll.items) < perPage {
			return all, warnings, nil
		}

		startingAfter = nextCursor(coll.items[len(coll.items)-1])
		if startingAfter == "" {
			telemetry.CursorExhausted.WithLabelValues(op).Inc()
			log.Printf("dashboard: %s: %s", op, warnCursorExhausted)
			warnings = append(warnings, warnCursorExhausted)
			return all, warnings, nil
		}
	}
}

// nextCursor derives the startingAfter value from the last item of a page,
// taking the first non-empty candidate field.
func nextCursor(last json.RawMessage) string {
	for _, field := range cursorFields {
		if v := stringField(last, field); v != "" {
			return v
		}
	}
	return ""
}

// nameFilterFields are matched in priority order by filterByName.
var nameFilterFields = []string{"name", "hostname", "description"}

// filterByName applies a case-insensitive substring filter over the
// completed sequence. It never short-circuits pagination.
func filterByName(items []json.RawMessage, keyword string) []json.RawMessage {
	if keyword == "" {
		return items
	}
	needle := strings.ToLower(keyword)
	filtered := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		for _, field := range nameFilterFields {
			if v := stringField(item, field); v != "" {
				if strings.Contains(strings.ToLower(v), needle) {
					filtered = append(filtered, item)
				}
				break
			}
		}
	}
	return filtered
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q)+2)
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// decodeItems unmarshals each raw item into T, skipping undecodable rows
// with a log line rather than failing the whole listing.
func decodeItems[T any](op string, items []json.RawMessage) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			log.Printf("dashboard: %s: skipping undecodable item: %v", op, err)
			continue
		}
		out = append(out, v)
	}
	return out
}
