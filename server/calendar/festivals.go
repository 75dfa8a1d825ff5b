// Package calendar holds the static festival date table exposed by the
// chrono tool server as an MCP resource.
package calendar

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// festivals maps a festival key to its next occurrence as YYYY-MM-DD.
// Keys are lower-case with underscores; Lookup folds user input into the
// same shape.
var festivals = map[string]string{
	"new_year":         "2027-01-01",
	"chinese_new_year": "2027-02-06",
	"holi":             "2027-03-22",
	"easter":           "2027-03-28",
	"san_fermin":       "2027-07-06",
	"edinburgh_fringe": "2027-08-06",
	"oktoberfest":      "2026-09-19",
	"diwali":           "2026-11-08",
	"christmas":        "2026-12-25",
}

// Lookup returns the date for a festival name. Matching is case-insensitive
// and tolerant of spaces and hyphens in place of underscores.
func Lookup(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	date, ok := festivals[key]
	return date, ok
}

// Names returns the known festival keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(festivals))
	for name := range festivals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JSON renders the festival table as a JSON object body for the
// calendar://festivals resource.
func JSON() (string, error) {
	body, err := json.MarshalIndent(festivals, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding festival table")
	}
	return string(body), nil
}
