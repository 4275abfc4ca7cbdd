// Package ingest turns recognised text into story drafts.
//
// Each line that ends in a number is read as "title points". Everything else
// is noise from the recogniser and is dropped.
package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alanyang/assignit/internal/domain/story"
)

var trailingPoints = regexp.MustCompile(`^(.*?)(\d+)\s*$`)

// ParseText extracts drafts in line order.
func ParseText(text string) []story.Draft {
	var drafts []story.Draft
	for _, line := range strings.Split(text, "\n") {
		d, ok := ParseLine(line)
		if ok {
			drafts = append(drafts, d)
		}
	}
	return drafts
}

// ParseLine reads a single "title points" line.
func ParseLine(line string) (story.Draft, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return story.Draft{}, false
	}
	m := trailingPoints.FindStringSubmatch(line)
	if m == nil {
		return story.Draft{}, false
	}
	points, err := strconv.Atoi(m[2])
	if err != nil {
		return story.Draft{}, false
	}
	d := story.Draft{
		Title:  strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), "-:|")),
		Points: points,
	}
	return d, d.Valid()
}
