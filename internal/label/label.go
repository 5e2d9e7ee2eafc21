// Package label derives the user-visible display label from ledger state.
//
// A rendered label has the shape `base ［tag, tag］`. Parsing and rendering
// are inverse operations: Render strips any previous tag segment via Parse
// before composing, which makes it idempotent no matter how many times a
// label has been through it.
package label

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLen is the platform's display-label limit.
const DefaultMaxLen = 32

// The renderer emits the fullwidth bracket alphabet so its own tag segment
// never collides with ASCII brackets a member puts in their chosen name.
// Parse still accepts both alphabets: labels written by earlier revisions
// used the ASCII pair.
const (
	openFullwidth  = "［"
	closeFullwidth = "］"
	openASCII      = "["
	closeASCII     = "]"
)

const unvouchableTag = "unvouchable"

// Renderer composes display labels subject to a length limit.
type Renderer struct {
	maxLen int
}

// NewRenderer creates a Renderer. A non-positive maxLen falls back to
// DefaultMaxLen.
func NewRenderer(maxLen int) *Renderer {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Renderer{maxLen: maxLen}
}

// Parse splits a display label into its base name and tag list.
// The tag segment is a trailing bracket group in either alphabet; anything
// else is part of the base. A name with no trailing group parses to
// (name, nil).
func Parse(display string) (base string, tags []string) {
	trimmed := strings.TrimRight(display, " ")

	for _, alphabet := range [][2]string{
		{openFullwidth, closeFullwidth},
		{openASCII, closeASCII},
	} {
		opener, closer := alphabet[0], alphabet[1]
		if !strings.HasSuffix(trimmed, closer) {
			continue
		}
		idx := strings.LastIndex(trimmed, opener)
		if idx < 0 {
			continue
		}
		inner := trimmed[idx+len(opener) : len(trimmed)-len(closer)]
		base = strings.TrimRight(trimmed[:idx], " ")
		for _, tag := range strings.Split(inner, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		return base, tags
	}

	return trimmed, nil
}

// DisplayedCount extracts the numeric vouch tag ("12V") from a display
// label. Returns 0 when no such tag is present.
func DisplayedCount(display string) int {
	_, tags := Parse(display)
	for _, tag := range tags {
		digits, ok := strings.CutSuffix(tag, "V")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(digits); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}

// Render derives the label for the given ledger state from any prior
// display label. It is idempotent: re-rendering its own output with the
// same count and flag is a no-op.
//
// The length limit applies after composition. When the composed label is
// too long, lower-priority tags are dropped first (unvouchable before the
// numeric tag) and the base is shortened before a tag is ever split.
func (r *Renderer) Render(display string, count int, unvouchable bool) string {
	base, _ := Parse(display)
	base = strings.TrimSpace(base)

	var tags []string
	if count > 0 {
		tags = append(tags, fmt.Sprintf("%dV", count))
	}
	if unvouchable {
		tags = append(tags, unvouchableTag)
	}

	if len(tags) == 0 {
		return truncate(base, r.maxLen)
	}

	// Drop order is the reverse of priority: the numeric tag survives
	// until only shortening the base or giving up remains.
	for len(tags) > 0 {
		composed := compose(base, tags)
		if utf8.RuneCountInString(composed) <= r.maxLen {
			return composed
		}
		if len(tags) > 1 {
			tags = tags[:len(tags)-1]
			continue
		}

		segLen := utf8.RuneCountInString(compose("", tags))
		if budget := r.maxLen - segLen - 1; budget > 0 {
			return compose(truncate(base, budget), tags)
		}
		if segLen <= r.maxLen {
			return compose("", tags)
		}
		tags = nil
	}

	return truncate(base, r.maxLen)
}

func compose(base string, tags []string) string {
	segment := openFullwidth + strings.Join(tags, ", ") + closeFullwidth
	if base == "" {
		return segment
	}
	return base + " " + segment
}

func truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimRight(string(runes[:maxRunes]), " ")
}
