package linediff

import "fmt"

// Kind classifies a line.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Marker is the leading column shown for the line in a rendered diff.
func (k Kind) Marker() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Unchanged, Added, Removed:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("linediff: invalid kind %d", int(k))
	}
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unchanged":
		*k = Unchanged
	case "added":
		*k = Added
	case "removed":
		*k = Removed
	default:
		return fmt.Errorf("linediff: unknown kind %q", text)
	}
	return nil
}

// Change is one classified line. Line numbers are 1-based; OriginalLine is 0
// for Added and ModifiedLine is 0 for Removed.
type Change struct {
	Kind         Kind   `json:"type"`
	Content      string `json:"content"`
	OriginalLine int    `json:"original_line,omitempty"`
	ModifiedLine int    `json:"modified_line,omitempty"`
}

func unchanged(content string, originalLine, modifiedLine int) Change {
	return Change{Kind: Unchanged, Content: content, OriginalLine: originalLine, ModifiedLine: modifiedLine}
}

func added(content string, modifiedLine int) Change {
	return Change{Kind: Added, Content: content, ModifiedLine: modifiedLine}
}

func removed(content string, originalLine int) Change {
	return Change{Kind: Removed, Content: content, OriginalLine: originalLine}
}

// Stats counts changes by kind.
type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// StatsOf counts changes. Always derive stats from the changes they describe.
func StatsOf(changes []Change) Stats {
	var s Stats
	for _, c := range changes {
		switch c.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Unchanged:
			s.Unchanged++
		}
	}
	return s
}

// HasChanges reports whether anything was added or removed.
func (s Stats) HasChanges() bool {
	return s.Added > 0 || s.Removed > 0
}
