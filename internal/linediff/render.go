package linediff

import (
	"bufio"
	"fmt"
	"io"
)

// Render writes one line per change: the kind's marker, a space, the content.
func Render(w io.Writer, changes []Change) error {
	bw := bufio.NewWriter(w)
	for _, c := range changes {
		if _, err := fmt.Fprintf(bw, "%s %s\n", c.Kind.Marker(), c.Content); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Summary formats stats the way the comparison view badges them.
func Summary(s Stats) string {
	return fmt.Sprintf("+%d additions, -%d deletions, %d unchanged", s.Added, s.Removed, s.Unchanged)
}
