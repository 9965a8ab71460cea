// internal/util/util.go
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// WriteFileAtomic writes data next to path and renames it into place, so a
// reader never sees a half-written export.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// Truncate shortens text to at most cells terminal columns, ending in an
// ellipsis when anything was cut. Wide runes count as two columns.
func Truncate(text string, cells int) string {
	if cells <= 0 {
		return ""
	}
	return runewidth.Truncate(text, cells, Ellipsis)
}

// Wrap breaks text into lines of at most width terminal columns. Words longer
// than a line are split. Existing line breaks and blank lines are kept.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		wrapped []string
		cur     strings.Builder
		used    int
	)
	flush := func() {
		if used > 0 {
			wrapped = append(wrapped, cur.String())
			cur.Reset()
			used = 0
		}
	}

	for _, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case used > 0 && used+1+w <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			used += 1 + w
		case w <= width:
			flush()
			cur.WriteString(word)
			used = w
		default:
			flush()
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if used+rw > width {
					flush()
				}
				cur.WriteRune(r)
				used += rw
			}
		}
	}
	flush()
	return wrapped
}
