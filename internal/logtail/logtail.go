package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// maxLines of zero or less returns every line. A missing file is not an
// error; the app log does not exist until something has been written.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Severity classifies an activity line for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Entry is one parsed line of the app log.
type Entry struct {
	Time      time.Time // zero when the line has no standard log timestamp
	Component string    // "catalog" in "catalog: save failed"
	Message   string
	Severity  Severity
	Raw       string
}

// stdTimeLayout matches log.LstdFlags output.
const stdTimeLayout = "2006/01/02 15:04:05"

var (
	errorWords = []string{"failed", "error", "unreachable"}
	warnWords  = []string{"discarding", "dropping", "ignoring", "warn"}
)

// Parse splits a line written by the standard logger into its parts.
// Lines that do not look like log output come back with only Message and
// Raw set.
func Parse(line string) Entry {
	e := Entry{Raw: line, Message: line}

	rest := line
	if len(rest) >= len(stdTimeLayout) {
		if ts, err := time.ParseInLocation(stdTimeLayout, rest[:len(stdTimeLayout)], time.Local); err == nil {
			e.Time = ts
			rest = strings.TrimSpace(rest[len(stdTimeLayout):])
		}
	}

	if head, tail, ok := strings.Cut(rest, ": "); ok && isComponent(head) {
		e.Component = head
		rest = tail
	}
	e.Message = rest
	e.Severity = classify(rest)
	return e
}

// ParseAll parses lines in order.
func ParseAll(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries
}

func isComponent(s string) bool {
	if s == "" || len(s) > 24 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '.') {
			return false
		}
	}
	return true
}

func classify(msg string) Severity {
	lower := strings.ToLower(msg)
	for _, w := range errorWords {
		if strings.Contains(lower, w) {
			return SeverityError
		}
	}
	for _, w := range warnWords {
		if strings.Contains(lower, w) {
			return SeverityWarn
		}
	}
	return SeverityInfo
}
