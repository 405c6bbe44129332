// Package asmfilter removes unused compiler-generated labels from assembly
// listings so that two listings can be diffed without noise.
package asmfilter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// labelLineLen is the length of a generated label line: a dot, a 32
// character identifier and a colon.
const labelLineLen = 34

// IsUnusedLabel reports whether line is a generated label definition whose
// name appears nowhere else in text.
func IsUnusedLabel(line, text string) bool {
	if len(line) != labelLineLen || !strings.HasPrefix(line, ".") || !strings.HasSuffix(line, ":") {
		return false
	}
	return strings.Count(text, line[1:len(line)-1]) == 1
}

// FilterString returns text without its unused label lines. Every kept line
// ends in a newline.
func FilterString(text string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+64*1024)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if IsUnusedLabel(line, text) {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Filter reads the whole listing from r and writes the filtered listing to w.
func Filter(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read listing: %w", err)
	}
	if _, err := io.WriteString(w, FilterString(string(data))); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}
