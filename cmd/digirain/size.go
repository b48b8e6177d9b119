package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSize reads "COLSxROWS", for example "80x24".
func parseSize(s string) (cols, rows int, err error) {
	c, r, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want COLSxROWS", s)
	}
	if cols, err = strconv.Atoi(c); err != nil {
		return 0, 0, fmt.Errorf("size %q: bad columns: %w", s, err)
	}
	if rows, err = strconv.Atoi(r); err != nil {
		return 0, 0, fmt.Errorf("size %q: bad rows: %w", s, err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("size %q: columns and rows must be positive", s)
	}
	return cols, rows, nil
}
