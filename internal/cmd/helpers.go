package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/guibef/interminai-plus/internal/config"
)

// fallbackSize is used when neither flag, config, nor a terminal provides
// dimensions.
const fallbackSize = "80x24"

// parseSize parses "WxH" into (cols, rows).
func parseSize(size string) (cols, rows uint16, err error) {
	parts := strings.Split(size, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH like 80x24", size)
	}
	c, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || c == 0 {
		return 0, 0, fmt.Errorf("invalid columns in %q", size)
	}
	r, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || r == 0 {
		return 0, 0, fmt.Errorf("invalid rows in %q", size)
	}
	return uint16(c), uint16(r), nil
}

// resolveSize picks the terminal size: the explicit flag, then the config
// default, then the invoking terminal's size, then 80x24.
func resolveSize(flag string) (cols, rows uint16, err error) {
	if flag != "" {
		return parseSize(flag)
	}
	if cfg, err := config.Load(); err == nil && cfg.DefaultSize != "" {
		return parseSize(cfg.DefaultSize)
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
			return uint16(w), uint16(h), nil
		}
	}
	return parseSize(fallbackSize)
}
