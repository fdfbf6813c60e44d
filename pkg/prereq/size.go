package prereq

import (
	"fmt"
	"strconv"
	"strings"
)

// Binary multiples; package managers and disk tooling on Windows report
// 1024-based sizes, so the catalog speaks the same dialect.
const (
	KB uint64 = 1 << 10
	MB        = KB << 10
	GB        = MB << 10
	TB        = GB << 10
)

var sizeUnits = map[string]uint64{
	"": 1, "B": 1,
	"K": KB, "KB": KB,
	"M": MB, "MB": MB,
	"G": GB, "GB": GB,
	"T": TB, "TB": TB,
}

// ParseSize reads strings like "10G", "1.5GB", "500 M" or plain byte
// counts. Units are case-insensitive; whitespace around and between the
// number and the unit is ignored.
func ParseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	cut := len(s)
	for i := 0; i < len(s); i++ {
		if c := s[i]; (c < '0' || c > '9') && c != '.' {
			cut = i
			break
		}
	}
	num, unit := s[:cut], strings.ToUpper(strings.TrimSpace(s[cut:]))

	// The number must start and end on a digit, which keeps signs and
	// bare dots out.
	if num == "" || num[0] == '.' || num[len(num)-1] == '.' {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	mult, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown size unit %q in %q", unit, s)
	}
	return uint64(value * float64(mult)), nil
}

// FormatSize renders bytes with the largest unit that keeps the number
// at or above one, one decimal place for anything past plain bytes.
func FormatSize(bytes uint64) string {
	steps := []struct {
		floor uint64
		name  string
	}{{TB, "TB"}, {GB, "GB"}, {MB, "MB"}, {KB, "KB"}}

	for _, s := range steps {
		if bytes >= s.floor {
			return fmt.Sprintf("%.1f%s", float64(bytes)/float64(s.floor), s.name)
		}
	}
	return fmt.Sprintf("%dB", bytes)
}
