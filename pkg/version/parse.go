// Package version pulls a displayable major.minor.patch triple out of
// tool banner lines. Nothing in the catalog gates on a minimum; the
// parsed value is shown to the user and otherwise ignored.
package version

import "fmt"

// Version is the numeric triple extracted from a banner.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Extract scans s for its first run of digits and reads up to three
// dot-separated components from there. Banners rarely agree on a format:
// "git version 2.45.0.windows.1", "MakeNSIS v3.10", plain "22" all work.
func Extract(s string) (Version, error) {
	i := 0
	for i < len(s) && !isDigit(s[i]) {
		i++
	}
	if i == len(s) {
		return Version{}, fmt.Errorf("no version found in: %q", s)
	}

	var parts [3]int
	for p := 0; p < 3; p++ {
		n := 0
		for i < len(s) && isDigit(s[i]) {
			n = n*10 + int(s[i]-'0')
			i++
		}
		parts[p] = n

		// Continue only for a dot followed by another digit, so trailing
		// tags like ".windows.1" in position four stay out of the triple.
		if p == 2 || i+1 >= len(s) || s[i] != '.' || !isDigit(s[i+1]) {
			break
		}
		i++
	}

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
