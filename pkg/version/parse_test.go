package version

import "testing"

func TestExtract(t *testing.T) {
	cases := []struct {
		banner string
		want   Version
	}{
		{"git version 2.45.0.windows.1", Version{2, 45, 0}},
		{"cargo 1.79.0 (129f3b996 2024-06-10)", Version{1, 79, 0}},
		{"clang version 18.1.8", Version{18, 1, 8}},
		{"v20.11.0", Version{20, 11, 0}},
		{"9.1.4", Version{9, 1, 4}},
		{"v3.10", Version{3, 10, 0}},
		{"MakeNSIS v3.10 (published 2023)", Version{3, 10, 0}},
		{"22", Version{22, 0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.banner, func(t *testing.T) {
			got, err := Extract(tc.banner)
			if err != nil {
				t.Fatalf("Extract(%q): %v", tc.banner, err)
			}
			if got != tc.want {
				t.Errorf("Extract(%q) = %v, want %v", tc.banner, got, tc.want)
			}
		})
	}
}

func TestExtractNoDigits(t *testing.T) {
	for _, banner := range []string{"", "no digits here", "v", "..."} {
		if _, err := Extract(banner); err == nil {
			t.Errorf("Extract(%q) succeeded, want error", banner)
		}
	}
}

func TestVersionString(t *testing.T) {
	cases := map[string]Version{
		"1.2.3":   {1, 2, 3},
		"20.11.0": {20, 11, 0},
		"3.10.0":  {3, 10, 0},
	}

	for want, v := range cases {
		if got := v.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
