// Package testutil holds small helpers shared by tests across packages.
package testutil

import "strings"

// Ptr gives optional config fields a literal value in test expectations.
func Ptr[T any](v T) *T { return &v }

// ContainsDetail reports whether any detail line mentions substr.
func ContainsDetail(details []string, substr string) bool {
	for _, line := range details {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
