// Package ptr provides small helpers for building pointers to literals.
package ptr

import "time"

func ToString(s string) *string { return &s }

func ToBool(b bool) *bool { return &b }

func ToInt(i int) *int { return &i }

func ToTime(t time.Time) *time.Time { return &t }

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
