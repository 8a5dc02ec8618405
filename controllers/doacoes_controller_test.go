package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRankingTime(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2026-08-15T14:30:00Z", true, time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)},
		{"2026-08-15T14:30", true, time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)},
		{"2026-08-15", true, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		{"15/08/2026", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tc := range cases {
		got, ok := parseRankingTime(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.True(t, got.Equal(tc.want), tc.in)
		}
	}
}
