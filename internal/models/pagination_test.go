package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name                string
		limit, offset       int
		wantLimit, wantOffs int
	}{
		{"defaults", 0, -3, DefaultLimit, 0},
		{"kept", 25, 50, 25, 50},
		{"capped", 100000000, 0, MaxLimit, 0},
		{"at cap", MaxLimit, 10, MaxLimit, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := NormalizePage(tc.limit, tc.offset)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffs, offset)
		})
	}
}
