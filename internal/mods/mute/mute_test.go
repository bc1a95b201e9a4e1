// /internal/mods/mute/mute_test.go
package mute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		arg  string
		want time.Duration
		ok   bool
	}{
		{"10m", 10 * time.Minute, true},
		{"1h", time.Hour, true},
		{"90s", 90 * time.Second, true},
		{"0", 0, true},
		{"15", 15 * time.Minute, true},
		{"forever", 0, false},
		{"@user", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, ok := parseDuration(tt.arg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
