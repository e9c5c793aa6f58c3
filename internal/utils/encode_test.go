package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		lossy bool
	}{
		{"already safe", "Hello_world", "Hello_world", false},
		{"punctuation dropped", "Hello, world!", "Helloworld", true},
		{"digits kept", "sensor_01", "sensor_01", false},
		{"dashes dropped", "temp-reading", "tempreading", true},
		{"spaces dropped", "a b c", "abc", true},
		{"empty input", "", "", false},
		{"fully removed", "!!!", "", true},
		{"unicode dropped", "tempèrature", "temprature", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, lossy := SQLEncode(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.lossy, lossy)
		})
	}
}

func TestSQLEncodeIdempotent(t *testing.T) {
	inputs := []string{"Hello, world!", "plain", "a.b.c", "über_sensor", ""}

	for _, input := range inputs {
		once, _ := SQLEncode(input)
		twice, lossy := SQLEncode(once)
		assert.Equal(t, once, twice)
		assert.False(t, lossy, "re-encoding an encoded name must be lossless")
	}
}

func TestSQLEncodeOnlyAllowedChars(t *testing.T) {
	inputs := []string{"Hello, world!", "x;DROP TABLE--", "温度", "a$b#c"}

	for _, input := range inputs {
		got, _ := SQLEncode(input)
		for _, c := range got {
			ok := c == '_' ||
				(c >= 'a' && c <= 'z') ||
				(c >= 'A' && c <= 'Z') ||
				(c >= '0' && c <= '9')
			assert.True(t, ok, "character %q escaped the allowed set in %q", c, got)
		}
	}
}
