package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRUT(t *testing.T) {
	tests := []struct {
		name  string
		rut   string
		valid bool
	}{
		{"Valid with dots and hyphen", "12.345.678-5", true},
		{"Valid without dots", "12345678-5", true},
		{"Valid without separators", "123456785", true},
		{"Valid with K check digit", "20.347.878-K", true},
		{"Valid with lowercase k", "20.347.878-k", true},
		{"Wrong check digit", "12.345.678-4", false},
		{"Too short", "123-5", false},
		{"Letters in body", "12.34A.678-5", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsRUT(tt.rut))
		})
	}
}
