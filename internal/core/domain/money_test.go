package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1000, "$10.00"},
		{200, "$2.00"},
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1234.56"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCents(tt.cents), "cents=%d", tt.cents)
	}
}
