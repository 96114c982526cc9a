package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal key",
			input:    "menu_register",
			expected: "menu_register",
		},
		{
			name:     "key with whitespace",
			input:    "  confirm_delete  ",
			expected: "confirm_delete",
		},
		{
			name:     "key with newline",
			input:    "del:\nvalidLogin1",
			expected: "del:validLogin1",
		},
		{
			name:     "key with unprintable characters",
			input:    "cancel\x00\x01",
			expected: "cancel",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}
