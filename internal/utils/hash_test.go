package utils

import "testing"

func TestCalculateDataMD5(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"empty", nil, "d41d8cd98f00b204e9800998ecf8427e"},
		{"text", []byte("hello"), "5d41402abc4b2a76b9719d911017c592"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDataMD5(tt.data); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
