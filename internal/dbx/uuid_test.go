package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"canonical", "6f1c2b1e-3a4d-4e5f-8a9b-0c1d2e3f4a5b", "6f1c2b1e-3a4d-4e5f-8a9b-0c1d2e3f4a5b", true},
		{"upper case", "6F1C2B1E-3A4D-4E5F-8A9B-0C1D2E3F4A5B", "6f1c2b1e-3a4d-4e5f-8a9b-0c1d2e3f4a5b", true},
		{"braces", "{6f1c2b1e-3a4d-4e5f-8a9b-0c1d2e3f4a5b}", "6f1c2b1e-3a4d-4e5f-8a9b-0c1d2e3f4a5b", true},
		{"short", "h1", "", false},
		{"empty", "", "", false},
		{"sql", "' OR 1=1 --", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := UUIDKey(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
