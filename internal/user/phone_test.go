// AngelaMos | 2026
// phone_test.go

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "local format", phone: "01712345678", want: true},
		{name: "with country code", phone: "8801712345678", want: true},
		{name: "with plus prefix", phone: "+8801712345678", want: true},
		{name: "operator 3", phone: "01312345678", want: true},
		{name: "operator 9", phone: "01912345678", want: true},
		{name: "operator 2 invalid", phone: "01212345678", want: false},
		{name: "too short", phone: "0171234567", want: false},
		{name: "too long", phone: "017123456789", want: false},
		{name: "letters", phone: "01712abc678", want: false},
		{name: "empty", phone: "", want: false},
		{name: "foreign number", phone: "+12025550123", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidPhone(tt.phone))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "local format", phone: "01712345678", want: "+8801712345678"},
		{
			name:  "country code no plus",
			phone: "8801712345678",
			want:  "+8801712345678",
		},
		{
			name:  "already normalized",
			phone: "+8801712345678",
			want:  "+8801712345678",
		},
		{
			name:  "spaces and dashes stripped",
			phone: "017-1234 5678",
			want:  "+8801712345678",
		},
		{name: "bare digits", phone: "1712345678", want: "+8801712345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizePhone(tt.phone))
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"01712345678", "8801912345678", "+8801412345678"}
	for _, input := range inputs {
		once := NormalizePhone(input)
		assert.Equal(t, once, NormalizePhone(once))
	}
}
