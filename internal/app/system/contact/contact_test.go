package contact

import (
	"errors"
	"testing"
)

func TestWhatsAppURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"081234567890", "https://wa.me/081234567890"},
		{"+62 812-3456-7890", "https://wa.me/6281234567890"},
		{"(0812) 3456 7890", "https://wa.me/081234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := WhatsAppURL(tt.input)
			if err != nil {
				t.Fatalf("WhatsAppURL(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("WhatsAppURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWhatsAppURL_NoDigits(t *testing.T) {
	for _, input := range []string{"", "   ", "call me"} {
		if _, err := WhatsAppURL(input); !errors.Is(err, ErrNoPhone) {
			t.Errorf("WhatsAppURL(%q): got %v, want ErrNoPhone", input, err)
		}
	}
}
