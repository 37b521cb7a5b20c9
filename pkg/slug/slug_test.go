package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Gold Vermeil Hoops", "gold-vermeil-hoops"},
		{"punctuation", "Pearl & Opal — Set!", "pearl-opal-set"},
		{"diacritics", "Émeraude Crémaillère", "emeraude-cremaillere"},
		{"extra whitespace", "  Silver   Chain  ", "silver-chain"},
		{"numbers", "18k Band No. 7", "18k-band-no-7"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}
