package csvexport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Yoga", "Yoga"},
		{"comma", "Yoga, nivel 1", `"Yoga, nivel 1"`},
		{"quote", `La "buena"`, `"La ""buena"""`},
		{"newline", "dos\nlineas", "\"dos\nlineas\""},
		{"accented untouched", "Sesión número", "Sesión número"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestGenerate(t *testing.T) {
	csv := Generate(
		[]string{"Clase", "Reservas"},
		[][]string{
			{"Box, avanzado", "12"},
			{"Yoga", "8"},
		},
	)
	assert.Equal(t, "Clase,Reservas\n\"Box, avanzado\",12\nYoga,8", csv)
}

func TestGenerate_HeadersOnly(t *testing.T) {
	assert.Equal(t, "A,B", Generate([]string{"A", "B"}, nil))
}

func TestDocument_PrefixesBOM(t *testing.T) {
	doc := Document("a,b")
	assert.True(t, strings.HasPrefix(string(doc), "\ufeff"))
	assert.Equal(t, "\ufeffa,b", string(doc))
}
