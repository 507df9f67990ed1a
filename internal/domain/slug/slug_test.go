package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/menuqr/menuqr-api/internal/domain/slug"
)

// Normalize: minúsculas, no alfanuméricos a guion, sin guiones en los bordes
// ni repetidos.
func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"minusculas", "Pizzeria", "pizzeria"},
		{"espacios a guion", "La Bella Italia", "la-bella-italia"},
		{"acentos y simbolos colapsan", "Café & Té!!", "caf-t"},
		{"guiones repetidos colapsan", "a  --  b", "a-b"},
		{"bordes sin guion", "  Tacos  ", "tacos"},
		{"numeros se conservan", "Pizza 24/7", "pizza-24-7"},
		{"vacio", "", ""},
		{"solo simbolos", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Normalize(tc.in))
		})
	}
}

// Candidate: el primer intento es la base tal cual, los siguientes llevan sufijo.
func TestCandidate(t *testing.T) {
	assert.Equal(t, "tacos", slug.Candidate("tacos", 0))
	assert.Equal(t, "tacos-1", slug.Candidate("tacos", 1))
	assert.Equal(t, "tacos-42", slug.Candidate("tacos", 42))
}
