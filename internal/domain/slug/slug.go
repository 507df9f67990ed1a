// Package slug deriva identificadores de tenant URL-safe a partir del nombre
// del restaurante. La unicidad se resuelve en el caso de uso de registro
// sondeando ambos namespaces (usuarios y menús); aquí solo vive la parte pura.
package slug

import "strconv"

// MaxAttempts acota la búsqueda de candidatos. El sondeo es una búsqueda
// determinista (base, base-1, base-2, ...), no un retry de fallas: si se agota,
// el registro falla con domain.ErrSlugExhausted.
const MaxAttempts = 200

// Normalize convierte un nombre legible en el candidato base:
// minúsculas, todo caracter fuera de [a-z0-9] se vuelve '-', las corridas de
// '-' se colapsan y se recortan los '-' de los extremos.
func Normalize(name string) string {
	out := make([]byte, 0, len(name))
	prevDash := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
			fallthrough
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			out = append(out, c)
			prevDash = false
		default:
			if !prevDash && len(out) > 0 {
				out = append(out, '-')
			}
			prevDash = true
		}
	}
	// recorte del '-' final (el inicial nunca se emite)
	if n := len(out); n > 0 && out[n-1] == '-' {
		out = out[:n-1]
	}
	return string(out)
}

// Candidate devuelve el n-ésimo candidato para una base: la base misma para
// n=0 y "base-n" a partir de ahí.
func Candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
