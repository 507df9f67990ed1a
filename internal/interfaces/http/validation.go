package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida; los tags viven en los DTOs.
var validate = validator.New()

// validateStruct devuelve un detalle legible por campo inválido, o nil si pasa.
func validateStruct(in any) []string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
		if e.Param() != "" {
			details = append(details, fmt.Sprintf("%s: %s=%s", field, e.Tag(), e.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s: %s", field, e.Tag()))
		}
	}
	return details
}
