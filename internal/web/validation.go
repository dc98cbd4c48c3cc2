package web

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var fieldLabels = map[string]string{
	"Email":        "correo",
	"Password":     "contraseña",
	"FirstName":    "nombre",
	"LastName":     "apellido",
	"Phone":        "teléfono",
	"Name":         "nombre",
	"URL":          "enlace",
	"Label":        "etiqueta",
	"Price":        "precio",
	"Capacity":     "cupo",
	"StartsAt":     "inicio",
	"DurationMins": "duración",
}

// FormError turns a form binding failure into a readable Spanish message.
// Anything that is not a field validation error gets the fallback.
func FormError(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fallback
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	if len(msgs) == 0 {
		return fallback
	}
	return strings.Join(msgs, " ")
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return "El campo " + label + " es requerido."
	case "email":
		return "El " + label + " no es una dirección válida."
	case "min":
		return "El campo " + label + " debe tener al menos " + fe.Param() + " caracteres."
	case "max":
		return "El campo " + label + " debe tener a lo más " + fe.Param() + " caracteres."
	case "url":
		return "El " + label + " debe ser una URL completa."
	case "gte":
		return "El campo " + label + " debe ser al menos " + fe.Param() + "."
	default:
		return "El campo " + label + " no es válido."
	}
}
