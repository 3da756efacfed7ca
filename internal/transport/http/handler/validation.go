package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldMessages maps a request's json field names to the messages clients
// were written against. Unlisted fields get a generic message.
type fieldMessages map[string]string

// bindError converts a gin binding failure into the response shape the
// storefront expects: an ordered list of per-field errors for validation
// failures, a single message for anything unparseable.
func bindError(c *gin.Context, err error, messages fieldMessages) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldName(fe.Field())
		msg, ok := messages[name]
		if !ok {
			msg = name + " is invalid"
		}
		out = append(out, fieldError{Field: name, Message: msg})
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": out})
}

// jsonFieldName lower-cases the first rune of a struct field name, which
// matches the camelCase json tags used on every request struct here.
func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return string(structField[0]|0x20) + structField[1:]
}
