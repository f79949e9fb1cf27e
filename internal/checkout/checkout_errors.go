package checkout

import (
	"net/http"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
)

var ErrCartEmpty = apperror.New(
	apperror.CodeInvalidInput,
	"Cart is empty",
	http.StatusBadRequest,
)

// ValidationError reports every invalid field at once so the form can show
// all errors simultaneously. Keys are the JSON field names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid shipping details"
}
