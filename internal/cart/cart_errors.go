package cart

import (
	"net/http"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
)

var (
	ErrInvalidItem = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid cart item",
		http.StatusBadRequest,
	)

	ErrCartStorage = apperror.New(
		apperror.CodeInternalError,
		"Failed to persist cart",
		http.StatusInternalServerError,
	)
)
