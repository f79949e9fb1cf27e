package tracking

import (
	"net/http"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
)

var (
	ErrNoOrderLoaded = apperror.New(
		apperror.CodeNotFound,
		"No order loaded",
		http.StatusNotFound,
	)

	// a newer load or a completed cancel superseded this request, its
	// result was discarded
	ErrRequestSuperseded = apperror.New(
		apperror.CodeConflict,
		"Request superseded by a newer one",
		http.StatusConflict,
	)

	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please select a reason for cancellation",
		http.StatusBadRequest,
	)
)
