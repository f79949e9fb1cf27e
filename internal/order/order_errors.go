package order

import (
	"net/http"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
)

var (
	ErrInvalidOrderID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid order ID",
		http.StatusBadRequest,
	)

	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found. Please check your ID.",
		http.StatusNotFound,
	)

	ErrOrderNotCancellable = apperror.New(
		apperror.CodeConflict,
		"Order can no longer be cancelled",
		http.StatusConflict,
	)

	ErrSubmissionFailed = apperror.New(
		apperror.CodeUpstream,
		"Order failed. Please try again.",
		http.StatusBadGateway,
	)

	ErrOrderUpstream = apperror.New(
		apperror.CodeUpstream,
		"Order service is unreachable, please retry",
		http.StatusBadGateway,
	)
)
