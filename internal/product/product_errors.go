package product

import (
	"net/http"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrCatalogUnavailable = apperror.New(
		apperror.CodeUpstream,
		"Product catalog is unavailable",
		http.StatusBadGateway,
	)
)
