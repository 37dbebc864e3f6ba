package query

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/WasimAhmad/DymamicAuthProviders/core"
)

func queryDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.SchemeErrorInternal)
}
