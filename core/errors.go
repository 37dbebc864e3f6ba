package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	SchemeErrorBadInput         = "SCHEME_BAD_INPUT"
	SchemeErrorNotFound         = "SCHEME_NOT_FOUND"
	SchemeErrorDuplicate        = "SCHEME_DUPLICATE"
	SchemeErrorCallbackConflict = "SCHEME_CALLBACK_CONFLICT"
	SchemeErrorProviderQuery    = "SCHEME_PROVIDER_QUERY_FAILED"
	SchemeErrorInternal         = "SCHEME_INTERNAL_ERROR"
)

// NewCallbackConflictError reports two distinct schemes resolving to the same
// non-empty callback path. It signals a configuration-authoring mistake and
// is never retried.
func NewCallbackConflictError(schemeName string, otherScheme string, callbackPath string) *goerrors.Error {
	return goerrors.New(
		fmt.Sprintf("core: callback path %q for scheme %q is already used by scheme %q", callbackPath, schemeName, otherScheme),
		goerrors.CategoryConflict,
	).
		WithCode(http.StatusConflict).
		WithTextCode(SchemeErrorCallbackConflict).
		WithMetadata(map[string]any{
			"scheme_name":        schemeName,
			"conflicting_scheme": otherScheme,
			"callback_path":      callbackPath,
		})
}

// NewProviderQueryError wraps a failed scheme-provider listing. Validation
// fails closed on it: the scheme under resolution is rejected rather than
// checked against an incomplete set.
func NewProviderQueryError(schemeName string, cause error) *goerrors.Error {
	return goerrors.Wrap(
		cause,
		goerrors.CategoryExternal,
		fmt.Sprintf("core: scheme provider listing failed while validating scheme %q", schemeName),
	).
		WithCode(http.StatusBadGateway).
		WithTextCode(SchemeErrorProviderQuery)
}

func IsCallbackConflict(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == SchemeErrorCallbackConflict
}

func IsProviderQueryFailure(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == SchemeErrorProviderQuery
}

func schemeErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureSchemeErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "scheme") && strings.Contains(msg, "not registered"):
		return newSchemeError(err.Error(), goerrors.CategoryNotFound, SchemeErrorNotFound)
	case strings.Contains(msg, "already registered"):
		return newSchemeError(err.Error(), goerrors.CategoryConflict, SchemeErrorDuplicate)
	case strings.Contains(msg, "callback path") && strings.Contains(msg, "already used"):
		return newSchemeError(err.Error(), goerrors.CategoryConflict, SchemeErrorCallbackConflict)
	case strings.Contains(msg, "provider listing"), strings.Contains(msg, "scheme provider"):
		return newSchemeError(err.Error(), goerrors.CategoryExternal, SchemeErrorProviderQuery)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mismatch"):
		return newSchemeError(err.Error(), goerrors.CategoryBadInput, SchemeErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureSchemeErrorEnvelope(mapped)
}

func newSchemeError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureSchemeErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureSchemeErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = schemeHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultSchemeTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultSchemeTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return SchemeErrorBadInput
	case goerrors.CategoryNotFound:
		return SchemeErrorNotFound
	case goerrors.CategoryConflict:
		return SchemeErrorCallbackConflict
	case goerrors.CategoryExternal:
		return SchemeErrorProviderQuery
	default:
		return SchemeErrorInternal
	}
}

func schemeHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
