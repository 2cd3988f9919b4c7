package errs

import (
	"errors"
	"net/http"
)

// SignInPath - страница входа, куда отправляются неаутентифицированные запросы
const SignInPath = "/users/sign_in"

const CodeNotAuthenticated = "NOT_AUTHENTICATED"

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

func NewNotAuthenticatedError() *HTTPError {
	return &HTTPError{
		Code:    CodeNotAuthenticated,
		Message: "You need to sign in or sign up before continuing.",
		Status:  http.StatusUnauthorized,
		Action: &Action{
			Type:    ActionTypeRedirect,
			Message: "sign in",
			Value:   SignInPath,
		},
	}
}

func NewUnauthorizedError(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message)
}

func NewForbiddenError(message string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message)
}

func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

func NewBadRequestError(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message)
}

func NewUnprocessableError(message string, fields []FieldError) *HTTPError {
	e := newHTTPError(http.StatusUnprocessableEntity, message)
	e.Errors = fields
	return e
}

func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// Status возвращает HTTP-статус ошибки; всё, что не HTTPError, считается 500
func Status(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}
