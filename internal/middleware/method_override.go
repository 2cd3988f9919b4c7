package middleware

import (
	"net/http"
	"strings"
)

const MethodOverrideHeader = "X-HTTP-Method-Override"

// MethodOverride позволяет HTML-формам отправлять PATCH, PUT и DELETE
// через POST с полем _method или заголовком X-HTTP-Method-Override.
// Работает до роутера, поэтому оборачивает http.Handler.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.Header.Get(MethodOverrideHeader)
			if method == "" && isForm(r) {
				method = r.PostFormValue("_method")
			}
			switch method = strings.ToUpper(method); method {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}
