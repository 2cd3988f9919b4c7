package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/MosinFAM/grams/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Message string `json:"message" validate:"notblank,max=10"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(form{Message: "Hello!"}))
}

func TestStruct_FieldErrors(t *testing.T) {
	tests := []struct {
		name string
		in   form
		want []errs.FieldError
	}{
		{name: "empty", in: form{}, want: []errs.FieldError{{Field: "message", Error: "can't be blank"}}},
		{name: "blank", in: form{Message: "  \t"}, want: []errs.FieldError{{Field: "message", Error: "can't be blank"}}},
		{name: "too long", in: form{Message: strings.Repeat("a", 11)}, want: []errs.FieldError{
			{Field: "message", Error: "is too long (maximum is 10 characters)"},
		}},
		{name: "bad email", in: form{Message: "ok", Email: "nope"}, want: []errs.FieldError{{Field: "email", Error: "is invalid"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
			assert.Equal(t, tt.want, httpErr.Errors)
		})
	}
}
