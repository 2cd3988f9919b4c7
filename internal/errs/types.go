package errs

import "strings"

// FieldError - ошибка валидации конкретного поля формы
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType - что клиент должен сделать дальше
type ActionType string

const (
	ActionTypeRedirect ActionType = "redirect"
)

// Action - подсказка клиенту; для redirect Value содержит путь
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError - ошибка с готовой формой ответа
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
	Action  *Action      `json:"action,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is сравнивает ошибки по коду, сообщение не учитывается
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	return ok && t.Code == e.Code
}

func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
		Action:  e.Action,
	}
}

// Redirect возвращает путь перенаправления, если ошибка его несёт
func (e *HTTPError) Redirect() (string, bool) {
	if e.Action == nil || e.Action.Type != ActionTypeRedirect {
		return "", false
	}
	return e.Action.Value, true
}

func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
