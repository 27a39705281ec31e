package service

import "errors"

// ErrValidation - общий признак ошибки входных данных (HTTP 400)
var ErrValidation = errors.New("validation error")

// ErrUnauthorized возвращается, когда в запросе нет пользователя (HTTP 401)
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError несет сообщение для клиента и сопоставляется с ErrValidation через errors.Is
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
