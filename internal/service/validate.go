package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Сообщения об ошибках валидации, которые видит клиент
const (
	msgMissingFields   = "Missing required fields"
	msgImageURLMissing = "Image URL is required"
	msgLogoIDMissing   = "Logo ID is required for updating"
	msgBadFormat       = "Format must be png or svg"
)

// fieldMessages сопоставляет "Поле.тег" с сообщением для клиента
type fieldMessages map[string]string

var (
	saveEditedMessages = fieldMessages{
		"ImageURL.required": msgImageURLMissing,
		"LogoID.gt":         msgLogoIDMissing,
	}
	editMessages = fieldMessages{
		"ImageURL.required": msgImageURLMissing,
	}
	downloadMessages = fieldMessages{
		"ImageURL.required": msgImageURLMissing,
		"Format.oneof":      msgBadFormat,
	}
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateStruct проверяет структуру и превращает первую ошибку в ValidationError.
// Поля проверяются в порядке объявления, поэтому сообщение соответствует первому нарушению.
func (s *LogoService) validateStruct(v interface{}, messages fieldMessages, fallback string) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newValidationError(fallback)
	}

	// Пропуски обязательных полей важнее остальных нарушений
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
				return newValidationError(msg)
			}
			return newValidationError(fallback)
		}
	}

	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return newValidationError(msg)
	}
	return newValidationError(fallback)
}
