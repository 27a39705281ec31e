package storage

import "errors"

// ErrLogoNotFound возвращается, когда логотип не найден или принадлежит другому пользователю
var ErrLogoNotFound = errors.New("logo not found")
