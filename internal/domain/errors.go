package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams = errors.New("bad_params") // 400
	ErrNotFound  = errors.New("not_found")  // 404
	ErrForbidden = errors.New("forbidden")  // 403
	ErrConflict  = errors.New("conflict")   // 409 (уникальные email/nickname, повторный лайк)

	// Аутентификация (401); разрешаются в middleware, до хендлеров не доходят
	ErrMissingToken = errors.New("missing_token")
	ErrInvalidToken = errors.New("invalid_token") // битая подпись/структура
	ErrExpiredToken = errors.New("expired_token")
	ErrUnauth       = errors.New("unauthorized")

	// Файловое хранилище / персистентность
	ErrInvalidRef  = errors.New("invalid_reference") // ссылка вне разрешённых namespace
	ErrStorage     = errors.New("storage_error")     // I/O файлового хранилища
	ErrPersistence = errors.New("persistence_error") // ошибка записи/коммита в БД

	ErrUnexpected = errors.New("unexpected") // 500
)
