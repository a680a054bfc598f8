package auth

import "errors"

var (
	// ErrInvalidToken возвращается для неподписанного, просроченного или поврежденного токена
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrPasswordMismatch возвращается, когда пароль не совпадает с хешем
	ErrPasswordMismatch = errors.New("auth: password mismatch")

	// ErrHashPassword возвращается при ошибке хеширования пароля
	ErrHashPassword = errors.New("auth: failed to hash password")

	// ErrSignToken возвращается при ошибке подписи токена
	ErrSignToken = errors.New("auth: failed to sign token")
)
