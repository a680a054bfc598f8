package accounts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accounts: invalid input data")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("accounts: email already registered")

	// ErrPlateTaken возвращается, когда номер автомобиля уже зарегистрирован
	ErrPlateTaken = errors.New("accounts: plate number already registered")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("accounts: invalid email or password")

	// ErrForbidden возвращается, когда операция недоступна субъекту
	ErrForbidden = errors.New("accounts: forbidden")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("accounts: internal error")
)
