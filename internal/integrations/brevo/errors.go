package brevo

import "errors"

var (
	// ErrDisabled возвращается, когда отправка писем не настроена
	ErrDisabled = errors.New("brevo client: notifications disabled")

	// ErrInvalidRequest возвращается при некорректных данных письма
	ErrInvalidRequest = errors.New("brevo client: invalid request")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("brevo client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Brevo
	ErrInvalidResponse = errors.New("brevo client: invalid response")

	// ErrRejected возвращается, когда Brevo отклонил письмо (4xx, повтор не поможет)
	ErrRejected = errors.New("brevo client: message rejected")
)
