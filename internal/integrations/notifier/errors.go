package notifier

import "errors"

var (
	// ErrConnect возвращается, когда брокер недоступен
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("notifier: failed to publish message")
)
