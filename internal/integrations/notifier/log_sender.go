package notifier

import "context"

// LogSender пишет уведомления в лог, когда брокер отключен
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя в лог
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// Publish записывает сообщение в лог
func (s *LogSender) Publish(_ context.Context, msg Message) error {
	s.log.Info("Publish: %s user=%d: %s", RoutingKey(msg.Type), msg.UserID, msg.Description)
	return nil
}

// Close ничего не делает
func (s *LogSender) Close() error {
	return nil
}
