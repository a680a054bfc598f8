package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// channel часть *amqp.Channel, которая нужна издателю
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует уведомления в topic exchange RabbitMQ
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	timeout  time.Duration
	log      Logger
}

// Dial подключается к брокеру и объявляет exchange
func Dial(url, exchange string, timeout time.Duration, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		exchangeKind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	log.Info("Dial: connected to broker, exchange=%s", exchange)

	p := newPublisher(ch, exchange, timeout, log)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, timeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		timeout:  timeout,
		log:      log,
	}
}

// Publish отправляет сообщение с ключом маршрутизации notification.<type>
func (p *Publisher) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	routingKey := RoutingKey(msg.Type)

	// amqp.Channel не безопасен для конкурентной публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    msg.CreatedAt,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, routingKey, err)
	}

	p.log.Info("Publish: sent %s to user=%d", routingKey, msg.UserID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.log.Warn("Close: failed to close channel: %v", err)
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RoutingKey ключ маршрутизации для типа уведомления
func RoutingKey(notificationType string) string {
	return "notification." + strings.ToLower(notificationType)
}
