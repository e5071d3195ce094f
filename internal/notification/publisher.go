package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const exchangeName = "order_updates"

// Publisher replica cada cambio de estado en un exchange fanout de RabbitMQ
// para consumidores externos (paneles de sucursal, mensajería al cliente).
// Es opcional: si no hay RABBITMQ_URL configurado, el servicio funciona solo
// con el canal websocket.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("no se pudo abrir el canal: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("no se pudo declarar el exchange %s: %w", exchangeName, err)
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

func (p *Publisher) PublishOrderUpdate(ctx context.Context, upd OrderUpdate) error {
	body, err := json.Marshal(upd)
	if err != nil {
		return fmt.Errorf("no se pudo serializar el evento: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		exchangeName, // exchange
		"",           // routing key (fanout la ignora)
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("no se pudo publicar el evento: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
