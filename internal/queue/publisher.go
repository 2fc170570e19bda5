package queue

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/segmentio/kafka-go"

    "github.com/iliyamo/booth-market/internal/config"
)

// Publisher delivers domain events.  Implementations log and return
// failures; callers are expected to ignore them so a broker outage never
// fails the request that produced the event.
type Publisher interface {
    Publish(ctx context.Context, key string, event any) error
    Close() error
}

// NewPublisher returns the publisher selected by cfg.Backend.
func NewPublisher(cfg config.EventsConfig) Publisher {
    switch cfg.Backend {
    case config.EventsRabbitMQ:
        return &RabbitPublisher{URL: cfg.AMQPURL}
    case config.EventsKafka:
        return NewKafkaPublisher(&kafka.Writer{
            Addr:         kafka.TCP(cfg.KafkaBrokers...),
            Topic:        cfg.KafkaTopic,
            Balancer:     &kafka.Hash{},
            RequiredAcks: kafka.RequireOne,
        })
    default:
        return NopPublisher{}
    }
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }

// RabbitPublisher publishes each event as a persistent JSON message to the
// durable queue named by its key, through the default exchange.  A
// connection is dialled per publish.
type RabbitPublisher struct {
    URL string
}

func (p *RabbitPublisher) Publish(ctx context.Context, key string, event any) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // durable, not auto-deleted, not exclusive
    if _, err := ch.QueueDeclare(key, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare %s failed: %v", key, err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", key, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish %s failed: %v", key, err)
        return err
    }
    return nil
}

func (p *RabbitPublisher) Close() error { return nil }

// messageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type messageWriter interface {
    WriteMessages(ctx context.Context, msgs ...kafka.Message) error
    Close() error
}

// KafkaPublisher writes events to a single topic keyed by event type.
type KafkaPublisher struct {
    Writer messageWriter
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
    return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, event any) error {
    payload, err := json.Marshal(event)
    if err != nil {
        log.Printf("kafka: marshal event failed: %v", err)
        return err
    }
    if err := p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: payload}); err != nil {
        log.Printf("kafka: publish %s failed: %v", key, err)
        return err
    }
    return nil
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }
