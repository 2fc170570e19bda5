package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/segmentio/kafka-go"

    "github.com/iliyamo/booth-market/internal/config"
)

const reservationLogFile = "reservation.log"

// ReservationLogger appends one line per reservation.created event to
// <Dir>/reservation.log.
type ReservationLogger struct {
    Dir string
}

// StartReservationConsumer consumes reservation.created events from the
// configured backend until ctx is cancelled.  It returns immediately when
// events are disabled.
func StartReservationConsumer(ctx context.Context, cfg config.EventsConfig) {
    l := &ReservationLogger{Dir: cfg.LogDir}
    switch cfg.Backend {
    case config.EventsRabbitMQ:
        l.consumeRabbit(ctx, cfg.AMQPURL)
    case config.EventsKafka:
        r := kafka.NewReader(kafka.ReaderConfig{
            Brokers: cfg.KafkaBrokers,
            Topic:   cfg.KafkaTopic,
            GroupID: "reservation-log",
        })
        defer r.Close()
        l.consumeKafka(ctx, r)
    }
}

// consumeRabbit runs a reconnect loop with exponential backoff capped at
// 30s.  Each connection consumes until its delivery channel closes.
func (l *ReservationLogger) consumeRabbit(ctx context.Context, url string) {
    backoff := time.Second
    for ctx.Err() == nil {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("reservation-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = l.consumeLoop(ctx, conn)
        _ = conn.Close()
        if err != nil && ctx.Err() == nil {
            log.Printf("reservation-consumer: consume loop ended: %v; reconnecting", err)
            if !sleep(ctx, 2*time.Second) {
                return
            }
        }
    }
}

func (l *ReservationLogger) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("reservation-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(ReservationCreated, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.ConsumeWithContext(ctx, ReservationCreated, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := l.Handle(d.Body); err != nil {
            log.Printf("reservation-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // do not requeue poison messages
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// messageReader is the subset of *kafka.Reader used by consumeKafka.
type messageReader interface {
    ReadMessage(ctx context.Context) (kafka.Message, error)
}

func (l *ReservationLogger) consumeKafka(ctx context.Context, r messageReader) {
    for {
        m, err := r.ReadMessage(ctx)
        if err != nil {
            if ctx.Err() != nil {
                return
            }
            log.Printf("reservation-consumer: read message: %v", err)
            if !sleep(ctx, time.Second) {
                return
            }
            continue
        }
        if string(m.Key) != ReservationCreated {
            continue
        }
        if err := l.Handle(m.Value); err != nil {
            log.Printf("reservation-consumer: handle message failed: %v", err)
        }
    }
}

// Handle decodes one reservation.created payload and appends it to the log
// file, creating the directory when needed.
func (l *ReservationLogger) Handle(body []byte) error {
    var ev ReservationCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.ReservationID == 0 {
        return errors.New("event without reservation_id")
    }
    if err := os.MkdirAll(l.Dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", l.Dir, err)
    }
    f, err := os.OpenFile(filepath.Join(l.Dir, reservationLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Reservation created | event_id=%s | reservation_id=%d | vendor_id=%d | booth_id=%d | from=%s | to=%s | duration=%d min\n",
        ev.CreatedAt, ev.EventID, ev.ReservationID, ev.VendorID, ev.BoothID, ev.StartsAt, ev.EndsAt, ev.Duration)
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
