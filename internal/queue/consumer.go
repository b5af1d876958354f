package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// Consumer listens on the ticket.purchased queue and appends one line per
// event to LogPath.
type Consumer struct {
    URL     string
    LogPath string
    Logger  *zap.Logger
}

// Run dials the broker, declares the queue (durable) and consumes until ctx
// is cancelled.  Lost connections are retried with exponential backoff;
// a message that cannot be handled is rejected without requeue so one bad
// payload cannot spin the loop.
func (c *Consumer) Run(ctx context.Context) error {
    logger := c.Logger
    if logger == nil {
        logger = zap.L()
    }
    logger = logger.With(zap.String("component", "ticket-consumer"))

    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            logger.Warn("dial broker failed", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn, logger)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logger.Warn("consume loop ended, reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection, logger *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        logger.Warn("set QoS failed", zap.Error(err))
    }
    if _, err := ch.QueueDeclare(TicketQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.ConsumeWithContext(ctx, TicketQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := c.HandleMessage(d.Body); err != nil {
            logger.Error("handle message failed", zap.Error(err))
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event and appends it to the ticket log.
func (c *Consumer) HandleMessage(body []byte) error {
    var ev TicketPurchasedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if dir := filepath.Dir(c.LogPath); dir != "" {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("mkdir %s: %w", dir, err)
        }
    }
    f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Ticket purchased | ticket_id=%d | session_id=%d | movie=%q | row=%d | seat=%d | user_id=%d | email=%s\n",
        ev.PurchasedAt, ev.TicketID, ev.SessionID, ev.SessionTitle, ev.Row, ev.Seat, ev.UserID, ev.UserEmail)
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
