package rmq

import (
	"encoding/json"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"mediscreen.com/prescreen/logger"
	"mediscreen.com/prescreen/types"
	"sync"
	"time"
)

type Config struct {
	Host          string `envconfig:"PRESCREEN_RMQ_HOST" required:"true"`
	Port          string `envconfig:"PRESCREEN_RMQ_PORT" required:"true"`
	Username      string `envconfig:"PRESCREEN_RMQ_USERNAME" required:"true"`
	Password      string `envconfig:"PRESCREEN_RMQ_PASSWORD" required:"true"`
	Exchange      string `envconfig:"PRESCREEN_RMQ_EXCHANGE" default:"prescreen-exchange"`
	FollowUpQueue string `envconfig:"PRESCREEN_RMQ_FOLLOW_UP_QUEUE" default:"prescreen-follow-up"`
}

// Client publishes follow-up requests for eligible callers.
type Client struct {
	config Config
	logger zerolog.Logger

	mu        sync.Mutex
	conn      *amqp.Connection
	channel   *amqp.Channel
	closeErrs <-chan *amqp.Error
}

func NewClient() (*Client, error) {
	rmqLogger := logger.NewLogger("RMQ client")
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		rmqLogger.Error().Err(err).Msg("Could not read env config")
		return nil, err
	}

	client := &Client{config: config, logger: rmqLogger}
	if err := client.connect(); err != nil {
		return nil, err
	}
	return client, nil
}

// Reconnect replaces a connection the broker has dropped.
func (c *Client) Reconnect() error {
	c.logger.Info().Msg("reconnecting")
	return c.connect()
}

// CloseErrors delivers at most one error when the current channel is
// closed by the broker or the network. A new channel comes with each
// Reconnect.
func (c *Client) CloseErrors() <-chan *amqp.Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeErrs
}

func (c *Client) connect() error {
	conn, channel, err := setup(getURL(c.config))
	if err != nil {
		return fmt.Errorf("failed connection: %w", err)
	}
	if err := declare(channel, c.config); err != nil {
		_ = conn.Close()
		return err
	}

	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.channel = channel
	c.closeErrs = channel.NotifyClose(make(chan *amqp.Error, 1))
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

func declare(channel *amqp.Channel, config Config) error {
	if err := channel.ExchangeDeclare(
		config.Exchange, // name
		"direct",        // kind
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %s", err)
	}
	q, err := channel.QueueDeclare(
		config.FollowUpQueue, // name
		true,                 // durable
		false,                // delete when unused
		false,                // exclusive
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %s", err)
	}
	return channel.QueueBind(q.Name, q.Name, config.Exchange, false, nil)
}

func (c *Client) PublishFollowUp(followUp types.FollowUp) error {
	msg, err := NewFollowUpMessage(followUp)
	if err != nil {
		return err
	}
	c.logger.Debug().Str("call_sid", followUp.CallSid).Msg("publishing follow-up")
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()
	return channel.Publish(
		c.config.Exchange,
		c.config.FollowUpQueue,
		false,
		false,
		msg)
}

func NewFollowUpMessage(followUp types.FollowUp) (amqp.Publishing, error) {
	b, err := json.Marshal(followUp)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    followUp.CallSid,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	}, nil
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.channel.Close()
	_ = c.conn.Close()
}

func getURL(config Config) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s", config.Username, config.Password, config.Host, config.Port)
}

func setup(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}
