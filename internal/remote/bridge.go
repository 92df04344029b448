// Package remote lets outside scripts change lights over MQTT. Commands are
// handed to a sink, which forwards them to the goroutine that owns the scene.
package remote

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/gravitrone/lightman/internal/config"
	"github.com/gravitrone/lightman/internal/logging"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
	keepAlive         = 60 * time.Second
)

// Command is one attribute write requested by a remote actor.
type Command struct {
	Light string
	Attr  string
	Value string
}

// Sink receives commands. It is called on paho's goroutines and must not touch
// the scene directly.
type Sink func(Command)

// Bridge is a connected MQTT client subscribed to the set topics.
//
// Thread Safety:
//   - Ack and Close are safe for concurrent use; paho serialises the client.
type Bridge struct {
	client pahomqtt.Client
	topics Topics
	qos    byte
	log    *slog.Logger
}

// Connect dials the broker and subscribes to every set topic. The
// subscription is renewed on each reconnect.
func Connect(cfg config.MQTT, sink Sink, log *slog.Logger) (*Bridge, error) {
	if cfg.Broker == "" {
		return nil, ErrNoBroker
	}
	if log == nil {
		log = logging.NewNop()
	}
	b := &Bridge{
		topics: Topics{Prefix: cfg.TopicPrefix},
		qos:    cfg.QoS,
		log:    log,
	}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)

	handler := messageHandler(b.topics, sink, log)
	opts.SetOnConnectHandler(func(c pahomqtt.Client) {
		token := c.Subscribe(b.topics.SetWildcard(), b.qos, handler)
		if token.WaitTimeout(connectTimeout) && token.Error() != nil {
			log.Error("remote subscribe failed", "topic", b.topics.SetWildcard(), "err", token.Error())
			return
		}
		log.Info("remote bridge subscribed", "topic", b.topics.SetWildcard())
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warn("remote bridge connection lost", "error", err)
	})

	b.client = pahomqtt.NewClient(opts)
	token := b.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return b, nil
}

// Ack publishes the outcome of cmd.
func (b *Bridge) Ack(cmd Command, err error) {
	payload := "ok"
	if err != nil {
		payload = "error: " + err.Error()
	}
	token := b.client.Publish(b.topics.Ack(cmd.Light, cmd.Attr), b.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		b.log.Warn("remote ack timed out", "light", cmd.Light, "attr", cmd.Attr)
		return
	}
	if token.Error() != nil {
		b.log.Warn("remote ack failed", "light", cmd.Light, "attr", cmd.Attr, "err", token.Error())
	}
}

// Close disconnects from the broker.
func (b *Bridge) Close() {
	if b == nil || b.client == nil {
		return
	}
	b.client.Disconnect(disconnectQuiesce)
}

// messageHandler turns set messages into commands for sink.
func messageHandler(topics Topics, sink Sink, log *slog.Logger) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("remote handler panic recovered", "topic", msg.Topic(), "panic", r)
			}
		}()

		light, attr, err := topics.ParseSet(msg.Topic())
		if err != nil {
			log.Warn("remote message ignored", "topic", msg.Topic(), "error", err)
			return
		}
		cmd := Command{
			Light: light,
			Attr:  attr,
			Value: strings.TrimSpace(string(msg.Payload())),
		}
		log.Debug("remote command", "light", cmd.Light, "attr", cmd.Attr, "value", cmd.Value)
		sink(cmd)
	}
}
