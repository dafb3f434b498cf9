// Package redis reparte las notificaciones de stock entre réplicas de la API usando Redis pub/sub.
// Cada réplica publica en el canal y un Relay por réplica reenvía lo recibido a su hub local.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/home-inventory/internal/application/ports"
)

// NewClient crea el cliente y comprueba la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

var _ ports.Publisher = (*Broadcaster)(nil)

// Broadcaster publica las notificaciones en un canal de Redis.
type Broadcaster struct {
	rdb     *goredis.Client
	channel string
}

// NewBroadcaster construye el publicador.
func NewBroadcaster(rdb *goredis.Client, channel string) *Broadcaster {
	return &Broadcaster{rdb: rdb, channel: channel}
}

// Publish implementa ports.Publisher.
func (b *Broadcaster) Publish(ctx context.Context, n ports.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("serializar notificación: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Sink destino local de los mensajes recibidos (realtime.Hub).
type Sink interface {
	Broadcast(payload []byte)
}

// Relay escucha el canal y reenvía cada mensaje al sink.
type Relay struct {
	rdb     *goredis.Client
	channel string
	sink    Sink
	log     zerolog.Logger
}

// NewRelay construye el relay.
func NewRelay(rdb *goredis.Client, channel string, sink Sink, log zerolog.Logger) *Relay {
	return &Relay{rdb: rdb, channel: channel, sink: sink, log: log}
}

// Run se suscribe y reenvía hasta que ctx se cancela. go-redis reconecta solo si cae la conexión.
// ready (opcional) se cierra cuando la suscripción está confirmada.
func (r *Relay) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe %s: %w", r.channel, err)
	}
	if ready != nil {
		close(ready)
	}
	r.log.Info().Str("channel", r.channel).Msg("relay de notificaciones suscrito")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.sink.Broadcast([]byte(msg.Payload))
		}
	}
}
