// Package realtime difunde las notificaciones de stock a los navegadores conectados por WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"

	"github.com/jhoicas/home-inventory/internal/application/ports"
)

// DefaultBuffer mensajes pendientes por cliente antes de desconectarlo por lento.
const DefaultBuffer = 16

var _ ports.Publisher = (*Hub)(nil)

type subscriber struct {
	send chan []byte
}

// Hub reparte cada mensaje a todos los suscriptores. Un suscriptor con la cola llena se desconecta:
// la difusión nunca bloquea a quien publica.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	buffer int
	log    zerolog.Logger
}

// NewHub construye el hub. buffer <= 0 usa DefaultBuffer.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{subs: make(map[*subscriber]struct{}), buffer: buffer, log: log}
}

// Publish implementa ports.Publisher: serializa la notificación y la difunde.
func (h *Hub) Publish(_ context.Context, n ports.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("serializar notificación: %w", err)
	}
	h.Broadcast(payload)
	return nil
}

// Broadcast envía payload (JSON ya serializado) a todos los suscriptores.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.send <- payload:
		default:
			delete(h.subs, s)
			close(s.send)
			h.log.Warn().Msg("cliente websocket lento, desconectado")
		}
	}
}

// Subscribe registra un suscriptor. El canal se cierra al cancelar o si el hub lo descarta por lento.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	s := &subscriber{send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[s]; ok {
				delete(h.subs, s)
				close(s.send)
			}
		})
	}
	return s.send, cancel
}

// Count suscriptores activos.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Handler endpoint WebSocket: cada conexión recibe las notificaciones como mensajes de texto JSON.
// Lo que envía el cliente se descarta; su cierre termina la suscripción.
func (h *Hub) Handler() http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		defer func() { _ = conn.Close() }()

		msgs, cancel := h.Subscribe()
		defer cancel()
		h.log.Debug().Int("clients", h.Count()).Msg("cliente websocket conectado")

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = io.Copy(io.Discard, conn)
		}()

		for {
			select {
			case <-done:
				return
			case payload, ok := <-msgs:
				if !ok {
					return
				}
				if err := websocket.Message.Send(conn, string(payload)); err != nil {
					return
				}
			}
		}
	})
}
