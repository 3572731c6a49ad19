// Package ws difunde a las terminales conectadas los cambios de stock confirmados.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/pkg/logger"
)

var _ ports.StockNotifier = (*Hub)(nil)

// broadcastBuffer mensajes pendientes antes de empezar a descartar.
const broadcastBuffer = 64

// Client lo que el hub necesita de una conexión; *websocket.Conn lo cumple.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub registro de clientes y difusión de mensajes.
type Hub struct {
	clients    map[Client]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub; arrancarlo con go hub.Run(ctx).
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[Client]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende altas, bajas y difusiones hasta que ctx se cancela; entonces cierra todos los clientes.
// Run solo debe arrancarse una vez.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				_ = c.Close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case c := <-h.Register:
			h.mutex.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Int("clients", n).Msg("ws client connected")

		case c := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
			}
			h.mutex.Unlock()

		case msg := <-h.Broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = c.Close()
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// ClientCount número de clientes conectados.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// NotifyStockChanged encola el evento. Si el buffer está lleno el evento se descarta:
// la venta ya está confirmada y no debe esperar a las terminales.
func (h *Hub) NotifyStockChanged(_ context.Context, event dto.StockChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("ws marshal stock event")
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		h.log.Warn().Str("action", event.Action).Msg("ws broadcast buffer lleno, evento descartado")
	}
}

// Join registra el cliente. Devuelve false si el hub ya se detuvo.
func (h *Hub) Join(c Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave da de baja el cliente; tras detenerse el hub no hace nada.
func (h *Hub) Leave(c Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// Handler mantiene la conexión registrada hasta que el cliente la cierra.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		if !h.Join(c) {
			_ = c.Close()
			return
		}
		defer h.Leave(c)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}
}
