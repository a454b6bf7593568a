package ingestd

import "github.com/gofiber/websocket/v2"

// Hub maintains the set of feed subscribers and fans broadcast messages out
// to them. All map access happens on the Run goroutine.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) Register(c *websocket.Conn)   { h.register <- c }
func (h *Hub) Unregister(c *websocket.Conn) { h.unregister <- c }

// Broadcast queues a message for every subscriber. Drops the message when the
// hub is saturated rather than stalling the ingest path.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				c.Close()
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					delete(h.clients, c)
					c.Close()
				}
			}
		}
	}
}
