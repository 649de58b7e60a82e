package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mamba-foods/stall-api/internal/auth"
	"github.com/mamba-foods/stall-api/internal/order"
	"github.com/mamba-foods/stall-api/internal/store"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (we validate via JWT)
	},
}

// Client represents a single WebSocket connection
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	topic string
	send  chan []byte
}

// ReadPump pumps messages from the WebSocket connection to the hub
// The application runs ReadPump in a per-connection goroutine
// Clients don't send messages - we just detect disconnects
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Read loop - we just wait for disconnect or errors
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
// The application runs WritePump in a per-connection goroutine
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Snapshotter supplies the full open-orders set for the kitchen display.
type Snapshotter interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

// Getter loads a single order for customer tracking connections.
type Getter interface {
	GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error)
}

// ServeKitchenWS handles WebSocket requests from staff kitchen displays
// Endpoint: WS /ws/kitchen/orders?token=JWT
// The client receives the full order snapshot on connect, then again on
// every change. Consumers always replace their local state wholesale.
func ServeKitchenWS(hub *Hub, lister Snapshotter, jwtSecret string, w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(jwtSecret, tokenStr)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.Role != auth.RoleStaff {
		http.Error(w, "staff access required", http.StatusForbidden)
		return
	}

	orders, err := lister.ListOrders(r.Context())
	if err != nil {
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:   hub,
		conn:  conn,
		topic: TopicKitchen,
		send:  make(chan []byte, 256),
	}
	client.hub.register <- client
	client.queue(snapshotEvent(orders))

	go client.WritePump()
	go client.ReadPump()
}

// ServeOrderWS handles WebSocket requests from customers tracking one order
// Endpoint: WS /ws/orders/:id?token=JWT
func ServeOrderWS(hub *Hub, getter Getter, jwtSecret string, w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(jwtSecret, tokenStr)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := getter.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load order", http.StatusInternalServerError)
		return
	}

	// Customers may only track their own orders
	if claims.Role != auth.RoleStaff && claims.SessionID != o.CustomerID {
		http.Error(w, "order access denied", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:   hub,
		conn:  conn,
		topic: OrderTopic(orderID.String()),
		send:  make(chan []byte, 256),
	}
	client.hub.register <- client
	client.queue(orderEvent(o))

	go client.WritePump()
	go client.ReadPump()
}

// queue places an event on the client's send buffer without blocking.
// Used for the initial snapshot before the pumps start.
func (c *Client) queue(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case c.send <- message:
	default:
	}
}

func snapshotEvent(orders []order.Order) Event {
	payload, _ := json.Marshal(orders)
	return Event{Type: "orders.snapshot", Payload: payload}
}

func orderEvent(o order.Order) Event {
	payload, _ := json.Marshal(o)
	return Event{Type: "order.updated", Payload: payload}
}
