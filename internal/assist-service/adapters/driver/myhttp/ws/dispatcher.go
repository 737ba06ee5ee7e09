package ws

import (
	"context"
	"net/http"
	"sync"

	websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"
	"road-assist/internal/mylogger"

	"github.com/gorilla/websocket"
)

// websocketUpgrader turns incoming HTTP requests into persistent
// websocket connections
var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Dispatcher tracks connected clients per logical channel. Channels are
// "user_<id>" and "provider_<id>"; a party may hold several connections
// (e.g. phone and web) and every one of them receives each event.
type Dispatcher struct {
	sync.RWMutex
	channels map[string]map[*Client]bool
	log      mylogger.Logger
}

func NewDispatcher(log mylogger.Logger) *Dispatcher {
	return &Dispatcher{
		channels: make(map[string]map[*Client]bool),
		log:      log,
	}
}

func (d *Dispatcher) UserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.serve(w, r, "user_"+r.PathValue("user_id"))
	}
}

func (d *Dispatcher) ProviderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.serve(w, r, "provider_"+r.PathValue("provider_id"))
	}
}

func (d *Dispatcher) serve(w http.ResponseWriter, r *http.Request, channel string) {
	log := d.log.Action("ws_connect")

	conn, err := websocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("cannot upgrade connection", err)
		return
	}

	client := NewClient(context.Background(), conn, d, channel)
	d.AddClient(client)
	go client.ReadMessage()
	go client.WriteMessage()

	log.Info("client connected", "channel", channel)
}

func (d *Dispatcher) AddClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	if d.channels[client.channel] == nil {
		d.channels[client.channel] = make(map[*Client]bool)
	}
	d.channels[client.channel][client] = true
}

func (d *Dispatcher) RemoveClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	if clients, ok := d.channels[client.channel]; ok {
		if clients[client] {
			delete(clients, client)
			close(client.egress)
			if len(clients) == 0 {
				delete(d.channels, client.channel)
			}
		}
	}
}

func (d *Dispatcher) WriteToUser(userID string, msg websocketdto.Event) {
	d.writeTo("user_"+userID, msg)
}

func (d *Dispatcher) WriteToProvider(providerID string, msg websocketdto.Event) {
	d.writeTo("provider_"+providerID, msg)
}

// writeTo is non-blocking: a client whose egress buffer is full misses
// the event rather than stalling the dispatcher.
func (d *Dispatcher) writeTo(channel string, msg websocketdto.Event) {
	d.RLock()
	defer d.RUnlock()

	clients, ok := d.channels[channel]
	if !ok {
		d.log.Action("ws_write").Debug("no active listener", "channel", channel)
		return
	}

	for client := range clients {
		select {
		case client.egress <- msg:
		default:
			d.log.Action("ws_write").Warn("dropping event, client egress full", "channel", channel)
		}
	}
}
