package notification

import (
	"context"
	"encoding/json"
	"time"

	websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/mylogger"

	messagebrokerdto "road-assist/internal/assist-service/core/domain/message_broker_dto"

	"github.com/google/uuid"
)

const publishTimeout = 5 * time.Second

// Dispatcher fans lifecycle events out to the websocket channel of the
// affected party and to the message broker. Every dispatch runs on its
// own goroutine; failures are logged here and never reach the lifecycle
// operation that triggered them.
type Dispatcher struct {
	ctx    context.Context
	mylog  mylogger.Logger
	ws     ports.INotifyWebsocket
	broker ports.IAssistBroker
}

// New builds the dispatcher. ws and broker may each be nil; a missing
// sink is simply skipped.
func New(ctx context.Context,
	log mylogger.Logger,
	ws ports.INotifyWebsocket,
	broker ports.IAssistBroker,
) ports.INotifier {
	return &Dispatcher{
		ctx:    ctx,
		mylog:  log,
		ws:     ws,
		broker: broker,
	}
}

func (d *Dispatcher) NotifyUser(userID, event string, payload websocketdto.RequestEventDto) {
	go d.send("user", userID, event, payload)
}

func (d *Dispatcher) NotifyProvider(providerID, event string, payload websocketdto.RequestEventDto) {
	go d.send("provider", providerID, event, payload)
}

func (d *Dispatcher) send(kind, id, event string, payload websocketdto.RequestEventDto) {
	log := d.mylog.Action("notify").With("event", event, "channel", kind+"_"+id)

	defer func() {
		if r := recover(); r != nil {
			log.Warn("notification dispatch panicked", "panic", r)
		}
	}()

	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn("cannot marshal notification payload", "err", err.Error())
		return
	}

	eventMsg := websocketdto.Event{
		Type: event,
		Data: data,
	}

	if d.ws != nil {
		switch kind {
		case "user":
			d.ws.WriteToUser(id, eventMsg)
		case "provider":
			d.ws.WriteToProvider(id, eventMsg)
		}
	}

	if d.broker != nil {
		ctx, cancel := context.WithTimeout(d.ctx, publishTimeout)
		defer cancel()

		msg := messagebrokerdto.RequestEvent{
			RequestId:     payload.RequestId,
			Event:         event,
			Status:        payload.Status,
			UserId:        payload.UserId,
			ProviderId:    payload.ProviderId,
			Reason:        payload.Reason,
			Timestamp:     time.Now().Format(time.RFC3339),
			CorrelationID: uuid.NewString(),
		}
		if err := d.broker.PublishRequestEvent(ctx, msg); err != nil {
			// best effort only; the request mutation already committed
			log.Warn("cannot publish notification to broker", "err", err.Error())
		}
	}

	log.Debug("notification dispatched")
}
