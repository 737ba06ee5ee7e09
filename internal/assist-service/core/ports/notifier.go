package ports

import websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"

// INotifier is the fire-and-forget side of the lifecycle: a dispatch
// runs on its own goroutine, failures are logged and swallowed, and the
// caller never observes an outcome. The request mutation has already
// committed by the time a notification is sent.
type INotifier interface {
	NotifyUser(userID, event string, payload websocketdto.RequestEventDto)
	NotifyProvider(providerID, event string, payload websocketdto.RequestEventDto)
}
