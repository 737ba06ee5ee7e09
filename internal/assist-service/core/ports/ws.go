package ports

import websocketdto "road-assist/internal/assist-service/core/domain/websocket_dto"

type INotifyWebsocket interface {
	WriteToUser(userID string, msg websocketdto.Event)
	WriteToProvider(providerID string, msg websocketdto.Event)
}
