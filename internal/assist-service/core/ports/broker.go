package ports

import (
	"context"

	messagebrokerdto "road-assist/internal/assist-service/core/domain/message_broker_dto"
)

type IAssistBroker interface {
	Close() error
	PublishRequestEvent(ctx context.Context, msg messagebrokerdto.RequestEvent) error
}
