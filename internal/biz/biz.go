package biz

import (
	"github.com/cid-docencia/wa-responder/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Responder *usecase.ResponderUsecase
	BotStatus *usecase.BotStatusUsecase
	Token     *usecase.TokenUsecase
	Messaging *usecase.MessagingUsecase
}
