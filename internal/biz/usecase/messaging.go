package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

// MessagingUsecase sends operator messages outside the rule engine
type MessagingUsecase struct {
	chatRepo repo.ChatRepo
	sender   repo.MessageSender
	now      func() time.Time
}

// NewMessagingUsecase creates a new messaging usecase
func NewMessagingUsecase(chatRepo repo.ChatRepo, sender repo.MessageSender) *MessagingUsecase {
	return &MessagingUsecase{
		chatRepo: chatRepo,
		sender:   sender,
		now:      time.Now,
	}
}

// SendManual delivers a text and logs it as an admin message.
// Unlike webhook replies, delivery errors are returned.
func (uc *MessagingUsecase) SendManual(ctx context.Context, phone, text string) error {
	if phone == "" || text == "" {
		return fmt.Errorf("%w: phone number and message are required", domain.ErrInvalidArgument)
	}

	if err := uc.sender.Send(ctx, domain.NewTextMessage(phone, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	msg := domain.ChatMessage{
		Phone:     phone,
		Text:      text,
		Timestamp: uc.now(),
		IsAdmin:   true,
	}
	if _, err := uc.chatRepo.Append(ctx, &msg); err != nil {
		return fmt.Errorf("save admin message: %w", err)
	}
	return nil
}
