package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

func TestSendManual(t *testing.T) {
	chats := newMockChatRepo()
	sender := &mockSender{}
	uc := NewMessagingUsecase(chats, sender)
	uc.now = func() time.Time { return testNow }

	require.NoError(t, uc.SendManual(context.Background(), "34600", "Hola, soy una persona"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Hola, soy una persona", sender.sent[0].Text.Body)

	history, _ := chats.List(context.Background(), "34600")
	require.Len(t, history, 1)
	assert.True(t, history[0].IsAdmin)
	assert.False(t, history[0].IsUser)
	assert.Equal(t, testNow, history[0].Timestamp)
}

func TestSendManual_DeliveryErrorNotLogged(t *testing.T) {
	chats := newMockChatRepo()
	uc := NewMessagingUsecase(chats, &mockSender{err: errBoom})

	err := uc.SendManual(context.Background(), "34600", "hola")
	assert.ErrorIs(t, err, errBoom)

	history, _ := chats.List(context.Background(), "34600")
	assert.Empty(t, history)
}

func TestSendManual_Validation(t *testing.T) {
	uc := NewMessagingUsecase(newMockChatRepo(), &mockSender{})

	assert.ErrorIs(t, uc.SendManual(context.Background(), "", "hola"), domain.ErrInvalidArgument)
	assert.ErrorIs(t, uc.SendManual(context.Background(), "34600", ""), domain.ErrInvalidArgument)
}
