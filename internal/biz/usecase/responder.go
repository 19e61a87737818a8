package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

// historyLookback is how many prior messages the session policy sees
const historyLookback = 2

// ResponderConfig configures reply selection
type ResponderConfig struct {
	Policy    domain.SessionPolicy
	Preambles Preambles
}

// ResponderUsecase turns inbound webhook messages into replies
type ResponderUsecase struct {
	conditionRepo repo.ConditionRepo
	chatRepo      repo.ChatRepo
	settingsRepo  repo.SettingsRepo
	sender        repo.MessageSender
	botStatusUC   *BotStatusUsecase
	config        ResponderConfig
	log           *slog.Logger
	now           func() time.Time
}

// NewResponderUsecase creates a new responder usecase
func NewResponderUsecase(
	conditionRepo repo.ConditionRepo,
	chatRepo repo.ChatRepo,
	settingsRepo repo.SettingsRepo,
	sender repo.MessageSender,
	botStatusUC *BotStatusUsecase,
	config ResponderConfig,
	log *slog.Logger,
) *ResponderUsecase {
	if config.Policy == nil {
		config.Policy = domain.TwoMessageLookback{Window: domain.SessionWindow}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ResponderUsecase{
		conditionRepo: conditionRepo,
		chatRepo:      chatRepo,
		settingsRepo:  settingsRepo,
		sender:        sender,
		botStatusUC:   botStatusUC,
		config:        config,
		log:           log.With("component", "usecase.responder"),
		now:           time.Now,
	}
}

// ProcessMessages handles the messages of one webhook delivery in order.
// The rule table and settings are loaded once; a lookup failure aborts
// the whole delivery.
func (uc *ResponderUsecase) ProcessMessages(ctx context.Context, messages []domain.InboundMessage) error {
	if len(messages) == 0 {
		return nil
	}

	conditions, err := uc.conditionRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load conditions: %w", err)
	}
	if _, err := uc.settingsRepo.Get(ctx); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	for _, msg := range messages {
		if _, err := uc.HandleInbound(ctx, conditions, msg); err != nil {
			return err
		}
	}
	return nil
}

// HandleInbound logs one inbound message and sends the selected reply.
// It returns the decision, or nil when the bot stays silent.
func (uc *ResponderUsecase) HandleInbound(ctx context.Context, conditions domain.ConditionTable, msg domain.InboundMessage) (*Decision, error) {
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = uc.now()
	}

	// History is read before the inbound message is stored so the session
	// policy sees the previous exchange only.
	history, err := uc.chatRepo.Recent(ctx, msg.From, historyLookback)
	if err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}

	inbound := msg.ToChatMessage()
	if _, err := uc.chatRepo.Append(ctx, &inbound); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	if !uc.botStatusUC.IsEnabled(ctx, msg.From) {
		uc.log.Info("Bot disabled for sender, skipping reply", "phone", msg.From)
		return nil, nil
	}

	decision := Select(SelectRequest{
		Message:    msg,
		Conditions: conditions,
		History:    history,
		Policy:     uc.config.Policy,
		Preambles:  uc.config.Preambles,
		Now:        uc.now(),
	})
	if decision == nil {
		uc.log.Debug("No condition matched", "phone", msg.From)
		return nil, nil
	}

	reply := domain.ChatMessage{
		Phone:     msg.From,
		Text:      decision.Text,
		Timestamp: uc.now(),
		IsUser:    false,
		ButtonID:  decision.ConditionID,
	}
	if _, err := uc.chatRepo.Append(ctx, &reply); err != nil {
		return nil, fmt.Errorf("save bot message: %w", err)
	}

	// The webhook must be acknowledged regardless of delivery.
	if err := uc.sender.Send(ctx, decision.Payload); err != nil {
		uc.log.Error("Failed to send reply", "phone", msg.From, "condition", decision.ConditionID, "error", err)
	} else {
		uc.log.Info("Reply sent", "phone", msg.From, "condition", decision.ConditionID, "reason", decision.Reason)
	}

	return decision, nil
}
