package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

// BotStatusUsecase manages per-sender automation overrides
type BotStatusUsecase struct {
	statusRepo repo.BotStatusRepo
	log        *slog.Logger
	now        func() time.Time
}

// NewBotStatusUsecase creates a new bot status usecase
func NewBotStatusUsecase(statusRepo repo.BotStatusRepo, log *slog.Logger) *BotStatusUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &BotStatusUsecase{
		statusRepo: statusRepo,
		log:        log.With("component", "usecase.botstatus"),
		now:        time.Now,
	}
}

// resolve reads the status and reverts an expired disablement
func (uc *BotStatusUsecase) resolve(ctx context.Context, phone string) (*domain.BotStatus, bool, error) {
	status, err := uc.statusRepo.Get(ctx, phone)
	if err != nil {
		return nil, false, fmt.Errorf("get bot status: %w", err)
	}

	now := uc.now()
	enabled, expired := status.Resolve(now)
	if expired {
		status.Reenable(now)
		if err := uc.statusRepo.Save(ctx, status); err != nil {
			return nil, false, fmt.Errorf("re-enable bot: %w", err)
		}
		uc.log.Info("Bot disablement expired, re-enabled", "phone", phone)
	}
	return status, enabled, nil
}

// IsEnabled reports whether automated replies are on for the sender.
// Lookup failures are logged and count as enabled.
func (uc *BotStatusUsecase) IsEnabled(ctx context.Context, phone string) bool {
	_, enabled, err := uc.resolve(ctx, phone)
	if err != nil {
		uc.log.Error("Error checking bot status", "phone", phone, "error", err)
		return true
	}
	return enabled
}

// Get returns the enabled flag and the remaining disablement time
func (uc *BotStatusUsecase) Get(ctx context.Context, phone string) (bool, *time.Duration, error) {
	status, enabled, err := uc.resolve(ctx, phone)
	if err != nil {
		return false, nil, err
	}
	if enabled {
		return true, nil, nil
	}
	return false, status.ExpiresIn(uc.now()), nil
}

// Set stores an override for the sender. A nil expiration never expires.
func (uc *BotStatusUsecase) Set(ctx context.Context, phone string, enabled bool, expiration *time.Time, updatedBy string) error {
	if phone == "" {
		return fmt.Errorf("%w: phone number is required", domain.ErrInvalidArgument)
	}
	status := &domain.BotStatus{
		Phone:      phone,
		Enabled:    enabled,
		Expiration: expiration,
		UpdatedAt:  uc.now(),
		UpdatedBy:  updatedBy,
	}
	if err := uc.statusRepo.Save(ctx, status); err != nil {
		return fmt.Errorf("save bot status: %w", err)
	}
	uc.log.Info("Bot status updated", "phone", phone, "enabled", enabled, "by", updatedBy)
	return nil
}
