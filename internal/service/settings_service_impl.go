package service

import (
	"context"
	"strconv"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

// Setting keys as stored in the settings table.
const (
	keyAutoStartBreak = "auto_start_break"
	keyAutoStartFocus = "auto_start_focus"
	keySoundEnabled   = "sound_enabled"
	keyNotifications  = "notifications_enabled"
	keyLogBreaks      = "log_breaks"
)

type settingsService struct {
	settings repository.SettingsRepo
	uow      db.UnitOfWork
}

func NewSettingsService(settings repository.SettingsRepo, uow db.UnitOfWork) SettingsService {
	return &settingsService{settings: settings, uow: uow}
}

func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	values, err := s.settings.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	// Missing keys keep their defaults.
	out := domain.DefaultSettings()
	readBool(values, keyAutoStartBreak, &out.AutoStartBreak)
	readBool(values, keyAutoStartFocus, &out.AutoStartFocus)
	readBool(values, keySoundEnabled, &out.SoundEnabled)
	readBool(values, keyNotifications, &out.NotificationsEnabled)
	readBool(values, keyLogBreaks, &out.LogBreaks)
	return out, nil
}

func (s *settingsService) Save(ctx context.Context, in domain.Settings) error {
	pairs := map[string]bool{
		keyAutoStartBreak: in.AutoStartBreak,
		keyAutoStartFocus: in.AutoStartFocus,
		keySoundEnabled:   in.SoundEnabled,
		keyNotifications:  in.NotificationsEnabled,
		keyLogBreaks:      in.LogBreaks,
	}

	// All keys land atomically so a partial save cannot leave a mixed
	// configuration.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSettings := repository.NewSQLiteSettingsRepo(tx)
		for key, value := range pairs {
			if err := txSettings.Set(ctx, key, strconv.FormatBool(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func readBool(values map[string]string, key string, dst *bool) {
	raw, ok := values[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseBool(raw); err == nil {
		*dst = parsed
	}
}
