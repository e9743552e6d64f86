package driving

import "github.com/bookwise-labs/bookwise-cli/internal/core/domain"

// SettingsService loads and validates the application settings.
type SettingsService interface {
	// Load reads the settings record and returns the typed settings.
	// A missing required key fails with an error wrapping
	// domain.ErrConfigMissing that names the key; invalid values fail
	// with domain.ErrInvalidConfig. Validation is eager: no index or
	// model work happens before Load succeeds.
	Load() (domain.Settings, error)
}
