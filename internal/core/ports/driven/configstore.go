package driven

// ConfigStore provides typed access to the application configuration.
// Implementations handle persistence (TOML on disk, memory for tests)
// and the conversion from raw values to Go types.
type ConfigStore interface {
	// Get retrieves a raw configuration value by key, reporting
	// whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value. Returns "" when the key is
	// missing or not a string.
	GetString(key string) string

	// GetInt retrieves an integer value. Returns 0 when the key is
	// missing or not an integer.
	GetInt(key string) int

	// GetFloat retrieves a floating-point value. Returns 0 when the
	// key is missing or not numeric.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value. Returns false when the key is
	// missing or not a boolean.
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
