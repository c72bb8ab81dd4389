package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig contains the backing-document settings.
type StoreConfig struct {
	// Path is the location of the XML document holding the collection.
	Path string `mapstructure:"path" validate:"required"`

	// Locking selects the concurrency model for the load-mutate-save
	// sequence. "none" reproduces the original unguarded behavior, where
	// two concurrent mutations race and the later save wins. "mutex"
	// serializes the critical section per document.
	Locking string `mapstructure:"locking" validate:"required,oneof=none mutex"`
}
