package logging

import (
	"os"
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.Mutex
	logConfig *Config
)

// Configure validates config and stores it for GetLogger. It has no effect
// once GetLogger has built the process logger.
func Configure(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
	return nil
}

// GetLogger returns the process logger, building it on first use. Without a
// prior Configure it logs info and above to stdout. If the configured file
// cannot be opened the logger stays on stdout and says so.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		cfg := logConfig
		mu.Unlock()

		if cfg == nil {
			instance = NewWithWriter(os.Stdout, LevelInfo)
			return
		}

		l, err := NewLogger(cfg)
		if err != nil {
			instance = NewWithWriter(os.Stdout, cfg.Level)
			instance.requests = cfg.Requests
			instance.Error("Log file unavailable, logging to stdout only: %v", err)
			return
		}
		instance = l
	})

	return instance
}
