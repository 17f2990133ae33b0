package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds settings loaded from a worldseedr.toml file. Every field has
// a zero-value default so an absent config file is equivalent to an empty
// one.
type Config struct {
	DefaultSeed int64         `toml:"default_seed"`
	MaxDepth    int           `toml:"max_depth"`
	CacheDir    string        `toml:"cache_dir"`
	Redis       RedisSettings `toml:"redis"`
	Mongo       MongoSettings `toml:"mongo"`
}

// RedisSettings configures the optional Redis-backed run cache.
type RedisSettings struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
	DB      int    `toml:"db"`
}

// MongoSettings configures the optional Mongo-backed run store.
type MongoSettings struct {
	Enabled    bool   `toml:"enabled"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LoadConfig reads and decodes a TOML config file at path. A missing file
// is not an error - it returns the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
