package server

import (
	"io/ioutil"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml"

	"github.com/hbtc-chain/bhvault/client/flags"
)

// Config is the content of config/config.toml. Keys match the command line
// flags so a flag given on the command line overrides the file.
type Config struct {
	LogLevel       string `toml:"log_level"`
	InvCheckPeriod int64  `toml:"inv-check-period"`
	BlockInterval  string `toml:"block-interval"`
	RestListenAddr string `toml:"laddr"`
	MaxOpenConns   int64  `toml:"max-open"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:       flags.DefaultLogLevel,
		InvCheckPeriod: 1,
		BlockInterval:  "5s",
		RestListenAddr: "tcp://localhost:1317",
		MaxOpenConns:   1000,
	}
}

// WriteConfigFile renders cfg as TOML into path.
func WriteConfigFile(path string, cfg Config) error {
	bz, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return ioutil.WriteFile(path, bz, 0644)
}

// ReadConfigFile loads a config written by WriteConfigFile.
func ReadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	bz, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = toml.Unmarshal(bz, &cfg)
	return cfg, err
}
