package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"resptx/internal/core/engine"
)

// Init 初始化配置，加载 .env 和 config.yaml
func Init(cfgFile string) {
	// Load .env file (ignore if not exists)
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	viper.SetDefault("log.level", engine.DefaultLogLevel)
	viper.SetDefault("server.host", engine.DefaultHost)
	viper.SetDefault("server.port", engine.DefaultPort)
	viper.SetDefault("upstream.timeout", engine.DefaultTimeout)

	// Environment variables
	viper.SetEnvPrefix("RESPTX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

// Load decodes the current viper state into Settings
func Load() (*engine.Settings, error) {
	var settings engine.Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	settings.ApplyDefaults()
	return &settings, nil
}

// Watch re-loads the settings whenever the config file is written and passes
// the result to onChange. It reports false when no config file is in use.
func Watch(onChange func(*engine.Settings, error)) bool {
	if viper.ConfigFileUsed() == "" {
		return false
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(Load())
	})
	viper.WatchConfig()
	return true
}
