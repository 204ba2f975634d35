package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Simulator SimulatorConfig
	Auth      AuthConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

type StorageConfig struct {
	DataFile string
	IDPrefix string
}

type SimulatorConfig struct {
	PrintDelayMin   time.Duration
	PrintDelayMax   time.Duration
	SuccessRate     float64
	AutoIntervalMin time.Duration
	AutoIntervalMax time.Duration
}

type AuthConfig struct {
	AdminUser     string
	AdminPassword string
	StaffUser     string
	StaffPassword string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DATA_FILE", "data.json")
	viper.SetDefault("ID_PREFIX", "P")
	viper.SetDefault("PRINT_DELAY_MIN", "3s")
	viper.SetDefault("PRINT_DELAY_MAX", "15s")
	viper.SetDefault("PRINT_SUCCESS_RATE", 0.8)
	viper.SetDefault("AUTO_INTERVAL_MIN", "5s")
	viper.SetDefault("AUTO_INTERVAL_MAX", "10s")
	viper.SetDefault("ADMIN_USER", "datanla-admin")
	viper.SetDefault("ADMIN_PASSWORD", "@dmin123")
	viper.SetDefault("STAFF_USER", "datanla-staff")
	viper.SetDefault("STAFF_PASSWORD", "st@ff123")
	viper.SetDefault("LOG_LEVEL", "info")

	printDelayMin, err := time.ParseDuration(viper.GetString("PRINT_DELAY_MIN"))
	if err != nil {
		return nil, err
	}
	printDelayMax, err := time.ParseDuration(viper.GetString("PRINT_DELAY_MAX"))
	if err != nil {
		return nil, err
	}
	autoIntervalMin, err := time.ParseDuration(viper.GetString("AUTO_INTERVAL_MIN"))
	if err != nil {
		return nil, err
	}
	autoIntervalMax, err := time.ParseDuration(viper.GetString("AUTO_INTERVAL_MAX"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetInt("SERVER_PORT"),
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		Storage: StorageConfig{
			DataFile: viper.GetString("DATA_FILE"),
			IDPrefix: viper.GetString("ID_PREFIX"),
		},
		Simulator: SimulatorConfig{
			PrintDelayMin:   printDelayMin,
			PrintDelayMax:   printDelayMax,
			SuccessRate:     viper.GetFloat64("PRINT_SUCCESS_RATE"),
			AutoIntervalMin: autoIntervalMin,
			AutoIntervalMax: autoIntervalMax,
		},
		Auth: AuthConfig{
			AdminUser:     viper.GetString("ADMIN_USER"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
			StaffUser:     viper.GetString("STAFF_USER"),
			StaffPassword: viper.GetString("STAFF_PASSWORD"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
