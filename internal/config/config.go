package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SheetName       string `yaml:"sheet_name"`
	CredentialsFile string `yaml:"credentials_file"`
	QueueSize       int    `yaml:"queue_size"`
}

type DefaultsConfig struct {
	TaskType string `yaml:"task_type"`
	Currency string `yaml:"currency"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Defaults.TaskType == "" {
		cfg.Defaults.TaskType = "CORRETTIVA"
	}
	if cfg.Defaults.Currency == "" {
		cfg.Defaults.Currency = "EUR"
	}
	if cfg.Sheets.SheetName == "" {
		cfg.Sheets.SheetName = "Tasks"
	}
	return &cfg
}
