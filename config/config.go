package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	SMTP         SMTPConfig
	Notification NotificationConfig
	Reminder     ReminderConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// URL builds a connection URL for the migration runner.
func (c DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NotificationConfig bounds the delivery retry loop around the mail transport.
type NotificationConfig struct {
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

// ReminderConfig drives the reminder worker scan loop.
type ReminderConfig struct {
	Interval time.Duration
	Window   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	retryAttempts := viper.GetInt("NOTIFICATION_RETRY_ATTEMPTS")
	if retryAttempts <= 0 {
		retryAttempts = 3
	}

	retryBaseDelay, err := time.ParseDuration(viper.GetString("NOTIFICATION_RETRY_BASE_DELAY"))
	if err != nil {
		retryBaseDelay = time.Second
	}

	reminderInterval, err := time.ParseDuration(viper.GetString("REMINDER_INTERVAL"))
	if err != nil {
		reminderInterval = 5 * time.Minute
	}

	reminderWindow, err := time.ParseDuration(viper.GetString("REMINDER_WINDOW"))
	if err != nil {
		reminderWindow = 10 * time.Minute
	}

	smtpPort := viper.GetInt("SMTP_PORT")
	if smtpPort == 0 {
		smtpPort = 587
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     smtpPort,
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Notification: NotificationConfig{
			RetryAttempts:  retryAttempts,
			RetryBaseDelay: retryBaseDelay,
		},
		Reminder: ReminderConfig{
			Interval: reminderInterval,
			Window:   reminderWindow,
		},
	}

	return config, nil
}
