package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Mail     Mail
}

type Server struct {
	Port    string
	BaseURL string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	TokenSecret string
}

type Mail struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_BASE_URL", "http://localhost:8080")
	viper.SetDefault("MAIL_PORT", "587")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.BaseURL = viper.GetString("SERVER_BASE_URL")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.TokenSecret = viper.GetString("AUTH_TOKEN_SECRET")

	config.Mail.Host = viper.GetString("MAIL_HOST")
	config.Mail.Port = viper.GetString("MAIL_PORT")
	config.Mail.From = viper.GetString("MAIL_FROM")
	config.Mail.Username = viper.GetString("MAIL_USERNAME")
	config.Mail.Password = viper.GetString("MAIL_PASSWORD")

	log.Info().Str("port", config.Server.Port).Str("database", config.Database.Name).Msg("Config loaded")
	return &config, nil
}
