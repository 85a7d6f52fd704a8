package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type UploadConfig struct {
	MaxBytes int64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	maxBytes := viper.GetInt64("UPLOAD_MAX_BYTES")
	if maxBytes <= 0 {
		maxBytes = 50 << 20 // 50 MB covers a full multi-image gallery upload
	}

	mongoURI := viper.GetString("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoDatabase := viper.GetString("MONGO_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "catalogdb"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Mongo: MongoConfig{
			URI:      mongoURI,
			Database: mongoDatabase,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Upload: UploadConfig{
			MaxBytes: maxBytes,
		},
	}

	return config, nil
}
