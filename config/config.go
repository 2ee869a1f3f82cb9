package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	MySQL  MySQLConfig
	JWT    JWTConfig
	Redis  RedisConfig
	Assets AssetsConfig
}

type ServerConfig struct {
	AppEnv    string
	HTTPPort  string
	CORSAllow string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type MySQLConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AssetsConfig struct {
	// BaseDir is the on-disk root of the image tree. Product images live under
	// BaseDir/products/<productID>, thumbnails under a thumbs/ subdirectory.
	BaseDir string
	// URLPrefix is the public path the image tree is served under.
	URLPrefix string
	// Placeholder is served in slot 0 when a product has no images at all.
	Placeholder  string
	MaxWidth     int
	JPEGQuality  int
	ThumbWidth   int
	ThumbQuality int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:    getEnv("APP_ENV", "dev"),
			HTTPPort:  getEnv("HTTP_PORT", ":5000"),
			CORSAllow: getEnv("CORS_ALLOW_ORIGIN", "*"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		MySQL: MySQLConfig{
			Host:            getEnv("MYSQL_HOST", "localhost"),
			Port:            getEnv("MYSQL_PORT", "3306"),
			User:            getEnv("MYSQL_USER", "catalog"),
			Password:        getEnv("MYSQL_PASSWORD", "catalog"),
			DBName:          getEnv("MYSQL_DB", "catalog"),
			MaxOpenConns:    getEnvInt("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("MYSQL_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("MYSQL_CONN_MAX_IDLE_TIME", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Assets: AssetsConfig{
			BaseDir:      getEnv("ASSETS_BASE_DIR", "images"),
			URLPrefix:    getEnv("ASSETS_URL_PREFIX", "/images"),
			Placeholder:  getEnv("ASSETS_PLACEHOLDER", "no-image.png"),
			MaxWidth:     getEnvInt("ASSETS_MAX_WIDTH", 1600),
			JPEGQuality:  getEnvInt("ASSETS_JPEG_QUALITY", 85),
			ThumbWidth:   getEnvInt("ASSETS_THUMB_WIDTH", 200),
			ThumbQuality: getEnvInt("ASSETS_THUMB_QUALITY", 80),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
