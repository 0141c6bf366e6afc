package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the closed set of recognised options. Anything else in the
// environment is ignored.
type Settings struct {
	// database
	MySQLDSN        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// http
	ServerPort   int
	JWTPublicKey string

	// redis (cache + job bus); empty addr disables both
	RedisAddr     string
	RedisPassword string

	// blob backend
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	PrivateBucket  string
	PublicBucket   string
	CDNEndpoint    string

	// pipeline
	MaxImageBytes      int64
	MaxVideoBytes      int64
	SignedURLTTL       time.Duration
	ImageConcurrency   int
	VideoConcurrency   int
	ImageAttempts      int
	VideoAttempts      int
	DescriptorCacheTTL time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	for _, key := range []string{
		"MYSQL_DSN",
		"MYSQL_MAX_OPEN_CONN",
		"MYSQL_MAX_IDLE_CONNS",
		"MYSQL_CONN_MAX_LIFETIME",
		"SERVER_PORT",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("PRIVATE_BUCKET", "media-private")
	viper.SetDefault("PUBLIC_BUCKET", "media-public")
	viper.SetDefault("MAX_IMAGE_BYTES", 10*1024*1024)
	viper.SetDefault("MAX_VIDEO_BYTES", 100*1024*1024)
	viper.SetDefault("SIGNED_URL_TTL_SECONDS", 300)
	viper.SetDefault("IMAGE_CONCURRENCY", 2)
	viper.SetDefault("VIDEO_CONCURRENCY", 1)
	viper.SetDefault("IMAGE_ATTEMPTS", 3)
	viper.SetDefault("VIDEO_ATTEMPTS", 2)
	viper.SetDefault("DESCRIPTOR_CACHE_TTL_SECONDS", 3600)

	return &Settings{
		MySQLDSN:        viper.GetString("MYSQL_DSN"),
		MaxOpenConns:    viper.GetInt("MYSQL_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MYSQL_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MYSQL_CONN_MAX_LIFETIME")) * time.Second,

		ServerPort:   viper.GetInt("SERVER_PORT"),
		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		PrivateBucket:  viper.GetString("PRIVATE_BUCKET"),
		PublicBucket:   viper.GetString("PUBLIC_BUCKET"),
		CDNEndpoint:    viper.GetString("CDN_ENDPOINT"),

		MaxImageBytes:      viper.GetInt64("MAX_IMAGE_BYTES"),
		MaxVideoBytes:      viper.GetInt64("MAX_VIDEO_BYTES"),
		SignedURLTTL:       time.Duration(viper.GetInt("SIGNED_URL_TTL_SECONDS")) * time.Second,
		ImageConcurrency:   viper.GetInt("IMAGE_CONCURRENCY"),
		VideoConcurrency:   viper.GetInt("VIDEO_CONCURRENCY"),
		ImageAttempts:      viper.GetInt("IMAGE_ATTEMPTS"),
		VideoAttempts:      viper.GetInt("VIDEO_ATTEMPTS"),
		DescriptorCacheTTL: time.Duration(viper.GetInt("DESCRIPTOR_CACHE_TTL_SECONDS")) * time.Second,
	}, nil
}
