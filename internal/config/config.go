package config

import (
	"os"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	StorageDriver string // "r2" (default) or "images"

	R2               R2Config
	CloudflareImages struct {
		AccountID string
		Token     string
		Hash      string // account hash for imagedelivery.net URLs
	}
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Port = os.Getenv("PORT")
	cfg.MongoURI = os.Getenv("MONGO_URI")
	cfg.MongoDB = os.Getenv("MONGO_DB")
	cfg.StorageDriver = os.Getenv("STORAGE_DRIVER")
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = "r2"
	}

	// R2 config
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	// Cloudflare Images config
	cfg.CloudflareImages.AccountID = os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	cfg.CloudflareImages.Token = os.Getenv("CLOUDFLARE_IMAGES_TOKEN")
	cfg.CloudflareImages.Hash = os.Getenv("CLOUDFLARE_IMAGES_HASH")

	return cfg
}
