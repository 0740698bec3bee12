package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseDriver       string
	DatabaseURL          string
	SessionSecret        string
	SessionIssuer        string
	AdminUsername        string
	AdminPassword        string
	UploadStoragePath    string
	AllowedExtensions    []string
	S3Endpoint           string
	S3Bucket             string
	S3AccessKeyID        string
	S3SecretAccessKey    string
	S3Region             string
	MetricsDiskPath      string
	MetricsSampleSeconds int
	CorsOrigins          []string
}

func Load() Config {
	uploadPath := envOr("UPLOAD_STORAGE_PATH", "storage/uploads")
	return Config{
		DatabaseDriver:       envOr("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:          envOr("DATABASE_URL", "schooldesk.db"),
		SessionSecret:        mustEnv("SESSION_SECRET"),
		SessionIssuer:        envOr("SESSION_ISSUER", "schooldesk"),
		AdminUsername:        envOr("ADMIN_USERNAME", "admin"),
		AdminPassword:        envOr("ADMIN_PASSWORD", "admin123"),
		UploadStoragePath:    uploadPath,
		AllowedExtensions:    parseCSV(envOr("ALLOWED_EXTENSIONS", "pdf,docx,pptx,txt,xlsx,zip,png,jpg")),
		S3Endpoint:           envOr("S3_ENDPOINT", ""),
		S3Bucket:             envOr("S3_BUCKET", ""),
		S3AccessKeyID:        envOr("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:    envOr("S3_SECRET_ACCESS_KEY", ""),
		S3Region:             envOr("S3_REGION", "auto"),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", uploadPath),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 30),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

// RemoteStorageEnabled reports whether an object-store endpoint is configured.
// When false, uploads go straight to the local upload directory.
func (c Config) RemoteStorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
