package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "travel-agency"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "3001"
	DefaultLogLevel = "info"

	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultImageDir         = "./images"
	DefaultPlaceholderImage = "/images/_blank.png"
	DefaultMaxUploadSize    = 10 * 1024 * 1024 // 10MB image cap

	// Multipart bodies carry the image plus form fields, so the request
	// cap sits above the upload cap.
	DefaultMaxRequestSize = 12 * 1024 * 1024

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout  = 30 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaTopic = "voyago.bookings"
)

// DefaultAllowedOrigins covers the local dev hosts the static site is
// served from.
var DefaultAllowedOrigins = []string{
	"http://localhost:5500",
	"http://127.0.0.1:5500",
	"http://localhost:3000",
	"http://localhost:8080",
}
