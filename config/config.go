package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds the runtime configuration and the shared Mongo client used by
// every controller.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	JWTTTL         time.Duration
	AllowedOrigins []string

	MongoClient *mongo.Client
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment and connects to MongoDB.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getenv("PORT", "8443"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:    getenv("DB_NAME", "eclesial"),
		JWTSecret: getenv("JWT_SECRET", ""),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttlHours := getenv("JWT_TTL_HOURS", "24")
	var hours int
	if _, err := fmt.Sscanf(ttlHours, "%d", &hours); err != nil || hours <= 0 {
		hours = 24
	}
	cfg.JWTTTL = time.Duration(hours) * time.Hour

	if origins := getenv("ALLOWED_ORIGINS", "*"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSpace(o))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	cfg.MongoClient = client

	return cfg, nil
}

// Collection is a shorthand for the named collection in the configured database.
func (c *Config) Collection(name string) *mongo.Collection {
	return c.MongoClient.Database(c.DBName).Collection(name)
}
