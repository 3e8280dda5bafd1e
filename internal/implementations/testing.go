package implementations

import (
	"context"
	"os"

	"github.com/go-redis/redis/v9"
)

// CreateTestRedisClient connects to TEST_REDIS_URL and flushes the selected database.
func CreateTestRedisClient() *redis.Client {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		panic("TEST_REDIS_URL must be set.")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		panic("Could not parse TEST_REDIS_URL.")
	}
	client := redis.NewClient(opt)
	FlushTestRedis(client)
	return client
}

func FlushTestRedis(client *redis.Client) {
	if err := client.FlushDB(context.Background()).Err(); err != nil {
		panic("Could not flush test Redis database.")
	}
}
