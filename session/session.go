package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// Sessions live as long as the refresh token.
const TTL = 7 * 24 * time.Hour

func Init() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

func key(userID string) string {
	return "session:" + userID
}

// Establish creates a new session for the user and returns its id. Any
// previously stored session is overwritten, which invalidates tokens issued
// for it; there is no multi-session support.
func Establish(userID string) (string, error) {
	id := uuid.NewString()
	if err := Client.Set(Ctx, key(userID), id, TTL).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate reports whether sessionID is the user's current session.
func Validate(userID, sessionID string) bool {
	stored, err := Client.Get(Ctx, key(userID)).Result()
	if err != nil {
		// Missing key or redis failure both read as "no session".
		return false
	}
	return stored == sessionID
}

// Clear removes the user's session. Clearing an absent session is not an
// error.
func Clear(userID string) error {
	return Client.Del(Ctx, key(userID)).Err()
}
