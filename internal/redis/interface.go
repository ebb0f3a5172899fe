package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so single-instance and cluster clients
// are interchangeable behind the card store
type Client interface {
	redis.UniversalClient
}
