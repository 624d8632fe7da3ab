package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"restaurant_manager/config"
)

var Redis *redis.Client

func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Redis = redis.NewClient(&redis.Options{Addr: addr})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis ping failed (%s): %v", addr, err)
	}
}
