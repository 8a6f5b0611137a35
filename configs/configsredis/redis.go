package configsredis

import (
	"context"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// InitRedis Redis bağlantısını kurar ve ping ile doğrular.
func InitRedis() *redis.Client {
	client = redis.NewClient(&redis.Options{
		Addr:     configs.Cfg.RedisAddr,
		Password: configs.Cfg.RedisPassword,
		DB:       configs.Cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		configslog.Log.Fatal("Redis bağlantısı kurulamadı", zap.String("addr", configs.Cfg.RedisAddr), zap.Error(err))
	}

	configslog.SLog.Infof("Redis bağlantısı kuruldu: %s", configs.Cfg.RedisAddr)
	return client
}

// GetClient mevcut Redis istemcisini döndürür.
func GetClient() *redis.Client {
	return client
}

// SetClient istemciyi dışarıdan atar (testlerde miniredis benzeri kurulum için).
func SetClient(c *redis.Client) {
	client = c
}

// Key proje öneki ile bir Redis anahtarı üretir.
func Key(parts ...string) string {
	key := configs.Cfg.RedisPrefix
	if key == "" {
		key = "kvl"
	}
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// CloseRedis bağlantıyı kapatır.
func CloseRedis() {
	if client != nil {
		_ = client.Close()
	}
}
