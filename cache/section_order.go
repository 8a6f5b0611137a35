package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/configs/configsredis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Bölüm sırası cache'i: istemci mount sırasında okur, uzun poll yapmaz.
// Cache kaçırıldığında DB'den okunur; yazma cache'i geçersiz kılar.
// Redis erişilemezse sessizce DB'ye düşülür, hata yüzeye çıkmaz.

const sectionOrderTTL = 12 * time.Hour

func sectionOrderKey(companyID uint) string {
	return configsredis.Key("section-order", strconv.FormatUint(uint64(companyID), 10))
}

// GetSectionOrder cache'ten bölüm sırasını okur. Kayıt yoksa ok=false döner.
func GetSectionOrder(ctx context.Context, companyID uint) ([]string, bool) {
	client := configsredis.GetClient()
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, sectionOrderKey(companyID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			configslog.Log.Warn("Bölüm sırası cache okuması başarısız", zap.Uint("companyID", companyID), zap.Error(err))
		}
		return nil, false
	}
	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, false
	}
	return order, true
}

// SetSectionOrder bölüm sırasını cache'e yazar.
func SetSectionOrder(ctx context.Context, companyID uint, order []string) {
	client := configsredis.GetClient()
	if client == nil {
		return
	}
	raw, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := client.Set(ctx, sectionOrderKey(companyID), raw, sectionOrderTTL).Err(); err != nil {
		configslog.Log.Warn("Bölüm sırası cache yazması başarısız", zap.Uint("companyID", companyID), zap.Error(err))
	}
}

// InvalidateSectionOrder cache kaydını siler.
func InvalidateSectionOrder(ctx context.Context, companyID uint) {
	client := configsredis.GetClient()
	if client == nil {
		return
	}
	_ = client.Del(ctx, sectionOrderKey(companyID)).Err()
}
