package redis

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// SetJSON 序列化后写入，expiration 为 0 表示不过期
func SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Rdb.Set(ctx, key, data, expiration).Err()
}

// GetJSON 读取并反序列化，键不存在时返回 false
func GetJSON(ctx context.Context, key string, out any) (bool, error) {
	data, err := Rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err = json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// IncrWithExpiration 自增计数，窗口内首次写入时设置过期时间
func IncrWithExpiration(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := Rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err = Rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}
