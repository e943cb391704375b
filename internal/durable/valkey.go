// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package durable

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint for namespace scans.
const scanBatch = 100

// Valkey stores entries as plain strings under "<namespace>:<key>".
// Quota accounting counts every key in the namespace, so the ceiling holds
// even if other writers share it.
type Valkey struct {
	client    *redis.Client
	namespace string
	quota     int64
}

// NewValkey creates a Valkey-backed store. A quota <= 0 disables the ceiling.
func NewValkey(client *redis.Client, namespace string, quota int64) *Valkey {
	return &Valkey{
		client:    client,
		namespace: namespace,
		quota:     quota,
	}
}

func (v *Valkey) fullKey(key string) string {
	return v.namespace + ":" + key
}

// Get returns the value for key and whether it was present.
func (v *Valkey) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := v.client.Get(ctx, v.fullKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("durable get %s: %w", key, err)
	}
	return val, true, nil
}

// Set writes value under key unless doing so would exceed the quota.
func (v *Valkey) Set(ctx context.Context, key, value string) error {
	if v.quota > 0 {
		used, err := v.usage(ctx, key)
		if err != nil {
			return err
		}
		if !fits(v.quota, used, entrySize(key, value)) {
			slog.Warn("durable quota exceeded",
				"key", key,
				"used", used,
				"size", entrySize(key, value),
				"quota", v.quota,
			)
			return fmt.Errorf("durable set %s: %w", key, ErrQuotaExceeded)
		}
	}

	if err := v.client.Set(ctx, v.fullKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("durable set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (v *Valkey) Remove(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, v.fullKey(key)).Err(); err != nil {
		return fmt.Errorf("durable remove %s: %w", key, err)
	}
	return nil
}

// Usage returns the bytes currently used by the namespace.
func (v *Valkey) Usage(ctx context.Context) (int64, error) {
	return v.usage(ctx, "")
}

// usage sums key+value sizes over the namespace, skipping the entry for
// except so a replacement is measured against what remains.
func (v *Valkey) usage(ctx context.Context, except string) (int64, error) {
	prefix := v.namespace + ":"
	var (
		cursor uint64
		total  int64
	)
	for {
		keys, next, err := v.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return 0, fmt.Errorf("durable usage scan: %w", err)
		}

		if len(keys) > 0 {
			pipe := v.client.Pipeline()
			lens := make([]*redis.IntCmd, len(keys))
			for i, k := range keys {
				lens[i] = pipe.StrLen(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return 0, fmt.Errorf("durable usage strlen: %w", err)
			}
			for i, k := range keys {
				short := strings.TrimPrefix(k, prefix)
				if short == except {
					continue
				}
				total += int64(len(short)) + lens[i].Val()
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return total, nil
}
