package cache

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Valkey is the external cache backend.
type Valkey struct {
	client valkey.Client
}

// NewValkey connects to a valkey (or redis-compatible) server at addr.
func NewValkey(addr string) (*Valkey, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{addr},
		ConnWriteTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &Valkey{client: client}, nil
}

func (v *Valkey) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res := v.client.Do(ctx, v.client.B().Get().Key(key).Build())
	value, err := res.AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (v *Valkey) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := v.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Ex(ttl).Build()
	return v.client.Do(ctx, cmd).Error()
}

func (v *Valkey) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		res := v.client.Do(ctx, v.client.B().Scan().Cursor(cursor).Match(prefix+"*").Count(100).Build())
		entry, err := res.AsScanEntry()
		if err != nil {
			return err
		}
		if len(entry.Elements) > 0 {
			del := v.client.B().Del().Key(entry.Elements...).Build()
			if err := v.client.Do(ctx, del).Error(); err != nil {
				return err
			}
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

func (v *Valkey) Close() error {
	v.client.Close()
	return nil
}
