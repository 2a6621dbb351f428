package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-urlpicker/pkg/link"
)

// Store persists field values as Redis hashes with url/anchor/blank members,
// mirroring the form wire shape.
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides the key namespace.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = normalizePrefix(prefix)
	}
}

// WithTTL expires field values after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// New wraps a go-redis client.
func New(client redis.Cmdable, options ...Option) (*Store, error) {
	if client == nil {
		return nil, errors.New("redisstore: client is required")
	}
	s := &Store{client: client, prefix: DefaultPrefix}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Get reads the value for fieldID. Missing keys yield the empty value.
func (s *Store) Get(ctx context.Context, fieldID string) (link.Value, error) {
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return link.Value{}, nil
	}
	fields, err := s.client.HGetAll(ctx, FieldKey(s.prefix, fieldID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return link.Value{}, nil
		}
		return link.Value{}, fmt.Errorf("redisstore: get %q: %w", fieldID, err)
	}
	if len(fields) == 0 {
		return link.Value{}, nil
	}
	return link.Coerce(fields[hashURL], fields[hashAnchor], fields[hashBlank]), nil
}

// Set writes all three members atomically.
func (s *Store) Set(ctx context.Context, fieldID string, value link.Value) error {
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return errors.New("redisstore: field id is required")
	}
	key := FieldKey(s.prefix, fieldID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			hashURL, value.URL,
			hashAnchor, value.AnchorText,
			hashBlank, value.BlankFlag(),
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		pipe.SAdd(ctx, FieldsKey(s.prefix), fieldID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisstore: set %q: %w", fieldID, err)
	}
	return nil
}

// Delete removes a field value entirely.
func (s *Store) Delete(ctx context.Context, fieldID string) error {
	fieldID = strings.TrimSpace(fieldID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, FieldKey(s.prefix, fieldID))
		pipe.SRem(ctx, FieldsKey(s.prefix), fieldID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisstore: delete %q: %w", fieldID, err)
	}
	return nil
}

// Fields lists the field identifiers with a stored value, sorted. Ids whose
// hash expired under WithTTL are removed from the index as they are found.
func (s *Store) Fields(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, FieldsKey(s.prefix)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: list fields: %w", err)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	exists := make([]*redis.IntCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			exists[i] = pipe.Exists(ctx, FieldKey(s.prefix, id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redisstore: list fields: %w", err)
	}

	live := make([]string, 0, len(ids))
	var stale []any
	for i, id := range ids {
		if exists[i].Val() > 0 {
			live = append(live, id)
			continue
		}
		stale = append(stale, id)
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, FieldsKey(s.prefix), stale...).Err(); err != nil {
			return nil, fmt.Errorf("redisstore: prune fields: %w", err)
		}
	}
	sort.Strings(live)
	return live, nil
}
