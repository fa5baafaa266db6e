package draftstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/internal/domain/repository"
)

var _ repository.DraftRepository = (*RedisStore)(nil)

// RedisStore borradores en Redis (JSON) con TTL renovado en cada guardado. Permite
// varias instancias del servicio detrás de un balanceador.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func draftKey(id string) string {
	return fmt.Sprintf("gestiva:draft:%s", id)
}

// encodeDraft y decodeDraft definen el formato guardado en Redis.
func encodeDraft(d *entity.MovementDraft) ([]byte, error) {
	return json.Marshal(d)
}

func decodeDraft(data []byte) (*entity.MovementDraft, error) {
	var d entity.MovementDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *RedisStore) Save(ctx context.Context, d *entity.MovementDraft) error {
	data, err := encodeDraft(d)
	if err != nil {
		return fmt.Errorf("draftstore: serializar borrador: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(d.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("draftstore: guardar borrador %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*entity.MovementDraft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("draftstore: leer borrador %s: %w", id, err)
	}
	d, err := decodeDraft(data)
	if err != nil {
		return nil, fmt.Errorf("draftstore: borrador %s corrupto: %w", id, err)
	}
	return d, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, draftKey(id)).Err()
}
