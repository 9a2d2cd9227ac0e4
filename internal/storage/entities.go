package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

const itemsKey = "entities:items"

// ItemRecord: сохраняемое состояние выпавшего предмета
type ItemRecord struct {
	ID          uuid.UUID     `json:"id"`
	Item        block.BlockID `json:"item"`
	Count       int           `json:"count"`
	Position    vec.Vec3Float `json:"position"`
	Velocity    vec.Vec3Float `json:"velocity"`
	PickupDelay float64       `json:"pickup_delay"`
	Lifetime    float64       `json:"lifetime"`
}

// SaveItems сохраняет список выпавших предметов целиком, в порядке появления
func (cs *ChunkStore) SaveItems(items []*world.ItemEntity) error {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return ErrClosed
	}

	records := make([]ItemRecord, 0, len(items))
	for _, e := range items {
		records = append(records, ItemRecord{
			ID:          e.ID,
			Item:        e.Item,
			Count:       e.Count,
			Position:    e.Position,
			Velocity:    e.Velocity,
			PickupDelay: e.PickupDelay,
			Lifetime:    e.Lifetime,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("ошибка сериализации предметов: %w", err)
	}

	err = cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(itemsKey), data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения предметов в BadgerDB: %w", err)
	}
	return nil
}

// LoadItems загружает выпавшие предметы; пустой список, если их не сохраняли
func (cs *ChunkStore) LoadItems() ([]*world.ItemEntity, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return nil, ErrClosed
	}

	var data []byte
	err := cs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(itemsKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения предметов: %w", err)
	}

	var records []ItemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("ошибка десериализации предметов: %w", err)
	}

	items := make([]*world.ItemEntity, 0, len(records))
	for _, r := range records {
		if !r.Item.IsValid() || r.Count <= 0 {
			cs.logger.Warn("пропущен повреждённый предмет %v (%d x%d)", r.ID, r.Item, r.Count)
			continue
		}
		items = append(items, &world.ItemEntity{
			ID:          r.ID,
			Item:        r.Item,
			Count:       r.Count,
			Position:    r.Position,
			Velocity:    r.Velocity,
			PickupDelay: r.PickupDelay,
			Lifetime:    r.Lifetime,
		})
	}
	return items, nil
}
