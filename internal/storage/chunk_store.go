package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

var (
	// ErrNotFound возвращается, если запись отсутствует в хранилище
	ErrNotFound = errors.New("запись не найдена")
	// ErrClosed возвращается при обращении к закрытому хранилищу
	ErrClosed = errors.New("хранилище закрыто")
)

const (
	chunkPrefix = "chunk:"
	metaKey     = "meta:world"

	flagEmpty byte = 1
)

// PlayerRecord: сохраняемое состояние игрока
type PlayerRecord struct {
	Position vec.Vec3Float `json:"position"`
	Yaw      float64       `json:"yaw"`
	Pitch    float64       `json:"pitch"`
}

// Meta: запись о мире целиком: сид, время сохранения и игрок
type Meta struct {
	Seed    uint32       `json:"seed"`
	SavedAt time.Time    `json:"saved_at"`
	Player  PlayerRecord `json:"player"`
}

// ChunkStore хранит чанки в BadgerDB. Значение записи: байт флагов
// (1: чанк пуст) и сжатый zstd массив из 4096 идентификаторов блоков.
// Пустой чанк хранится одним байтом флагов.
type ChunkStore struct {
	db      *badger.DB
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	mutex   sync.RWMutex
	isReady bool
	logger  *logging.Logger
}

// Open открывает (или создаёт) хранилище в dataPath/world
func Open(dataPath string, logger *logging.Logger) (*ChunkStore, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath).WithLogger(badgerLogger{logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	logger.Info("хранилище открыто: %s", dbPath)
	return &ChunkStore{
		db:      db,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
		isReady: true,
		logger:  logger,
	}, nil
}

// Path возвращает путь к базе
func (cs *ChunkStore) Path() string {
	return cs.dbPath
}

// Close закрывает хранилище
func (cs *ChunkStore) Close() error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if !cs.isReady {
		return nil
	}

	cs.isReady = false
	cs.encoder.Close()
	cs.decoder.Close()
	return cs.db.Close()
}

func chunkKey(key vec.Vec3) []byte {
	return []byte(fmt.Sprintf("%s%d:%d:%d", chunkPrefix, key.X, key.Y, key.Z))
}

func parseChunkKey(raw []byte) (vec.Vec3, error) {
	var key vec.Vec3
	s := strings.TrimPrefix(string(raw), chunkPrefix)
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &key.X, &key.Y, &key.Z); err != nil {
		return vec.Vec3{}, fmt.Errorf("ошибка парсинга ключа '%s': %w", raw, err)
	}
	return key, nil
}

func (cs *ChunkStore) encode(data world.ChunkData) []byte {
	if data.IsEmpty {
		return []byte{flagEmpty}
	}
	return cs.encoder.EncodeAll(data.Blocks, []byte{0})
}

func (cs *ChunkStore) decode(val []byte) (world.ChunkData, error) {
	if len(val) == 0 {
		return world.ChunkData{}, fmt.Errorf("%w: пустая запись", world.ErrBadChunkData)
	}
	if val[0]&flagEmpty != 0 {
		return world.ChunkData{IsEmpty: true}, nil
	}

	blocks, err := cs.decoder.DecodeAll(val[1:], make([]byte, 0, world.ChunkVolume))
	if err != nil {
		cs.logger.Debug("не распакована запись чанка:\n%s", logging.HexDump(val))
		return world.ChunkData{}, fmt.Errorf("%w: %v", world.ErrBadChunkData, err)
	}
	if len(blocks) != world.ChunkVolume {
		cs.logger.Debug("запись чанка неверного размера:\n%s", logging.HexDump(val))
		return world.ChunkData{}, fmt.Errorf("%w: %d байт вместо %d", world.ErrBadChunkData, len(blocks), world.ChunkVolume)
	}
	return world.ChunkData{Blocks: blocks}, nil
}

// SaveChunk сохраняет один чанк
func (cs *ChunkStore) SaveChunk(key vec.Vec3, data world.ChunkData) error {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return ErrClosed
	}

	err := cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(key), cs.encode(data))
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения чанка %v в BadgerDB: %w", key, err)
	}
	return nil
}

// SaveChunks сохраняет набор чанков одной пакетной записью
func (cs *ChunkStore) SaveChunks(chunks map[vec.Vec3]world.ChunkData) error {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return ErrClosed
	}

	batch := cs.db.NewWriteBatch()
	defer batch.Cancel()

	for key, data := range chunks {
		if err := batch.Set(chunkKey(key), cs.encode(data)); err != nil {
			return fmt.Errorf("ошибка записи чанка %v: %w", key, err)
		}
	}
	if err := batch.Flush(); err != nil {
		return fmt.Errorf("ошибка сохранения чанков в BadgerDB: %w", err)
	}

	cs.logger.Debug("сохранено чанков: %d", len(chunks))
	return nil
}

// LoadChunk загружает чанк; ErrNotFound, если он не сохранялся
func (cs *ChunkStore) LoadChunk(key vec.Vec3) (world.ChunkData, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return world.ChunkData{}, ErrClosed
	}

	var data world.ChunkData
	err := cs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data, err = cs.decode(val)
			return err
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return world.ChunkData{}, fmt.Errorf("чанк %v: %w", key, ErrNotFound)
	}
	if err != nil {
		return world.ChunkData{}, fmt.Errorf("ошибка чтения чанка %v: %w", key, err)
	}
	return data, nil
}

// LoadAll загружает все сохранённые чанки
func (cs *ChunkStore) LoadAll() (map[vec.Vec3]world.ChunkData, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return nil, ErrClosed
	}

	chunks := make(map[vec.Vec3]world.ChunkData)
	err := cs.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key, err := parseChunkKey(item.Key())
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				data, err := cs.decode(val)
				if err != nil {
					return fmt.Errorf("чанк %v: %w", key, err)
				}
				chunks[key] = data
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения чанков: %w", err)
	}
	return chunks, nil
}

// DeleteChunk удаляет сохранённый чанк
func (cs *ChunkStore) DeleteChunk(key vec.Vec3) error {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return ErrClosed
	}

	err := cs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(chunkKey(key))
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления чанка %v: %w", key, err)
	}
	return nil
}

// SaveMeta сохраняет запись о мире
func (cs *ChunkStore) SaveMeta(meta Meta) error {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return ErrClosed
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}

	err = cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(metaKey), data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения метаданных в BadgerDB: %w", err)
	}
	return nil
}

// LoadMeta загружает запись о мире; ErrNotFound для нового мира
func (cs *ChunkStore) LoadMeta() (Meta, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return Meta{}, ErrClosed
	}

	var data []byte
	err := cs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return Meta{}, fmt.Errorf("метаданные мира: %w", ErrNotFound)
	}
	if err != nil {
		return Meta{}, fmt.Errorf("ошибка чтения метаданных: %w", err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("ошибка десериализации метаданных: %w", err)
	}
	return meta, nil
}
