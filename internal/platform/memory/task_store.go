package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/phrazzld/taskops-api/internal/domain"
	"github.com/phrazzld/taskops-api/internal/platform/logger"
	"github.com/phrazzld/taskops-api/internal/store"
)

const componentName = "task_store"

// DefaultShardCount is used when NewMemoryTaskStore is given a non-positive count.
const DefaultShardCount = 32

// taskShard is one independently locked partition of the task map.
type taskShard struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
}

// MemoryTaskStore implements the store.TaskStore interface with a sharded map.
//
// Each key lives in exactly one shard, picked by hashing the UUID bytes.
// Every operation holds at most one shard lock at a time, so writers to
// unrelated keys rarely contend. Tasks are cloned on the way in and out, so
// callers never share memory with a stored task.
type MemoryTaskStore struct {
	shards []*taskShard
	mask   uint64
	logger *slog.Logger
}

// NewMemoryTaskStore creates an empty store split into shardCount shards.
// shardCount must be a power of two; zero or negative selects DefaultShardCount.
// If logger is nil, a default logger will be used.
func NewMemoryTaskStore(shardCount int, logger *slog.Logger) *MemoryTaskStore {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	if shardCount&(shardCount-1) != 0 {
		// ALLOW-PANIC: Constructor enforcing configuration validated at load time
		panic(fmt.Sprintf("shard count must be a power of two, got %d", shardCount))
	}

	if logger == nil {
		logger = slog.Default()
	}

	shards := make([]*taskShard, shardCount)
	for i := range shards {
		shards[i] = &taskShard{tasks: make(map[uuid.UUID]domain.Task)}
	}

	return &MemoryTaskStore{
		shards: shards,
		mask:   uint64(shardCount - 1),
		logger: logger.With(slog.String("component", componentName)),
	}
}

// Ensure MemoryTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MemoryTaskStore)(nil)

func (s *MemoryTaskStore) shardFor(id uuid.UUID) *taskShard {
	return s.shards[xxhash.Sum64(id[:])&s.mask]
}

// GetAll implements store.TaskStore.GetAll.
// Shards are copied one at a time, so the result is consistent per shard
// but not a single point-in-time view of the whole store.
func (s *MemoryTaskStore) GetAll(ctx context.Context) []domain.Task {
	tasks := make([]domain.Task, 0, s.Len(ctx))
	for _, shard := range s.shards {
		shard.mu.RLock()
		for _, task := range shard.tasks {
			tasks = append(tasks, task.Clone())
		}
		shard.mu.RUnlock()
	}

	return tasks
}

// GetByID implements store.TaskStore.GetByID.
func (s *MemoryTaskStore) GetByID(_ context.Context, id uuid.UUID) (domain.Task, bool) {
	shard := s.shardFor(id)

	shard.mu.RLock()
	task, ok := shard.tasks[id]
	if ok {
		task = task.Clone()
	}
	shard.mu.RUnlock()

	return task, ok
}

// Add implements store.TaskStore.Add.
// An existing task with the same ID wins; the new one is dropped.
func (s *MemoryTaskStore) Add(ctx context.Context, task domain.Task) bool {
	shard := s.shardFor(task.ID)

	shard.mu.Lock()
	_, exists := shard.tasks[task.ID]
	if !exists {
		shard.tasks[task.ID] = task.Clone()
	}
	shard.mu.Unlock()

	if exists {
		logger.ForComponent(ctx, s.logger, componentName).Warn("task id collision, keeping existing task",
			slog.String("task_id", task.ID.String()))
		return false
	}
	return true
}

// Update implements store.TaskStore.Update.
func (s *MemoryTaskStore) Update(ctx context.Context, task domain.Task) bool {
	shard := s.shardFor(task.ID)

	shard.mu.Lock()
	_, exists := shard.tasks[task.ID]
	if exists {
		shard.tasks[task.ID] = task.Clone()
	}
	shard.mu.Unlock()

	if !exists {
		logger.ForComponent(ctx, s.logger, componentName).Debug("update dropped for unknown task",
			slog.String("task_id", task.ID.String()))
	}
	return exists
}

// Delete implements store.TaskStore.Delete.
func (s *MemoryTaskStore) Delete(_ context.Context, id uuid.UUID) bool {
	shard := s.shardFor(id)

	shard.mu.Lock()
	_, exists := shard.tasks[id]
	if exists {
		delete(shard.tasks, id)
	}
	shard.mu.Unlock()

	return exists
}

// Len implements store.TaskStore.Len.
func (s *MemoryTaskStore) Len(_ context.Context) int {
	n := 0
	for _, shard := range s.shards {
		shard.mu.RLock()
		n += len(shard.tasks)
		shard.mu.RUnlock()
	}
	return n
}
