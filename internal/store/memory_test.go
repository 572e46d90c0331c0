package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"disputedesk/internal/domain/dispute"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, createdAt time.Time) dispute.Event {
	return dispute.Event{ID: id, CreatedAt: createdAt, Status: dispute.StatusOpened}
}

func TestMemoryPut(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("upsert by id replaces, never duplicates", func(t *testing.T) {
		m := NewMemory(10)

		first := rec("cb_1", base)
		require.NoError(t, m.Put(ctx, first))

		updated := first
		updated.Status = dispute.StatusWon
		require.NoError(t, m.Put(ctx, updated))

		all, err := m.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, dispute.StatusWon, all[0].Status)
	})

	t.Run("reads come back most recent first", func(t *testing.T) {
		m := NewMemory(10)

		require.NoError(t, m.Put(ctx, rec("old", base.Add(-2*time.Hour))))
		require.NoError(t, m.Put(ctx, rec("newest", base)))
		require.NoError(t, m.Put(ctx, rec("mid", base.Add(-time.Hour))))

		all, err := m.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "newest", all[0].ID)
		assert.Equal(t, "mid", all[1].ID)
		assert.Equal(t, "old", all[2].ID)
	})

	t.Run("insert past capacity evicts exactly the oldest", func(t *testing.T) {
		m := NewMemory(3)

		for i := range 3 {
			require.NoError(t, m.Put(ctx, rec(fmt.Sprintf("cb_%d", i), base.Add(time.Duration(i)*time.Minute))))
		}
		require.NoError(t, m.Put(ctx, rec("cb_3", base.Add(3*time.Minute))))

		all, err := m.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for _, r := range all {
			assert.NotEqual(t, "cb_0", r.ID, "oldest record must be the one evicted")
		}
	})

	t.Run("an insert older than everything evicts itself", func(t *testing.T) {
		m := NewMemory(2)

		require.NoError(t, m.Put(ctx, rec("a", base)))
		require.NoError(t, m.Put(ctx, rec("b", base.Add(time.Minute))))
		require.NoError(t, m.Put(ctx, rec("ancient", base.Add(-time.Hour))))

		all, err := m.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "b", all[0].ID)
		assert.Equal(t, "a", all[1].ID)
	})

	t.Run("upsert of an existing id at capacity does not evict", func(t *testing.T) {
		m := NewMemory(2)

		require.NoError(t, m.Put(ctx, rec("a", base)))
		require.NoError(t, m.Put(ctx, rec("b", base.Add(time.Minute))))
		require.NoError(t, m.Put(ctx, rec("a", base)))

		assert.Equal(t, 2, m.Len())
	})
}

func TestMemoryConcurrentPut(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(50)

	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Put(ctx, rec(fmt.Sprintf("cb_%d", i), base.Add(time.Duration(i)*time.Second)))
		}()
	}
	wg.Wait()

	// never more than capacity, regardless of interleaving
	assert.Equal(t, 50, m.Len())
}

func TestMemoryReplace(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(2)

	m.Replace([]dispute.Event{
		rec("a", base),
		rec("b", base.Add(time.Minute)),
		rec("c", base.Add(2*time.Minute)),
	})

	all, err := m.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2, "replace re-applies the cap")
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}
