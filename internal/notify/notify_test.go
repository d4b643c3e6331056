package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestShow_ExpiresAfterDuration(t *testing.T) {
	q := New()
	defer q.Close()

	q.Show(Notification{Title: "X", Duration: 100 * time.Millisecond})
	require.Equal(t, 1, q.Len())

	time.Sleep(150 * time.Millisecond)
	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHide_BeforeExpiry(t *testing.T) {
	q := New()
	defer q.Close()

	id := q.Show(Notification{Title: "X", Duration: 50 * time.Millisecond})
	require.True(t, q.Hide(id))
	assert.Equal(t, 0, q.Len())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Hide(id), "second hide is a no-op")
	assert.False(t, q.Hide("unknown"))
}

func TestShow_Defaults(t *testing.T) {
	q := New(WithDefaultDuration(time.Minute))
	defer q.Close()

	id := q.Show(Notification{ID: "ignored", Title: "Saved"})
	require.NotEqual(t, "ignored", id)

	list := q.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, KindInfo, list[0].Kind)
	assert.Equal(t, time.Minute, list[0].Duration)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestShow_UniqueIDsAndOrder(t *testing.T) {
	q := New()
	defer q.Close()

	ids := []string{
		q.Success("a", ""),
		q.Error("b", "failed"),
		q.Warning("c", ""),
		q.Info("d", ""),
	}
	list := q.List()
	require.Len(t, list, 4)

	seen := map[string]bool{}
	for i, n := range list {
		assert.Equal(t, ids[i], n.ID)
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
	}
	assert.Equal(t, []Kind{KindSuccess, KindError, KindWarning, KindInfo},
		[]Kind{list[0].Kind, list[1].Kind, list[2].Kind, list[3].Kind})

	q.Hide(ids[1])
	assert.Equal(t, []string{ids[0], ids[2], ids[3]}, []string{q.List()[0].ID, q.List()[1].ID, q.List()[2].ID})
}

func TestSticky_DoesNotExpire(t *testing.T) {
	q := New(WithDefaultDuration(20 * time.Millisecond))
	defer q.Close()

	id := q.Show(Notification{Title: "pinned", Duration: -1})
	q.Show(Notification{Title: "brief"})

	assert.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, id, q.List()[0].ID)
	assert.True(t, q.List()[0].Sticky())
}

func TestClearAndClose(t *testing.T) {
	q := New()
	q.Info("a", "")
	q.Info("b", "")

	q.Clear()
	assert.Equal(t, 0, q.Len())

	q.Info("c", "")
	q.Close()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Show(Notification{Title: "late"}))
	assert.Equal(t, 0, q.Len())
}

func TestSubscribe_SeesExpiry(t *testing.T) {
	q := New()
	defer q.Close()

	var mu sync.Mutex
	var sizes []int
	cancel := q.Subscribe(func(list []Notification) {
		mu.Lock()
		sizes = append(sizes, len(list))
		mu.Unlock()
	})
	defer cancel()

	q.Show(Notification{Title: "a", Duration: 10 * time.Millisecond})
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sizes) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{1, 0}, sizes)
	mu.Unlock()
}

func TestConcurrentShowAndHide(t *testing.T) {
	q := New(WithDefaultDuration(5 * time.Millisecond))
	defer q.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := q.Info("x", "")
			q.Hide(id)
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}
