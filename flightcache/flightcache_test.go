package flightcache_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/easelkit/easel/flightcache"
)

type record struct {
	ID string
}

func TestDo_CachesResult(t *testing.T) {
	c := flightcache.New[*record]("records", nil)

	calls := 0
	fetch := func() (*record, error) {
		calls++
		return &record{ID: "a"}, nil
	}

	first, err := c.Do("a", fetch)
	assert.NilError(t, err)

	second, err := c.Do("a", fetch)
	assert.NilError(t, err)

	assert.Equal(t, calls, 1)
	assert.Assert(t, first == second, "expected the same cached pointer")
}

func TestDo_ConcurrentCallersShareOneFlight(t *testing.T) {
	c := flightcache.New[*record]("records", nil)

	var calls atomic.Int64
	release := make(chan struct{})

	const n = 20
	results := make([]*record, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Do("shared", func() (*record, error) {
				calls.Add(1)
				<-release
				return &record{ID: "shared"}, nil
			})
		}(i)
	}

	close(release)
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.NilError(t, errs[i])
	}
	assert.Equal(t, calls.Load(), int64(1))
	for i := 1; i < n; i++ {
		assert.Assert(t, results[i] == results[0])
	}
}

func TestDo_ErrorsAreNotCached(t *testing.T) {
	c := flightcache.New[*record]("records", nil)

	boom := errors.New("boom")
	calls := 0

	_, err := c.Do("a", func() (*record, error) {
		calls++
		return nil, boom
	})
	assert.Assert(t, errors.Is(err, boom))

	v, err := c.Do("a", func() (*record, error) {
		calls++
		return &record{ID: "a"}, nil
	})
	assert.NilError(t, err)
	assert.Equal(t, v.ID, "a")
	assert.Equal(t, calls, 2)
}

func TestDo_NilIsACachedValue(t *testing.T) {
	c := flightcache.New[*record]("records", nil)

	calls := 0
	fetch := func() (*record, error) {
		calls++
		return nil, nil
	}

	v, err := c.Do("missing", fetch)
	assert.NilError(t, err)
	assert.Assert(t, v == nil)

	_, err = c.Do("missing", fetch)
	assert.NilError(t, err)
	assert.Equal(t, calls, 1, "a nil result is a confirmed absence, not a miss")
}

func TestDeleteAndFlush(t *testing.T) {
	c := flightcache.New[*record]("records", nil)

	c.Set("a", &record{ID: "a"})
	c.Set("b", &record{ID: "b"})

	c.Delete("a")
	_, ok := c.Get("a")
	assert.Assert(t, !ok)
	_, ok = c.Get("b")
	assert.Assert(t, ok)

	c.Flush()
	_, ok = c.Get("b")
	assert.Assert(t, !ok)
}
