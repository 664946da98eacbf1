package store_test

import (
	"sync"
	"testing"
	"time"

	"email-assistant/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	m := store.NewKeyedMutex()

	hold := 100 * time.Millisecond

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("same")
			time.Sleep(hold)
			m.Unlock("same")
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 3*hold, "same-key sections must not overlap")
}

func TestKeyedMutexAllowsDifferentKeys(t *testing.T) {
	m := store.NewKeyedMutex()

	hold := 200 * time.Millisecond

	var wg sync.WaitGroup
	start := time.Now()
	for _, key := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			m.Lock(key)
			time.Sleep(hold)
			m.Unlock(key)
		}(key)
	}
	wg.Wait()

	elapsed := time.Since(start)
	assert.Less(t, elapsed, 2*hold, "different keys should run concurrently")
}

func TestKeyedMutexCounterExclusion(t *testing.T) {
	m := store.NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("counter")
			counter++
			m.Unlock("counter")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
