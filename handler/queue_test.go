package handler

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_PreservesOrderPerKey(t *testing.T) {
	q := NewQueue(4, 16)

	var mu sync.Mutex
	got := make(map[string][]int)
	for i := 0; i < 50; i++ {
		for _, key := range []string{"a", "b", "c"} {
			key, i := key, i
			assert.True(t, q.Submit(key, func() {
				mu.Lock()
				got[key] = append(got[key], i)
				mu.Unlock()
			}))
		}
	}
	q.Close()

	for _, key := range []string{"a", "b", "c"} {
		assert.Len(t, got[key], 50, key)
		for i, v := range got[key] {
			assert.Equal(t, i, v, fmt.Sprintf("%s[%d]", key, i))
		}
	}
}

func TestQueue_SubmitAfterClose(t *testing.T) {
	q := NewQueue(1, 1)
	q.Close()
	q.Close()

	assert.False(t, q.Submit("a", func() {}))
}
