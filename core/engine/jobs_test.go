package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobTable(t *testing.T) {
	jobs := NewJobTable()

	first := jobs.Start("a")
	second := jobs.Start("b")
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, []*Job{first, second}, jobs.Running())

	jobs.finish(first, 3)
	assert.Equal(t, 3, first.Status())
	assert.Equal(t, []*Job{second}, jobs.Running())

	// IDs are never reused.
	third := jobs.Start("c")
	assert.Equal(t, 3, third.ID)
}

func TestJobTable_WaitAll(t *testing.T) {
	jobs := NewJobTable()
	assert.Equal(t, 0, jobs.WaitAll())

	first := jobs.Start("a")
	go func() {
		time.Sleep(10 * time.Millisecond)
		// Jobs started while waiting are waited for too.
		second := jobs.Start("b")
		jobs.finish(first, 0)

		time.Sleep(10 * time.Millisecond)
		jobs.finish(second, 0)
	}()

	assert.Equal(t, 2, jobs.WaitAll())
	assert.Empty(t, jobs.Running())
}
