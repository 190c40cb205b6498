package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockMirrorCandidatesAndDecrement(t *testing.T) {
	m := NewStockMirror()
	m.Set("p", []MirrorEntry{{Code: "a", Stock: 1}, {Code: "b", Stock: 3}, {Code: "c", Stock: 2}})

	assert.Equal(t, []int{0, 1, 2}, m.Candidates("p", 1))
	assert.Equal(t, []int{1, 2}, m.Candidates("p", 2))
	assert.Empty(t, m.Candidates("p", 4))
	assert.Empty(t, m.Candidates("unknown", 1))

	m.Decrement("p", 1, 2)
	assert.Equal(t, int64(1), m.Entry("p", 1).Stock)

	m.Decrement("p", 0, 1)
	assert.Equal(t, []MirrorEntry{{Code: "b", Stock: 1}, {Code: "c", Stock: 2}}, m.Pool("p"), "exhausted entries are dropped")

	m.Decrement("p", 9, 1)
	assert.Len(t, m.Pool("p"), 2)
}

func TestStockMirrorSetCopies(t *testing.T) {
	entries := []MirrorEntry{{Code: "a", Stock: 1}}
	m := NewStockMirror()
	m.Set("p", entries)
	entries[0].Stock = 100

	assert.Equal(t, int64(1), m.Entry("p", 0).Stock)
}
