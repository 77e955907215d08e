package gff

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellBasics(t *testing.T) {
	c := NewCell("Strength", ByteField(14))

	assert.Equal(t, "Strength", c.Label())
	assert.True(t, c.HasLabel("Strength"))
	assert.False(t, c.HasLabel("Dexterity"))

	label, f := c.Get()
	assert.Equal(t, "Strength", label)
	v, ok := f.Byte()
	require.True(t, ok)
	assert.Equal(t, uint8(14), v)

	c.Set(ByteField(16))
	v, _ = c.Field().Byte()
	assert.Equal(t, uint8(16), v)

	c.SetLabel("Dexterity")
	assert.True(t, c.HasLabel("Dexterity"))
}

// TestCellSharedBetweenStructs checks the editor scenario: two holders of
// one cell always observe the same value.
func TestCellSharedBetweenStructs(t *testing.T) {
	cell := NewCell("HitPoints", WordField(10))

	a := NewStruct(0)
	a.AddCell(cell)
	b := NewStruct(1)
	b.AddCell(cell)

	a.Field("HitPoints").Set(WordField(25))

	v, ok := b.Field("HitPoints").Field().Word()
	require.True(t, ok)
	assert.Equal(t, uint16(25), v)
}

// TestCellConcurrentAccess hammers one cell from parallel readers and a
// writer; the race detector and the snapshot invariant do the checking. A
// reader must never observe a torn field: every snapshot is one of the
// values some Set call stored.
func TestCellConcurrentAccess(t *testing.T) {
	const writes = 1000

	cell := NewCell("Counter", IntField(0))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				f := cell.Field()
				v, ok := f.Int()
				if !ok {
					t.Errorf("observed kind %v, want Int", f.Kind())
					return
				}
				if v < 0 || v > writes {
					t.Errorf("observed value %d outside [0, %d]", v, writes)
					return
				}
			}
		}()
	}

	for i := 1; i <= writes; i++ {
		cell.Set(IntField(int32(i)))
	}
	close(stop)
	wg.Wait()

	v, ok := cell.Field().Int()
	require.True(t, ok)
	assert.Equal(t, int32(writes), v)
}

// TestConcurrentTraversal walks a shared tree from several goroutines while
// a writer flips values, exercising the read path under contention.
func TestConcurrentTraversal(t *testing.T) {
	root := walkFixture()
	target := root.FindByLabel("D")
	require.NotNil(t, target)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				n := 0
				for c := range root.BFS() {
					_ = c.Field()
					n++
				}
				if n != 8 {
					t.Errorf("walked %d cells, want 8", n)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 200 {
			target.Set(IntField(int32(i)))
		}
	}()

	wg.Wait()
}
