package mines

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeta(t *testing.T) {
	tests := []struct {
		input string
		want  Meta
		ok    bool
	}{
		{"0", Meta{}, true},
		{"1700000000", Meta{CreatedAt: 1700000000}, true},
		{"1700000000:12", Meta{CreatedAt: 1700000000, Clicks: 12}, true},
		{"1700000000:12:3", Meta{1700000000, 12, 3}, true},
		{"", Meta{}, false},
		{"x", Meta{}, false},
		{"1:2:3:4", Meta{}, false},
		{"1:-2:3", Meta{}, false},
		{"1::3", Meta{}, false},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			m, err := ParseMeta(test.input)
			if !test.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, m)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		size := 2 + r.IntN(12)
		g, err := New(size, 1+r.IntN(size*size-1), r)
		require.NoError(t, err)

		for range r.IntN(size * size) {
			if g.Outcome() != Playing {
				break
			}
			_, err := g.Reveal(r.IntN(size), r.IntN(size), r.IntN(3) == 0)
			require.NoError(t, err)
		}

		rt, err := Reconstruct(g.Encode())
		require.NoError(t, err)

		assert.Equal(t, g.Size(), rt.Size())
		assert.Equal(t, g.MineCount(), rt.MineCount())
		assert.Equal(t, g.Unrevealed(), rt.Unrevealed())
		assert.Equal(t, g.Clicks(), rt.Clicks())
		assert.Equal(t, g.Sessions(), rt.Sessions())
		assert.Equal(t, g.Outcome(), rt.Outcome())
		assert.Equal(t, g.CreatedAt().Unix(), rt.CreatedAt().Unix())
		assert.Equal(t, g.cells, rt.cells)
		assert.NotEqual(t, g.ID(), rt.ID())
		assert.Equal(t, g.Encode(), rt.Encode())
	}
}

func TestEncode(t *testing.T) {
	g := gridFrom(t, "1700000000:0:0", "10", "00")
	_, err := g.Reveal(1, 1, false)
	require.NoError(t, err)
	_, err = g.Reveal(0, 0, true)
	require.NoError(t, err)

	assert.Equal(t, Record{
		Size:      "2",
		MineCount: "1",
		Meta:      "1700000000:1:0",
		State:     "3004",
	}, g.Encode())
}

func TestReconstructWithoutTimestamp(t *testing.T) {
	start := time.Now().Truncate(time.Second)
	g := gridFrom(t, "0", "10", "00")
	assert.False(t, g.CreatedAt().Before(start))
}

func TestReconstructMalformed(t *testing.T) {
	valid := Record{Size: "2", MineCount: "1", Meta: "0", State: "1000"}
	_, err := Reconstruct(valid)
	require.NoError(t, err)

	tests := []struct {
		name   string
		modify func(r *Record)
	}{
		{"zero size", func(r *Record) { r.Size = "0" }},
		{"size not a number", func(r *Record) { r.Size = "two" }},
		{"negative size", func(r *Record) { r.Size = "-2" }},
		{"mine count not a number", func(r *Record) { r.MineCount = "1.5" }},
		{"zero mines", func(r *Record) { r.MineCount = "0"; r.State = "0000" }},
		{"meta not a number", func(r *Record) { r.Meta = "yesterday" }},
		{"short state", func(r *Record) { r.State = "100" }},
		{"long state", func(r *Record) { r.State = "10000" }},
		{"default state", func(r *Record) { r.State = "0" }},
		{"bad cell code", func(r *Record) { r.State = "1070" }},
		{"mine count mismatch", func(r *Record) { r.State = "1100" }},
		{"huge size", func(r *Record) { r.Size = "4000000000" }},
		{"all fields defaulted", func(r *Record) { *r = Record{"0", "0", "0", "0"} }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := valid
			test.modify(&r)
			g, err := Reconstruct(r)
			assert.ErrorIs(t, err, ErrMalformedRecord)
			assert.Nil(t, g)
		})
	}
}

func TestReconstructRecomputesCounters(t *testing.T) {
	g, err := Reconstruct(Record{
		Size:      "3",
		MineCount: "2",
		Meta:      "0:4:1",
		State:     strings.Join([]string{"145", "400", "002"}, ""),
	})
	require.NoError(t, err)

	assert.Equal(t, 6, g.Unrevealed())
	assert.Equal(t, Lost, g.Outcome())
	assert.Equal(t, Mark(2), g.Mark(0, 1))
	assert.Equal(t, Unknown, g.Mark(1, 1))
	assert.Equal(t, Flag, g.Mark(2, 2))
	assert.Equal(t, Mine, g.Mark(0, 2))
}
