package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimits(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantLimit  int
		wantOffset int
	}{
		{"first page", 1, 10, 10, 0},
		{"third page", 3, 10, 10, 20},
		{"page zero", 0, 5, 5, 0},
		{"negative page clamps", -2, 5, 5, 0},
		{"size one", 7, 1, 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := Limits(tt.page, tt.size)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestLimits_OffsetProperty(t *testing.T) {
	for p := 1; p <= 20; p++ {
		for s := 1; s <= 20; s++ {
			limit, offset := Limits(p, s)
			assert.Equal(t, s, limit)
			assert.Equal(t, (p-1)*s, offset)
		}
	}
}

func TestNormalize(t *testing.T) {
	page, size := Normalize(-1, 0)
	assert.Equal(t, 0, page)
	assert.Equal(t, DefaultSize, size)

	_, size = Normalize(1, 1000)
	assert.Equal(t, MaxSize, size)
}

func TestData(t *testing.T) {
	got := Data([]string{"a", "b"}, 21, 2, 10)
	assert.Equal(t, int64(21), got.TotalItems)
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, 2, got.CurrentPage)
	assert.Len(t, got.Items, 2)

	empty := Data[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}
