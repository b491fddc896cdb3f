package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLessNumber(t *testing.T) {
	nan := math.NaN()
	assert.True(t, LessNumber(1.0, 2.0))
	assert.False(t, LessNumber(2.0, 1.0))
	assert.True(t, LessNumber(1.0, nan))
	assert.False(t, LessNumber(nan, 1.0))
	assert.False(t, LessNumber(nan, nan))
	assert.True(t, LessNumber(math.Inf(1), nan))
	assert.True(t, LessNumber[int8](-3, 2))
	assert.False(t, LessNumber[uint32](5, 5))
}

func TestToSlice(t *testing.T) {
	data := GAlloc.Alloc(4 * 8)
	slice := ToSlice[int64](data, 8)
	assert.Len(t, slice, 4)
	slice[3] = -1
	for i := 24; i < 32; i++ {
		assert.Equal(t, byte(0xFF), data[i])
	}
	assert.Nil(t, ToSlice[int64](nil, 8))
}

func TestRemoveAt(t *testing.T) {
	a := []int{1, 2, 3, 4}
	a = RemoveAt(a, 1)
	assert.Equal(t, []int{1, 3, 4}, a)
	a = RemoveAt(a, 5)
	assert.Equal(t, []int{1, 3, 4}, a)
	assert.Equal(t, 4, Back(a))
}

func TestSetLogLevel(t *testing.T) {
	assert.NoError(t, SetLogLevel("debug"))
	assert.Error(t, SetLogLevel("loud"))
	assert.NoError(t, SetLogLevel("info"))
	Debug("hidden")
	Info("shown")
}
