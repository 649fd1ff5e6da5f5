package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCompare_SameCategory(t *testing.T) {
	now := time.Now()

	assert.Negative(t, Compare("a", "b"))
	assert.Positive(t, Compare(10, 2))
	assert.Zero(t, Compare(int64(3), 3))
	assert.Negative(t, Compare(1, 1.5))
	assert.Negative(t, Compare(uint8(1), uint64(2)))
	assert.Negative(t, Compare(false, true))
	assert.Negative(t, Compare(now, now.Add(time.Second)))
	assert.Negative(t, Compare(time.Second, time.Minute))
	assert.Zero(t, Compare(nil, nil))
}

func TestCompare_UUID(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	assert.Negative(t, Compare(a, b))
}

func TestCompare_NilFirstAndMixedCategories(t *testing.T) {
	assert.Negative(t, Compare(nil, 0))
	assert.Negative(t, Compare(nil, ""))
	assert.Negative(t, Compare(1, "1"), "los números van antes que las cadenas")
	assert.Positive(t, Compare("a", true))
}

func TestCompare_IsAntisymmetric(t *testing.T) {
	values := []any{nil, true, 3, 2.5, "x", time.Unix(0, 0), struct{ A int }{1}}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, -Compare(a, b), Compare(b, a), "%v vs %v", a, b)
		}
	}
}
