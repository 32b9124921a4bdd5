// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCloneIsDeep(t *testing.T) {
	r := Record{X: 1.0, Row: 3}
	r.SetMeta("count", 2.0)
	c := r.Clone()
	c.SetMeta("count", 5.0)
	c.X = 7.0
	n, _ := r.MetaFloat("count")
	assert.Equal(t, 2.0, n)
	assert.Equal(t, 1.0, r.X)
}

func TestGetSet(t *testing.T) {
	var r Record
	for _, f := range Fields {
		assert.True(t, r.Set(f, f), f)
	}
	for _, f := range Fields {
		assert.Equal(t, f, r.Get(f), f)
	}
	assert.False(t, r.Set("bogus", 1))
	assert.Nil(t, r.Get("bogus"))
}

func TestFloat(t *testing.T) {
	try := func(v any, want float64, wantOK bool) {
		t.Helper()
		have, ok := Float(v)
		assert.Equal(t, wantOK, ok, "%#v", v)
		if wantOK {
			assert.Equal(t, want, have, "%#v", v)
		}
	}
	try(1.5, 1.5, true)
	try(3, 3, true)
	try(uint8(4), 4, true)
	try(float32(2), 2, true)
	try(2*time.Second, 2, true)
	try(time.Unix(10, 0), 10, true)
	try(math.NaN(), 0, false)
	try(nil, 0, false)
	try("1", 0, false)
	try(true, 0, false)

	type myInt int
	try(myInt(9), 9, true)
}

func TestKeyAndLess(t *testing.T) {
	assert.Equal(t, "NA", Key(nil))
	assert.Equal(t, "NA", Key(math.NaN()))
	assert.Equal(t, "2.5", Key(2.5))
	assert.Equal(t, "a", Key("a"))
	assert.Equal(t, "3", Key(3))

	assert.True(t, Less(nil, 1.0))
	assert.True(t, Less(1.0, 2))
	assert.True(t, Less(10.0, "a"))
	assert.True(t, Less("a", "b"))
	assert.False(t, Less("b", "a"))
}

func TestColumnValue(t *testing.T) {
	assert.Nil(t, ColumnValue([]float64{math.NaN()}, 0))
	assert.Equal(t, 1.0, ColumnValue([]float64{1}, 0))
	assert.Nil(t, ColumnValue([]any{nil}, 0))
	assert.Equal(t, "x", ColumnValue([]any{"x"}, 0))
	assert.Equal(t, int64(4), ColumnValue([]int64{4}, 0))
	f := 2.0
	assert.Equal(t, 2.0, ColumnValue([]*float64{&f}, 0))
	assert.Nil(t, ColumnValue([]*float64{nil}, 0))
}
