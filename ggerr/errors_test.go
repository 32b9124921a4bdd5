// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	v := Validationf("stat bin", "bins must be >= 1, got %d", 0)
	assert.True(t, IsValidation(v))
	assert.False(t, IsMapping(v))
	assert.True(t, errors.Is(v, ErrValidation))
	assert.False(t, errors.Is(v, ErrCompilation))
	assert.Equal(t, "validation error in stat bin: bins must be >= 1, got 0", v.Error())

	m := Mappingf("unknown aesthetic %q", "colr")
	assert.True(t, IsMapping(m))
	assert.True(t, errors.Is(m, ErrMapping))
}

func TestCompilationWrapping(t *testing.T) {
	cause := errors.New("index out of range")
	c := Compilation("chart", cause)
	assert.True(t, IsCompilation(c))
	assert.True(t, errors.Is(c, cause))
	assert.True(t, errors.Is(c, ErrCompilation))

	// Domain errors pass through, even when wrapped.
	v := fmt.Errorf("layer 2: %w", Validationf("layer", "missing aesthetic y"))
	assert.Same(t, v, Compilation("chart", v))
	assert.True(t, IsValidation(Compilation("chart", v)))

	assert.Nil(t, Compilation("chart", nil))
	assert.Equal(t, Kind(0), KindOf(cause))
}
