// Copyright 2025 The CoordParse Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/jcodagnone/coordparse/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBox(t *testing.T) {
	box, err := parseBox("(E 114°--E 130°/S 14°--S 34°)")
	require.NoError(t, err)
	assert.Equal(t, spatial.Box{West: 114, East: 130, South: -34, North: -14}, box)

	_, err = parseBox("(E 145°33ʹ/S 37°42ʹ)")
	require.ErrorContains(t, err, "not a bounding box")

	_, err = parseBox("bogus")
	require.Error(t, err)
}
