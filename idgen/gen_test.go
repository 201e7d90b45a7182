package idgen_test

import (
	"strings"
	"testing"

	"github.com/devcompass/compass-cli/idgen"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := idgen.New(idgen.EntryPrefix)
	b := idgen.New(idgen.EntryPrefix)
	assert.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, idgen.EntryPrefix))

	_, err := uuid.Parse(strings.TrimPrefix(a, idgen.EntryPrefix))
	assert.NoError(t, err)
}
