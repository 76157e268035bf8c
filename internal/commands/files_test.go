package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankview/bankview/internal/config"
)

func TestFiles(t *testing.T) {
	p := newProject(t, nil)
	out, _, err := p.run(t, "", "files")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "operations.json")
	assert.Contains(t, out, "transactions.csv")
}

func TestFiles_Empty(t *testing.T) {
	empty := t.TempDir()
	p := newProject(t, func(c *config.Config) { c.Data.Dir = empty })
	out, _, err := p.run(t, "", "files")
	require.NoError(t, err)
	assert.Contains(t, out, "No data files")
}
