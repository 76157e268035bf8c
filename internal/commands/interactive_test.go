package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankview/bankview/internal/config"
)

func answers(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestInteractive_Basic(t *testing.T) {
	p := newProject(t, nil)
	out, _, err := p.run(t, answers("1", "EXECUTED", "нет", "нет", "нет", "нет"), "interactive")
	require.NoError(t, err)

	assert.Contains(t, out, "Loaded 6 transactions")
	assert.Contains(t, out, "Found 4 operations with state EXECUTED")
	assert.Contains(t, out, "Transactions found: 4")
	assert.NotContains(t, out, "Category statistics")
	assert.Contains(t, out, "Done.")
}

func TestInteractive_FullFlow(t *testing.T) {
	p := newProject(t, nil)
	in := answers(
		"7",         // out of range
		"1",         // json
		"finished",  // invalid state
		"executed",  // accepted case-insensitively
		"Д",         // sort
		"убыванию",  // descending
		"да",        // roubles only
		"y",         // search
		"перевод",   // word
		"yes",       // statistics
	)
	out, _, err := p.run(t, in, "interactive")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Invalid choice"))
	assert.Contains(t, out, "Kept 2 rouble transactions")
	assert.Contains(t, out, `Found 1 transactions matching "перевод"`)
	assert.Contains(t, out, "Transactions found: 1")
	assert.Contains(t, out, "26.08.2019 Перевод организации")
	assert.Contains(t, out, "Перевод организации: 1")
}

func TestInteractive_SortOrder(t *testing.T) {
	p := newProject(t, nil)
	in := answers("1", "EXECUTED", "yes", "asc", "no", "no", "no")
	out, _, err := p.run(t, in, "interactive")
	require.NoError(t, err)

	assert.Less(t, strings.Index(out, "23.03.2018"), strings.Index(out, "26.08.2019"))
}

func TestInteractive_RepromptsYesNo(t *testing.T) {
	p := newProject(t, nil)
	out, _, err := p.run(t, answers("1", "CANCELED", "maybe", "нет", "нет", "нет", "нет"), "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Please answer yes or no")
	assert.Contains(t, out, "Transactions found: 1")
}

func TestInteractive_NoMatchingState(t *testing.T) {
	p := newProject(t, nil)
	out, _, err := p.run(t, answers("1", "PENDING"), "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "No operations with the selected state")
}

func TestInteractive_Exit(t *testing.T) {
	p := newProject(t, nil)
	out, _, err := p.run(t, answers("4"), "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Goodbye!")
	assert.NotContains(t, out, "Loaded")
}

func TestInteractive_EndOfInput(t *testing.T) {
	p := newProject(t, nil)
	out, _, err := p.run(t, answers("2"), "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 5 transactions")
	assert.Contains(t, out, "Goodbye!")
}

func TestInteractive_MissingFile(t *testing.T) {
	p := newProject(t, nil)
	out, _, err := p.run(t, answers("3"), "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Could not load XLSX data")
	assert.Contains(t, out, "operations.json")
}

func TestInteractive_StatisticsUseConfig(t *testing.T) {
	p := newProject(t, func(c *config.Config) { c.Categories = []string{"Открытие вклада"} })
	out, _, err := p.run(t, answers("1", "EXECUTED", "no", "no", "no", "yes"), "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Открытие вклада: 1")
	assert.NotContains(t, out, "Перевод организации: ")
}
