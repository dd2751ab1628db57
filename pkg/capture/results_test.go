package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vapvarun/docshot/pkg/annotate"
)

func TestResults_RecordsOutcomes(t *testing.T) {
	results := NewResults()

	results.RecordSuccess("a.png")
	results.RecordSuccess("b.png")
	results.RecordFailed("c.png")
	results.RecordSkipped("d.png")
	results.AddCommands(annotate.BatchEntry{InputPath: "/in/a.png"})

	assert.Equal(t, []string{"a.png", "b.png"}, results.Success())
	assert.Equal(t, []string{"c.png"}, results.Failed())
	assert.Equal(t, []string{"d.png"}, results.Skipped())
	assert.Len(t, results.BatchEntries(), 1)
	assert.Equal(t, 4, results.Total())
}

func TestResults_ResetClearsEverything(t *testing.T) {
	results := NewResults()
	results.RecordSuccess("a.png")
	results.RecordFailed("b.png")
	results.AddCommands(annotate.BatchEntry{})

	results.Reset()

	assert.Empty(t, results.Success())
	assert.Empty(t, results.Failed())
	assert.Empty(t, results.Skipped())
	assert.Empty(t, results.BatchEntries())
	assert.Equal(t, 0, results.Total())
}
