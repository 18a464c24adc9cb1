package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman4/rasa/pkg/adapters/file"
	"github.com/aryaman4/rasa/pkg/domain"
)

func nluFromYAML(t *testing.T, content string) *domain.TrainingData {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nlu.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := file.New("", "", []string{path}).NLUData(context.Background(), "")
	require.NoError(t, err)
	return data
}

func TestNLUReaderListExamples(t *testing.T) {
	content := `nlu:
  - intent: goodbye
    examples:
      - bye
      - see you
`
	data := nluFromYAML(t, content)

	require.Len(t, data.Examples, 2)
	assert.Equal(t, "bye", data.Examples[0].Text)
	assert.Equal(t, "goodbye", data.Examples[0].Intent())
}

func TestNLUReaderSkipsEntityBlocks(t *testing.T) {
	content := `nlu:
  - intent: greet
    examples: |
      - hi
  - synonym: NYC
    examples: |
      - New York
  - regex: zipcode
    examples: |
      - "[0-9]{5}"
  - lookup: city
    examples: |
      - Berlin
`
	data := nluFromYAML(t, content)

	require.Len(t, data.Examples, 1)
	assert.Equal(t, "hi", data.Examples[0].Text)
}

func TestNLUReaderIgnoresBlankLines(t *testing.T) {
	content := "nlu:\n  - intent: greet\n    examples: |\n      - hi\n\n      - hello\n"
	data := nluFromYAML(t, content)
	assert.Len(t, data.Examples, 2)
}
