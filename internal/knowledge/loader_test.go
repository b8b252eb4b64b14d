package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"supportdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	data := `{
		"billing": [{"question": "When will I be charged?", "answer": "On your signup anniversary each month."}],
		"general": [{"question": "What are your business hours?", "answer": "We are available 24/7."}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	kb := Load(path, zap.NewNop())

	assert.Equal(t, 2, kb.Size())
	require.Len(t, kb.Records(models.CategoryBilling), 1)
	assert.Equal(t, "When will I be charged?", kb.Records(models.CategoryBilling)[0].Question)
}

func TestLoadMissingFileUsesFallback(t *testing.T) {
	kb := Load(filepath.Join(t.TempDir(), "does-not-exist.json"), zap.NewNop())

	assert.Equal(t, FallbackBase(), kb)
	assert.NotZero(t, kb.Size())
}

func TestLoadMalformedFileUsesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	kb := Load(path, zap.NewNop())
	assert.Equal(t, FallbackBase(), kb)
}

func TestLoadEmptyBaseUsesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"billing": []}`), 0644))

	kb := Load(path, zap.NewNop())
	assert.Equal(t, FallbackBase(), kb)
}
