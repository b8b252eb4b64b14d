package knowledge

import (
	"encoding/json"
	"os"

	"supportdesk/internal/models"

	"go.uber.org/zap"
)

// Load reads the FAQ file keyed by category name. A missing or malformed
// file never crashes the process: the degraded fallback base is used
// instead so the system stays usable.
func Load(path string, logger *zap.Logger) models.KnowledgeBase {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read knowledge base file, using fallback base",
			zap.String("path", path),
			zap.Error(err),
		)
		return FallbackBase()
	}

	var kb models.KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		logger.Warn("Failed to parse knowledge base file, using fallback base",
			zap.String("path", path),
			zap.Error(err),
		)
		return FallbackBase()
	}
	if kb.Size() == 0 {
		logger.Warn("Knowledge base file is empty, using fallback base", zap.String("path", path))
		return FallbackBase()
	}

	logger.Info("Knowledge base loaded",
		zap.String("path", path),
		zap.Int("records", kb.Size()),
	)
	return kb
}

// FallbackBase returns the single-entry base substituted when loading
// fails.
func FallbackBase() models.KnowledgeBase {
	return models.KnowledgeBase{
		models.CategoryGeneral: {
			{
				Question: "How do I contact customer support?",
				Answer:   "You can reach us by email at support@company.com or phone at 1-800-123-4567.",
			},
		},
	}
}
