package models

// Category is the closed set of query topics used to route resolution.
type Category string

const (
	CategoryBilling   Category = "billing"
	CategoryTechnical Category = "technical"
	CategoryGeneral   Category = "general"

	// CategoryDefault is returned whenever classification cannot produce
	// a confident label.
	CategoryDefault = CategoryGeneral
)

// Categories is the canonical enumeration order. Keyword scoring breaks
// ties by the first category in this order reaching the maximum score.
var Categories = []Category{CategoryBilling, CategoryTechnical, CategoryGeneral}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FAQRecord is a single question/answer pair owned by the knowledge base.
type FAQRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// KnowledgeBase maps a category to its ordered FAQ records. It is built
// once at startup and read-only afterwards, so a single instance is safe
// to share across concurrent requests.
type KnowledgeBase map[Category][]FAQRecord

// Records returns the record list for a category, nil if the category has
// no entries.
func (kb KnowledgeBase) Records(c Category) []FAQRecord {
	return kb[c]
}

// Size returns the total number of records across all categories.
func (kb KnowledgeBase) Size() int {
	n := 0
	for _, records := range kb {
		n += len(records)
	}
	return n
}
