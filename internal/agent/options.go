package agent

import "supportdesk/internal/models"

// Options is the immutable configuration shared by all pipeline stages:
// keyword lists, canned responses and the retrieval knobs. It is built
// once at startup and passed by reference into each stage; nothing
// mutates it afterwards.
type Options struct {
	// Keywords drives the keyword classifier. Scoring iterates
	// models.Categories, so ties resolve to the first category in that
	// order reaching the maximum score.
	Keywords map[models.Category][]string

	// CategoryDefaults are returned by the keyword resolver when no FAQ
	// record matches; GenericDefault covers unknown categories.
	CategoryDefaults map[models.Category]string
	GenericDefault   string

	// NotConfidentTemplate is the embedding resolver fallback. It takes
	// the category name as its single verb argument.
	NotConfidentTemplate string

	// SupportApology is returned by the generative resolver when
	// retrieval produces nothing at all.
	SupportApology string

	// SimilarityThreshold is the minimum cosine similarity required
	// before a retrieved answer is trusted. The boundary is inclusive.
	SimilarityThreshold float64

	// TopK bounds retrieval for the generative resolver.
	TopK int

	// MinTokenLength filters short stopword tokens out of keyword
	// overlap matching.
	MinTokenLength int

	// Reviewer policy: disallowed phrases are redacted, and a courtesy
	// sentence is appended unless one of the polite closings is already
	// present.
	NegativePhrases  []string
	PoliteClosings   []string
	CourtesySentence string
	RedactionMarker  string
}

// DefaultOptions returns the stock support-desk configuration.
func DefaultOptions() *Options {
	return &Options{
		Keywords: map[models.Category][]string{
			models.CategoryBilling: {
				"payment", "charge", "invoice", "bill", "price", "cost",
				"subscription", "refund", "credit card", "payment method",
			},
			models.CategoryTechnical: {
				"password", "login", "crash", "error", "bug", "feature",
				"update", "install", "technical", "reset", "2fa", "two factor",
			},
			models.CategoryGeneral: {
				"hours", "contact", "support", "help", "information", "about",
				"tutorial", "business hours", "phone", "email",
			},
		},
		CategoryDefaults: map[models.Category]string{
			models.CategoryBilling:   "For billing inquiries, please visit our billing portal or contact billing@company.com.",
			models.CategoryTechnical: "For technical support, please describe your issue in detail or contact tech@company.com.",
			models.CategoryGeneral:   "Thank you for your inquiry. How can we help you today?",
		},
		GenericDefault:       "Thank you for your message. Our team will respond shortly.",
		NotConfidentTemplate: "I'm not sure about that specific question. For %s issues, you can contact our support team.",
		SupportApology:       "I apologize, but I don't have enough information to answer your question. Please contact our support team at support@company.com.",
		SimilarityThreshold:  0.3,
		TopK:                 3,
		MinTokenLength:       4,
		NegativePhrases:      []string{"idiot", "stupid", "hate", "worthless", "useless", "terrible"},
		PoliteClosings:       []string{"thank you", "please", "you can", "contact support"},
		CourtesySentence:     " Please contact our support team if you need further assistance.",
		RedactionMarker:      "[redacted]",
	}
}
