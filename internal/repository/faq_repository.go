package repository

import (
	"context"
	"fmt"

	"supportdesk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const faqSchema = `
CREATE TABLE IF NOT EXISTS faq_records (
	id UUID PRIMARY KEY,
	category TEXT NOT NULL,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	position INT NOT NULL,
	UNIQUE (category, position)
)`

// FAQRepository reads and seeds the Postgres FAQ store. The service only
// reads it once at startup; runtime updates are out of scope.
type FAQRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFAQRepository(db *pgxpool.Pool, logger *zap.Logger) *FAQRepository {
	return &FAQRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the faq_records table if it does not exist.
func (r *FAQRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, faqSchema); err != nil {
		return fmt.Errorf("failed to create faq schema: %w", err)
	}
	return nil
}

// LoadAll reads every FAQ record ordered by category and position and
// assembles the in-memory knowledge base.
func (r *FAQRepository) LoadAll(ctx context.Context) (models.KnowledgeBase, error) {
	query := squirrel.Select("category", "question", "answer").
		From("faq_records").
		OrderBy("category ASC", "position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query faq records: %w", err)
	}
	defer rows.Close()

	kb := models.KnowledgeBase{}
	for rows.Next() {
		var category models.Category
		var record models.FAQRecord
		if err := rows.Scan(&category, &record.Question, &record.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan faq record: %w", err)
		}
		kb[category] = append(kb[category], record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Info("Knowledge base loaded from database", zap.Int("records", kb.Size()))
	return kb, nil
}

// Insert stores one FAQ record at the given position within its category.
func (r *FAQRepository) Insert(ctx context.Context, category models.Category, position int, record models.FAQRecord) error {
	query := squirrel.Insert("faq_records").
		Columns("id", "category", "question", "answer", "position").
		Values(uuid.New(), category, record.Question, record.Answer, position).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// DeleteAll clears the store before reseeding.
func (r *FAQRepository) DeleteAll(ctx context.Context) error {
	sql, args, err := squirrel.Delete("faq_records").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
