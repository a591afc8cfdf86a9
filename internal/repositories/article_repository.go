package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/myblog/backend/internal/models"
	"go.uber.org/zap"
)

// articleRepository provides Article table data access
type articleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sql.DB, logger *zap.Logger) *articleRepository {
	return &articleRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new article and sets its generated id
func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (author, title, body, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, article.Author, article.Title, article.Body, article.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create article", zap.Error(err))
		return fmt.Errorf("failed to create article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	article.ID = int(id)
	return nil
}

// GetByID retrieves an article by ID
func (r *articleRepository) GetByID(ctx context.Context, articleID int) (*models.Article, error) {
	query := `
		SELECT id, author, title, body, created_at
		FROM articles
		WHERE id = ?
		LIMIT 1
	`

	article := &models.Article{}
	var body sql.NullString
	err := r.db.QueryRowContext(ctx, query, articleID).Scan(
		&article.ID,
		&article.Author,
		&article.Title,
		&body,
		&article.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrArticleNotFound
	}
	if err != nil {
		r.logger.Error("failed to get article by id", zap.Error(err), zap.Int("articleId", articleID))
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}

	article.Body = body.String
	return article, nil
}

// ListVisible retrieves the articles visible to a caller. The visibility rule
// is pushed into the query as a logical OR: rows the caller authored, or
// every row when seeAll is set (admin callers).
func (r *articleRepository) ListVisible(ctx context.Context, author string, seeAll bool) ([]models.Article, error) {
	query := `
		SELECT id, author, title, body, created_at
		FROM articles
		WHERE author = ? OR ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, author, seeAll)
	if err != nil {
		r.logger.Error("failed to list articles", zap.Error(err), zap.String("author", author))
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var article models.Article
		var body sql.NullString
		if err := rows.Scan(&article.ID, &article.Author, &article.Title, &body, &article.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		article.Body = body.String
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// Update applies a partial update: only fields present in the patch appear in
// the SET clause, so absent fields keep their stored values. Author and
// created_at are never touched.
func (r *articleRepository) Update(ctx context.Context, articleID int, patch *models.ArticlePatch) error {
	setClauses := []string{}
	args := []any{}
	if patch.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Body != nil {
		setClauses = append(setClauses, "body = ?")
		args = append(args, *patch.Body)
	}
	if len(setClauses) == 0 {
		// Empty patch: nothing to write, stored values stay as they are
		return nil
	}

	args = append(args, articleID)
	query := fmt.Sprintf(`
		UPDATE articles
		SET %s
		WHERE id = ?
	`, strings.Join(setClauses, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update article", zap.Error(err), zap.Int("articleId", articleID))
		return fmt.Errorf("failed to update article: %w", err)
	}

	// RowsAffected is zero both for missing rows and for no-change updates,
	// so missing rows are reported by the read the caller does first
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	return nil
}

// Delete removes an article by ID, reporting ErrArticleNotFound for missing rows
func (r *articleRepository) Delete(ctx context.Context, articleID int) error {
	query := `DELETE FROM articles WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, articleID)
	if err != nil {
		r.logger.Error("failed to delete article", zap.Error(err), zap.Int("articleId", articleID))
		return fmt.Errorf("failed to delete article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrArticleNotFound
	}

	return nil
}
