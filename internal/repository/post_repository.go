package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"gopherpress/internal/model"
)

// PostFilter narrows a listing query. Zero values mean "not applied":
// an empty Search skips text matching, a zero UserID skips the author
// restriction.
type PostFilter struct {
	Search string
	UserID uint
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

// List returns one page of posts with owners preloaded, newest first,
// plus the total row count for the same filter. Equal timestamps fall
// back to id descending so paging stays deterministic.
func (r *PostRepository) List(filter PostFilter, page, perPage int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.applyFilter(r.db.Model(&model.Post{}), filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts failed: %w", err)
	}

	var posts []model.Post
	if err := r.applyFilter(r.db.Model(&model.Post{}), filter).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) applyFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", pattern, pattern)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return query
}

// UpdateContent rewrites title and body of an existing post. The owner
// reference and timestamps are untouched apart from the store-managed
// updated_at bump. Returns false when no post has the given id.
func (r *PostRepository) UpdateContent(id uint, title, body string) (bool, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("query post by id failed: %w", err)
	}

	if err := r.db.Model(&post).
		Select("title", "body").
		Updates(map[string]interface{}{"title": title, "body": body}).Error; err != nil {
		return false, fmt.Errorf("update post failed: %w", err)
	}
	return true, nil
}

// Delete hard-deletes the row. Returns false when no post has the given
// id, so re-deleting is reported as not found rather than a silent no-op.
func (r *PostRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&model.Post{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete post failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
