package app

import (
	"context"
	"errors"
	"log"

	"gopherpress/internal/model"
	"gopherpress/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

// DefaultPerPage is the fixed page size of the posts index; it is not
// client-configurable.
const DefaultPerPage = 15

// ValidationError carries the per-field error bag of a rejected write.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string { return "validation failed" }

// ActivityPublisher emits post lifecycle events. Failures are advisory
// and never fail the originating write.
type ActivityPublisher interface {
	Publish(ctx context.Context, event model.Activity) error
}

type PostService struct {
	postRepo  *repository.PostRepository
	userRepo  *repository.UserRepository
	publisher ActivityPublisher
	perPage   int
}

// ListQuery is the navigation state of one index request.
type ListQuery struct {
	Search string
	UserID uint
	Page   int
}

// Pagination is the page metadata block of the index props. From and To
// are 1-based item positions, zero when the page is empty.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// Filters echoes the applied search and author filter back to the view
// so paginated navigation keeps its state.
type Filters struct {
	Search string `json:"search"`
	UserID uint   `json:"user_id,omitempty"`
}

// PostPage is the paginated result block.
type PostPage struct {
	Data []model.Post `json:"data"`
	Pagination
}

// PostIndex is the full prop payload of the posts index view.
type PostIndex struct {
	Posts   PostPage            `json:"posts"`
	Filters Filters             `json:"filters"`
	Users   []model.UserSummary `json:"users"`
}

func NewPostService(postRepo *repository.PostRepository, userRepo *repository.UserRepository, publisher ActivityPublisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publisher: publisher,
		perPage:   DefaultPerPage,
	}
}

// ListPage runs the filtered, paginated index query. Every call hits
// the store; nothing is cached between requests.
func (s *PostService) ListPage(query ListQuery) (*PostIndex, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	filter := repository.PostFilter{
		Search: query.Search,
		UserID: query.UserID,
	}
	posts, total, err := s.postRepo.List(filter, page, s.perPage)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListDirectory()
	if err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []model.Post{}
	}
	return &PostIndex{
		Posts: PostPage{
			Data:       posts,
			Pagination: paginate(page, s.perPage, total, len(posts)),
		},
		Filters: Filters{
			Search: query.Search,
			UserID: query.UserID,
		},
		Users: users,
	}, nil
}

// GetPost fetches one post with its owner for the edit form.
func (s *PostService) GetPost(id uint) (*model.Post, error) {
	if id == 0 {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// CreatePost validates and inserts a new post owned by the acting
// identity. Any owner value in the client payload is ignored.
func (s *PostService) CreatePost(identity Identity, input PostInput) (*model.Post, error) {
	if identity.UserID == 0 {
		return nil, ErrInvalidInput
	}
	if errs := ValidatePostInput(input); !errs.Empty() {
		return nil, &ValidationError{Fields: errs}
	}

	trimmed := input.Trimmed()
	post := &model.Post{
		UserID: identity.UserID,
		Title:  trimmed.Title,
		Body:   trimmed.Body,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.publish(model.Activity{
		UserID:    identity.UserID,
		PostID:    post.ID,
		Action:    model.ActionPostCreated,
		PostTitle: post.Title,
	})
	return post, nil
}

// UpdatePost applies the creation schema against an existing post. Only
// title and body change; the owner reference is immutable.
func (s *PostService) UpdatePost(identity Identity, id uint, input PostInput) error {
	if identity.UserID == 0 {
		return ErrInvalidInput
	}
	if id == 0 {
		return ErrPostNotFound
	}
	if errs := ValidatePostInput(input); !errs.Empty() {
		return &ValidationError{Fields: errs}
	}

	trimmed := input.Trimmed()
	found, err := s.postRepo.UpdateContent(id, trimmed.Title, trimmed.Body)
	if err != nil {
		return err
	}
	if !found {
		return ErrPostNotFound
	}

	s.publish(model.Activity{
		UserID:    identity.UserID,
		PostID:    id,
		Action:    model.ActionPostUpdated,
		PostTitle: trimmed.Title,
	})
	return nil
}

// DeletePost hard-deletes the row. A missing id, including an already
// deleted one, is a not-found condition.
func (s *PostService) DeletePost(identity Identity, id uint) error {
	if identity.UserID == 0 {
		return ErrInvalidInput
	}
	if id == 0 {
		return ErrPostNotFound
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	found, err := s.postRepo.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrPostNotFound
	}

	s.publish(model.Activity{
		UserID:    identity.UserID,
		PostID:    id,
		Action:    model.ActionPostDeleted,
		PostTitle: post.Title,
	})
	return nil
}

func (s *PostService) publish(event model.Activity) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		log.Printf("publish activity event failed: %v", err)
	}
}

func paginate(page, perPage int, total int64, pageLen int) Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if pageLen > 0 {
		from = (page-1)*perPage + 1
		to = from + pageLen - 1
	}

	return Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		From:        from,
		To:          to,
		PerPage:     perPage,
		Total:       total,
	}
}
