package app

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gopherpress/internal/model"
	"gopherpress/internal/repository"
)

// -------- test fakes --------

type fakePublisher struct {
	events  []model.Activity
	failErr error
}

func (f *fakePublisher) Publish(_ context.Context, event model.Activity) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.events = append(f.events, event)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Activity{}))
	return db
}

func newTestPostService(t *testing.T) (*PostService, *gorm.DB, *fakePublisher) {
	t.Helper()
	db := newTestDB(t)
	publisher := &fakePublisher{}
	service := NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		publisher,
	)
	return service, db, publisher
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID uint, title, body string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: userID, Title: title, Body: body}
	require.NoError(t, db.Create(post).Error)
	return post
}

func postCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	return count
}

// -------- create --------

func TestCreatePost_OwnerComesFromIdentity(t *testing.T) {
	service, db, publisher := newTestPostService(t)
	author := seedUser(t, db, "alice")

	post, err := service.CreatePost(
		Identity{UserID: author.ID, Name: author.Name},
		PostInput{Title: "New Post Title", Body: "New post body content."},
	)
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.UserID)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, author.ID, stored.UserID)
	assert.Equal(t, "New Post Title", stored.Title)
	assert.Equal(t, "New post body content.", stored.Body)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.ActionPostCreated, publisher.events[0].Action)
	assert.Equal(t, post.ID, publisher.events[0].PostID)
}

func TestCreatePost_TrimsFields(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")

	post, err := service.CreatePost(
		Identity{UserID: author.ID},
		PostInput{Title: "  Padded Title  ", Body: "\tpadded body\n"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Padded Title", post.Title)
	assert.Equal(t, "padded body", post.Body)
}

func TestCreatePost_ValidationFailureWritesNothing(t *testing.T) {
	service, db, publisher := newTestPostService(t)
	author := seedUser(t, db, "alice")

	for _, input := range []PostInput{
		{},
		{Title: "   ", Body: "   "},
		{Title: "ok", Body: ""},
		{Title: "", Body: "ok"},
	} {
		_, err := service.CreatePost(Identity{UserID: author.ID}, input)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.False(t, validationErr.Fields.Empty())
	}

	assert.EqualValues(t, 0, postCount(t, db))
	assert.Empty(t, publisher.events)
}

func TestCreatePost_RequiresIdentity(t *testing.T) {
	service, _, _ := newTestPostService(t)
	_, err := service.CreatePost(Identity{}, PostInput{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreatePost_PublishFailureDoesNotFailWrite(t *testing.T) {
	service, db, publisher := newTestPostService(t)
	publisher.failErr = fmt.Errorf("broker down")
	author := seedUser(t, db, "alice")

	_, err := service.CreatePost(Identity{UserID: author.ID}, PostInput{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, postCount(t, db))
}

// -------- list / search / filter --------

func TestListPage_SearchMatchesTitleOrBody(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")
	seedPost(t, db, author.ID, "Laravel Tutorial", "intro")
	seedPost(t, db, author.ID, "React Guide", "components")
	seedPost(t, db, author.ID, "Vue Basics", "this mentions laravel too")

	index, err := service.ListPage(ListQuery{Search: "Laravel"})
	require.NoError(t, err)
	require.Len(t, index.Posts.Data, 2)
	titles := []string{index.Posts.Data[0].Title, index.Posts.Data[1].Title}
	assert.ElementsMatch(t, []string{"Laravel Tutorial", "Vue Basics"}, titles)

	index, err = service.ListPage(ListQuery{Search: "react"})
	require.NoError(t, err)
	require.Len(t, index.Posts.Data, 1)
	assert.Equal(t, "React Guide", index.Posts.Data[0].Title)

	index, err = service.ListPage(ListQuery{Search: "no such text"})
	require.NoError(t, err)
	assert.Empty(t, index.Posts.Data)
	assert.EqualValues(t, 0, index.Posts.Total)
}

func TestListPage_FilterByAuthor(t *testing.T) {
	service, db, _ := newTestPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	for i := 0; i < 3; i++ {
		seedPost(t, db, alice.ID, fmt.Sprintf("alice %d", i), "body")
	}
	seedPost(t, db, bob.ID, "bob post", "body")

	index, err := service.ListPage(ListQuery{UserID: alice.ID})
	require.NoError(t, err)
	assert.Len(t, index.Posts.Data, 3)
	for _, post := range index.Posts.Data {
		assert.Equal(t, alice.ID, post.UserID)
	}

	// Author with no posts yields the empty set, not an error.
	index, err = service.ListPage(ListQuery{UserID: carol.ID})
	require.NoError(t, err)
	assert.Empty(t, index.Posts.Data)

	// Unknown id behaves the same way.
	index, err = service.ListPage(ListQuery{UserID: 9999})
	require.NoError(t, err)
	assert.Empty(t, index.Posts.Data)
}

func TestListPage_CombinedFiltersIntersect(t *testing.T) {
	service, db, _ := newTestPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice.ID, "Laravel Tutorial", "body")
	seedPost(t, db, alice.ID, "React Guide", "body")
	seedPost(t, db, bob.ID, "Laravel Advanced", "body")

	index, err := service.ListPage(ListQuery{Search: "laravel", UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, index.Posts.Data, 1)
	assert.Equal(t, "Laravel Tutorial", index.Posts.Data[0].Title)
}

func TestListPage_EchoesFiltersAndUsers(t *testing.T) {
	service, db, _ := newTestPostService(t)
	seedUser(t, db, "carol")
	seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	index, err := service.ListPage(ListQuery{Search: "x", UserID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, "x", index.Filters.Search)
	assert.Equal(t, bob.ID, index.Filters.UserID)

	// Full directory, alphabetical by name, regardless of filters.
	require.Len(t, index.Users, 3)
	assert.Equal(t, "alice", index.Users[0].Name)
	assert.Equal(t, "bob", index.Users[1].Name)
	assert.Equal(t, "carol", index.Users[2].Name)
}

func TestListPage_PaginatesAtFifteen(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")
	for i := 0; i < 20; i++ {
		seedPost(t, db, author.ID, fmt.Sprintf("post %02d", i), "body")
	}

	first, err := service.ListPage(ListQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Posts.Data, 15)
	assert.EqualValues(t, 20, first.Posts.Total)
	assert.Equal(t, 1, first.Posts.CurrentPage)
	assert.Equal(t, 2, first.Posts.LastPage)
	assert.Equal(t, 1, first.Posts.From)
	assert.Equal(t, 15, first.Posts.To)
	assert.Equal(t, DefaultPerPage, first.Posts.PerPage)

	second, err := service.ListPage(ListQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Posts.Data, 5)
	assert.Equal(t, 16, second.Posts.From)
	assert.Equal(t, 20, second.Posts.To)

	// Pages never overlap.
	seen := map[uint]bool{}
	for _, p := range append(first.Posts.Data, second.Posts.Data...) {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}

	empty, err := service.ListPage(ListQuery{Page: 3})
	require.NoError(t, err)
	assert.Empty(t, empty.Posts.Data)
	assert.Equal(t, 0, empty.Posts.From)
	assert.Equal(t, 0, empty.Posts.To)
}

func TestListPage_NewestFirstWithOwnerAttached(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")

	older := &model.Post{UserID: author.ID, Title: "older", Body: "b", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(older).Error)
	newer := &model.Post{UserID: author.ID, Title: "newer", Body: "b", CreatedAt: time.Now()}
	require.NoError(t, db.Create(newer).Error)

	index, err := service.ListPage(ListQuery{})
	require.NoError(t, err)
	require.Len(t, index.Posts.Data, 2)
	assert.Equal(t, "newer", index.Posts.Data[0].Title)
	assert.Equal(t, "older", index.Posts.Data[1].Title)
	assert.Equal(t, "alice", index.Posts.Data[0].User.Name)
}

// -------- get / update / delete --------

func TestGetPost_NotFound(t *testing.T) {
	service, _, _ := newTestPostService(t)
	_, err := service.GetPost(42)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePost_ChangesOnlyContent(t *testing.T) {
	service, db, publisher := newTestPostService(t)
	author := seedUser(t, db, "alice")
	editor := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, "Original Title", "Original Body")

	err := service.UpdatePost(
		Identity{UserID: editor.ID, Name: editor.Name},
		post.ID,
		PostInput{Title: "Updated Title", Body: "Updated Body"},
	)
	require.NoError(t, err)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "Updated Title", stored.Title)
	assert.Equal(t, "Updated Body", stored.Body)
	// Owner reference is immutable even when someone else edits.
	assert.Equal(t, author.ID, stored.UserID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.ActionPostUpdated, publisher.events[0].Action)
}

func TestUpdatePost_ValidationFailureLeavesRowUntouched(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")
	post := seedPost(t, db, author.ID, "Original Title", "Original Body")

	err := service.UpdatePost(Identity{UserID: author.ID}, post.ID, PostInput{Title: "", Body: ""})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "title")
	assert.Contains(t, validationErr.Fields, "body")

	var stored model.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "Original Title", stored.Title)
	assert.Equal(t, "Original Body", stored.Body)
}

func TestUpdatePost_MissingIDIsNotFound(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")

	err := service.UpdatePost(Identity{UserID: author.ID}, 999, PostInput{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost_RemovesRow(t *testing.T) {
	service, db, publisher := newTestPostService(t)
	author := seedUser(t, db, "alice")
	post := seedPost(t, db, author.ID, "doomed", "body")

	require.NoError(t, service.DeletePost(Identity{UserID: author.ID}, post.ID))

	var stored model.Post
	err := db.First(&stored, post.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.ActionPostDeleted, publisher.events[0].Action)
	assert.Equal(t, "doomed", publisher.events[0].PostTitle)
}

func TestDeletePost_RepeatDeleteIsNotFound(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")
	post := seedPost(t, db, author.ID, "doomed", "body")

	require.NoError(t, service.DeletePost(Identity{UserID: author.ID}, post.ID))
	err := service.DeletePost(Identity{UserID: author.ID}, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost_MissingIDIsNotFound(t *testing.T) {
	service, db, _ := newTestPostService(t)
	author := seedUser(t, db, "alice")
	assert.ErrorIs(t, service.DeletePost(Identity{UserID: author.ID}, 12345), ErrPostNotFound)
}
