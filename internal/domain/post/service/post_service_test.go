package service

import (
	"errors"
	"strings"
	"testing"

	"blog_crud_jwt/internal/domain/post/model"
	tagModel "blog_crud_jwt/internal/domain/tag/model"
	"blog_crud_jwt/internal/pkg/worker"
	"blog_crud_jwt/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetBySlug(slug string) (*model.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetList(offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Search(query string, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(query, offset, limit)
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) ReplaceTags(post *model.Post, tags []tagModel.Tag) error {
	args := m.Called(post, tags)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(id string, delta int64) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockPostRepository) ReactionCounts(postIDs []string) (map[string]int64, error) {
	args := m.Called(postIDs)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockPostRepository) CommentCounts(postIDs []string) (map[string]int64, error) {
	args := m.Called(postIDs)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockPostRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockTagRepository is a mock of the tag repository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(tag *tagModel.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) GetByID(id string) (*tagModel.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tagModel.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByName(name string) (*tagModel.Tag, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tagModel.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByIDs(ids []string) ([]tagModel.Tag, error) {
	args := m.Called(ids)
	return args.Get(0).([]tagModel.Tag), args.Error(1)
}

func (m *MockTagRepository) GetList(offset, limit int) ([]tagModel.Tag, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]tagModel.Tag), args.Get(1).(int64), args.Error(2)
}

func (m *MockTagRepository) Update(tag *tagModel.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func createTestPost(id, authorID string) *model.Post {
	post := &model.Post{
		Title:    "Hello World",
		Slug:     "hello-world-abc12345",
		Body:     "Body text",
		AuthorID: authorID,
	}
	post.ID = id
	return post
}

func createTestTags(ids ...string) []tagModel.Tag {
	tags := make([]tagModel.Tag, len(ids))
	for i, id := range ids {
		tags[i] = tagModel.Tag{Name: "tag-" + id}
		tags[i].ID = id
	}
	return tags
}

func newTestPostService(repo *MockPostRepository, tags *MockTagRepository) PostService {
	// No deduper and no flusher: view counting is disabled in these tests.
	return NewPostService(repo, tags, nil, nil)
}

// fakeViewDeduper answers first-view per (post, viewer) pair in memory.
type fakeViewDeduper struct {
	seen map[string]bool
	err  error
}

func newFakeViewDeduper() *fakeViewDeduper {
	return &fakeViewDeduper{seen: make(map[string]bool)}
}

func (d *fakeViewDeduper) FirstView(postID, viewerID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	key := postID + ":" + viewerID
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func TestCreatePost(t *testing.T) {
	t.Run("Slug is derived from the title", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTags := new(MockTagRepository)
		service := newTestPostService(mockRepo, mockTags)

		mockTags.On("GetByIDs", []string{"t1", "t2"}).Return(createTestTags("t1", "t2"), nil)

		var created *model.Post
		mockRepo.On("Create", mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			created = args.Get(0).(*model.Post)
			created.ID = "post-1"
		}).Return(nil)
		mockRepo.On("GetByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)
		mockRepo.On("ReactionCounts", []string{"post-1"}).Return(map[string]int64{}, nil)
		mockRepo.On("CommentCounts", []string{"post-1"}).Return(map[string]int64{}, nil)

		_, err := service.CreatePost("author-1", CreatePostParams{
			Title:  "Hello World",
			Body:   "Body text",
			TagIDs: []string{"t1", "t2"},
		})

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(created.Slug, "hello-world-"))
		assert.Equal(t, "author-1", created.AuthorID)
	})

	t.Run("Tag count outside 1..4 is rejected", func(t *testing.T) {
		service := newTestPostService(new(MockPostRepository), new(MockTagRepository))

		_, errNone := service.CreatePost("a", CreatePostParams{Title: "Title", Body: "Body"})
		_, errTooMany := service.CreatePost("a", CreatePostParams{
			Title:  "Title",
			Body:   "Body",
			TagIDs: []string{"1", "2", "3", "4", "5"},
		})

		assert.Equal(t, apperr.KindValidation, apperr.KindOf(errNone))
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(errTooMany))
	})

	t.Run("Unknown tag reference is rejected", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := newTestPostService(new(MockPostRepository), mockTags)

		mockTags.On("GetByIDs", []string{"t1", "ghost"}).Return(createTestTags("t1"), nil)

		_, err := service.CreatePost("a", CreatePostParams{
			Title:  "Title",
			Body:   "Body",
			TagIDs: []string{"t1", "ghost"},
		})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestGetPost(t *testing.T) {
	t.Run("Aggregates are filled", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := newTestPostService(mockRepo, new(MockTagRepository))

		mockRepo.On("GetByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)
		mockRepo.On("ReactionCounts", []string{"post-1"}).Return(map[string]int64{"post-1": 3}, nil)
		mockRepo.On("CommentCounts", []string{"post-1"}).Return(map[string]int64{"post-1": 7}, nil)

		post, err := service.GetPost("post-1", "")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), post.LikeCount)
		assert.Equal(t, int64(7), post.CommentCount)
	})

	t.Run("Unknown post is not found", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := newTestPostService(mockRepo, new(MockTagRepository))

		mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetPost("missing", "")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestUpdatePost(t *testing.T) {
	t.Run("Only the author or an admin may update", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := newTestPostService(mockRepo, new(MockTagRepository))

		mockRepo.On("GetByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)

		newTitle := "Other title"
		_, err := service.UpdatePost("post-1", PostPatch{Title: &newTitle}, "someone-else", false)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("Admin may update a foreign post and the slug stays", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := newTestPostService(mockRepo, new(MockTagRepository))

		post := createTestPost("post-2", "author-1")
		mockRepo.On("GetByID", "post-2").Return(post, nil)
		mockRepo.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
		mockRepo.On("ReactionCounts", []string{"post-2"}).Return(map[string]int64{}, nil)
		mockRepo.On("CommentCounts", []string{"post-2"}).Return(map[string]int64{}, nil)

		newTitle := "Edited title"
		updated, err := service.UpdatePost("post-2", PostPatch{Title: &newTitle}, "admin-user", true)

		assert.NoError(t, err)
		assert.Equal(t, "Edited title", updated.Title)
		assert.Equal(t, "hello-world-abc12345", updated.Slug)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Author may delete own post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := newTestPostService(mockRepo, new(MockTagRepository))

		mockRepo.On("GetByID", "post-3").Return(createTestPost("post-3", "author-1"), nil)
		mockRepo.On("Delete", "post-3").Return(nil)

		err := service.DeletePost("post-3", "author-1", false)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Foreign non-admin delete is forbidden", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		service := newTestPostService(mockRepo, new(MockTagRepository))

		mockRepo.On("GetByID", "post-4").Return(createTestPost("post-4", "author-1"), nil)

		err := service.DeletePost("post-4", "intruder", false)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
		mockRepo.AssertNotCalled(t, "Delete", "post-4")
	})
}

func TestSearchPosts(t *testing.T) {
	t.Run("Blank query is rejected", func(t *testing.T) {
		service := newTestPostService(new(MockPostRepository), new(MockTagRepository))

		_, _, err := service.SearchPosts("   ", 1, 10)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestViewRecording(t *testing.T) {
	newService := func(repo *MockPostRepository, deduper ViewDeduper) (PostService, *worker.ViewFlushPool) {
		// The pool is deliberately not started; enqueued tasks stay
		// observable on the channel.
		flusher := worker.NewViewFlushPool(repo, 1, 8)
		return NewPostService(repo, new(MockTagRepository), deduper, flusher), flusher
	}

	t.Run("First view per viewer enqueues exactly one flush", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		post := createTestPost("post-1", "author-1")
		mockRepo.On("GetByID", "post-1").Return(post, nil)
		mockRepo.On("ReactionCounts", mock.Anything).Return(map[string]int64{}, nil)
		mockRepo.On("CommentCounts", mock.Anything).Return(map[string]int64{}, nil)

		service, flusher := newService(mockRepo, newFakeViewDeduper())

		_, err := service.GetPost("post-1", "viewer-1")
		assert.NoError(t, err)
		assert.Len(t, flusher.TaskQueue, 1)

		// A repeat read inside the window does not count again.
		_, err = service.GetPost("post-1", "viewer-1")
		assert.NoError(t, err)
		assert.Len(t, flusher.TaskQueue, 1)

		// A different viewer does.
		_, err = service.GetPost("post-1", "viewer-2")
		assert.NoError(t, err)
		assert.Len(t, flusher.TaskQueue, 2)
	})

	t.Run("Anonymous reads are not counted", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("GetByID", "post-2").Return(createTestPost("post-2", "author-1"), nil)
		mockRepo.On("ReactionCounts", mock.Anything).Return(map[string]int64{}, nil)
		mockRepo.On("CommentCounts", mock.Anything).Return(map[string]int64{}, nil)

		service, flusher := newService(mockRepo, newFakeViewDeduper())

		_, err := service.GetPost("post-2", "")
		assert.NoError(t, err)
		assert.Len(t, flusher.TaskQueue, 0)
	})

	t.Run("Dedup failure drops the view but not the read", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("GetBySlug", "hello-world-abc12345").Return(createTestPost("post-3", "author-1"), nil)
		mockRepo.On("ReactionCounts", mock.Anything).Return(map[string]int64{}, nil)
		mockRepo.On("CommentCounts", mock.Anything).Return(map[string]int64{}, nil)

		deduper := newFakeViewDeduper()
		deduper.err = errors.New("redis down")
		service, flusher := newService(mockRepo, deduper)

		post, err := service.GetPostBySlug("hello-world-abc12345", "viewer-1")
		assert.NoError(t, err)
		assert.Equal(t, "post-3", post.ID)
		assert.Len(t, flusher.TaskQueue, 0)
	})
}
