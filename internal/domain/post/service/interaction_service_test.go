package service

import (
	"strings"
	"testing"

	"blog_crud_jwt/internal/domain/post/model"
	"blog_crud_jwt/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockInteractionRepository is a mock of InteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockInteractionRepository) GetCommentByID(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockInteractionRepository) GetCommentsByPost(postID string, offset, limit int) ([]model.Comment, int64, error) {
	args := m.Called(postID, offset, limit)
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockInteractionRepository) UpdateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteComment(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockInteractionRepository) CommentLikeCounts(commentIDs []string) (map[string]int64, error) {
	args := m.Called(commentIDs)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockInteractionRepository) HasReaction(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionRepository) CreateReaction(reaction *model.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteReaction(userID, postID string) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockInteractionRepository) HasCommentLike(userID, commentID string) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionRepository) CreateCommentLike(like *model.CommentLike) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteCommentLike(userID, commentID string) error {
	args := m.Called(userID, commentID)
	return args.Error(0)
}

func (m *MockInteractionRepository) HasSaved(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionRepository) CreateSaved(saved *model.SavedPost) error {
	args := m.Called(saved)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteSaved(userID, postID string) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockInteractionRepository) GetSavedPosts(userID string, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func createTestComment(id, postID, authorID string) *model.Comment {
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     "A comment",
	}
	comment.ID = id
	return comment
}

func TestAddComment(t *testing.T) {
	t.Run("Comment on an unknown post is not found", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		service := NewInteractionService(new(MockInteractionRepository), mockPosts)

		mockPosts.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.AddComment("ghost", "author", "hi")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("Oversized comment is rejected", func(t *testing.T) {
		service := NewInteractionService(new(MockInteractionRepository), new(MockPostRepository))

		_, err := service.AddComment("post-1", "author", strings.Repeat("x", maxCommentLength+1))

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Valid comment is stored", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		mockPosts := new(MockPostRepository)
		service := NewInteractionService(mockRepo, mockPosts)

		mockPosts.On("GetByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)
		mockRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Comment).ID = "comment-1"
		}).Return(nil)
		mockRepo.On("GetCommentByID", "comment-1").Return(createTestComment("comment-1", "post-1", "me"), nil)
		mockRepo.On("CommentLikeCounts", []string{"comment-1"}).Return(map[string]int64{}, nil)

		comment, err := service.AddComment("post-1", "me", "  A comment  ")

		assert.NoError(t, err)
		assert.Equal(t, "comment-1", comment.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestToggleLikePost(t *testing.T) {
	t.Run("Like then unlike", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		mockPosts := new(MockPostRepository)
		service := NewInteractionService(mockRepo, mockPosts)

		mockPosts.On("GetByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)
		mockRepo.On("HasReaction", "me", "post-1").Return(false, nil).Once()
		mockRepo.On("CreateReaction", mock.AnythingOfType("*model.Reaction")).Return(nil)
		mockRepo.On("HasReaction", "me", "post-1").Return(true, nil).Once()
		mockRepo.On("DeleteReaction", "me", "post-1").Return(nil)

		liked, err := service.ToggleLikePost("me", "post-1")
		assert.NoError(t, err)
		assert.True(t, liked)

		liked, err = service.ToggleLikePost("me", "post-1")
		assert.NoError(t, err)
		assert.False(t, liked)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Liking an unknown post is not found", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		service := NewInteractionService(new(MockInteractionRepository), mockPosts)

		mockPosts.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ToggleLikePost("me", "ghost")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("Author may delete", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, new(MockPostRepository))

		mockRepo.On("GetCommentByID", "comment-1").Return(createTestComment("comment-1", "post-1", "me"), nil)
		mockRepo.On("DeleteComment", "comment-1").Return(nil)

		err := service.DeleteComment("comment-1", "me", false)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Foreign non-admin delete is forbidden", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, new(MockPostRepository))

		mockRepo.On("GetCommentByID", "comment-2").Return(createTestComment("comment-2", "post-1", "someone"), nil)

		err := service.DeleteComment("comment-2", "me", false)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
		mockRepo.AssertNotCalled(t, "DeleteComment", "comment-2")
	})

	t.Run("Admin may delete any comment", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, new(MockPostRepository))

		mockRepo.On("GetCommentByID", "comment-3").Return(createTestComment("comment-3", "post-1", "someone"), nil)
		mockRepo.On("DeleteComment", "comment-3").Return(nil)

		err := service.DeleteComment("comment-3", "admin", true)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestToggleSavePost(t *testing.T) {
	t.Run("Save then unsave", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		mockPosts := new(MockPostRepository)
		service := NewInteractionService(mockRepo, mockPosts)

		mockPosts.On("GetByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)
		mockRepo.On("HasSaved", "me", "post-1").Return(false, nil).Once()
		mockRepo.On("CreateSaved", mock.AnythingOfType("*model.SavedPost")).Return(nil)
		mockRepo.On("HasSaved", "me", "post-1").Return(true, nil).Once()
		mockRepo.On("DeleteSaved", "me", "post-1").Return(nil)

		saved, err := service.ToggleSavePost("me", "post-1")
		assert.NoError(t, err)
		assert.True(t, saved)

		saved, err = service.ToggleSavePost("me", "post-1")
		assert.NoError(t, err)
		assert.False(t, saved)
	})
}

func TestGetSavedPosts(t *testing.T) {
	t.Run("Saved posts carry like and comment counts", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		mockPostRepo := new(MockPostRepository)
		service := NewInteractionService(mockRepo, mockPostRepo)

		saved := []model.Post{*createTestPost("post-1", "author-1"), *createTestPost("post-2", "author-2")}
		mockRepo.On("GetSavedPosts", "user-1", 0, 10).Return(saved, int64(2), nil)
		mockPostRepo.On("ReactionCounts", []string{"post-1", "post-2"}).
			Return(map[string]int64{"post-1": 3}, nil)
		mockPostRepo.On("CommentCounts", []string{"post-1", "post-2"}).
			Return(map[string]int64{"post-1": 1, "post-2": 7}, nil)

		posts, total, err := service.GetSavedPosts("user-1", 1, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, int64(3), posts[0].LikeCount)
		assert.Equal(t, int64(1), posts[0].CommentCount)
		assert.Equal(t, int64(0), posts[1].LikeCount)
		assert.Equal(t, int64(7), posts[1].CommentCount)
		mockRepo.AssertExpectations(t)
		mockPostRepo.AssertExpectations(t)
	})
}
