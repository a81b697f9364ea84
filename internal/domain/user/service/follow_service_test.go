package service

import (
	"testing"

	tagModel "blog_crud_jwt/internal/domain/tag/model"
	"blog_crud_jwt/internal/domain/user/model"
	"blog_crud_jwt/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

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

func TestToggleFollowUser(t *testing.T) {
	t.Run("Following yourself is rejected", func(t *testing.T) {
		service := NewFollowService(new(MockFollowRepository), new(MockUserRepository), new(MockTagRepository))

		_, err := service.ToggleFollowUser("same-id", "same-id")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("Following an unknown user is not found", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		service := NewFollowService(new(MockFollowRepository), mockUsers, new(MockTagRepository))

		mockUsers.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ToggleFollowUser("me", "ghost")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("First toggle follows", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		mockUsers := new(MockUserRepository)
		service := NewFollowService(mockFollows, mockUsers, new(MockTagRepository))

		mockUsers.On("GetByID", "target").Return(createTestUser("target", "target"), nil)
		mockFollows.On("HasFollow", "me", "target").Return(false, nil)
		mockFollows.On("CreateFollow", mock.AnythingOfType("*model.Follow")).Return(nil)

		following, err := service.ToggleFollowUser("me", "target")

		assert.NoError(t, err)
		assert.True(t, following)
		mockFollows.AssertExpectations(t)
	})

	t.Run("Second toggle unfollows", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		mockUsers := new(MockUserRepository)
		service := NewFollowService(mockFollows, mockUsers, new(MockTagRepository))

		mockUsers.On("GetByID", "target").Return(createTestUser("target", "target"), nil)
		mockFollows.On("HasFollow", "me", "target").Return(true, nil)
		mockFollows.On("DeleteFollow", "me", "target").Return(nil)

		following, err := service.ToggleFollowUser("me", "target")

		assert.NoError(t, err)
		assert.False(t, following)
		mockFollows.AssertExpectations(t)
	})
}

func TestToggleFollowTag(t *testing.T) {
	existingTag := &tagModel.Tag{Name: "golang"}
	existingTag.ID = "tag-1"

	t.Run("Unknown tag is not found", func(t *testing.T) {
		mockTags := new(MockTagRepository)
		service := NewFollowService(new(MockFollowRepository), new(MockUserRepository), mockTags)

		mockTags.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ToggleFollowTag("me", "missing")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("Toggle flips both ways", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		mockTags := new(MockTagRepository)
		service := NewFollowService(mockFollows, new(MockUserRepository), mockTags)

		mockTags.On("GetByID", "tag-1").Return(existingTag, nil)
		mockFollows.On("HasTagFollow", "me", "tag-1").Return(false, nil).Once()
		mockFollows.On("CreateTagFollow", mock.AnythingOfType("*model.TagFollow")).Return(nil)
		mockFollows.On("HasTagFollow", "me", "tag-1").Return(true, nil).Once()
		mockFollows.On("DeleteTagFollow", "me", "tag-1").Return(nil)

		following, err := service.ToggleFollowTag("me", "tag-1")
		assert.NoError(t, err)
		assert.True(t, following)

		following, err = service.ToggleFollowTag("me", "tag-1")
		assert.NoError(t, err)
		assert.False(t, following)

		mockFollows.AssertExpectations(t)
	})
}

func TestGetFollowers(t *testing.T) {
	t.Run("Pagination is normalized", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		service := NewFollowService(mockFollows, new(MockUserRepository), new(MockTagRepository))

		mockFollows.On("GetFollowers", "me", 0, 10).
			Return([]model.User{*createTestUser("f1", "f1")}, int64(1), nil)

		users, total, err := service.GetFollowers("me", 0, 0)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, users, 1)
		mockFollows.AssertExpectations(t)
	})
}
