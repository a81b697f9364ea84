package service

import (
	"errors"
	"strings"

	"blog_crud_jwt/internal/domain/post/model"
	"blog_crud_jwt/internal/domain/post/repository"
	"blog_crud_jwt/pkg/apperr"
	"blog_crud_jwt/pkg/database"

	"gorm.io/gorm"
)

const maxCommentLength = 2500

// InteractionService owns comments, likes and bookmarks.
type InteractionService interface {
	AddComment(postID, authorID, body string) (*model.Comment, error)
	GetComments(postID string, page, limit int) ([]model.Comment, int64, error)
	UpdateComment(id, callerID string, callerIsAdmin bool, body string) (*model.Comment, error)
	DeleteComment(id, callerID string, callerIsAdmin bool) error

	// Toggle operations return the resulting state: true means the like
	// or bookmark now exists.
	ToggleLikePost(userID, postID string) (bool, error)
	ToggleLikeComment(userID, commentID string) (bool, error)
	ToggleSavePost(userID, postID string) (bool, error)
	GetSavedPosts(userID string, page, limit int) ([]model.Post, int64, error)
}

type interactionService struct {
	repo     repository.InteractionRepository
	postRepo repository.PostRepository
}

func NewInteractionService(repo repository.InteractionRepository, postRepo repository.PostRepository) InteractionService {
	return &interactionService{repo: repo, postRepo: postRepo}
}

func (s *interactionService) requirePost(postID string) error {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Post with ID %s not found", postID)
		}
		return apperr.Wrap(err, "get post")
	}
	return nil
}

func (s *interactionService) AddComment(postID, authorID, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation("Comment body is required.")
	}
	if len(body) > maxCommentLength {
		return nil, apperr.Validation("Comment body must not exceed %d characters.", maxCommentLength)
	}

	if err := s.requirePost(postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, apperr.Wrap(err, "create comment")
	}

	return s.getComment(comment.ID)
}

func (s *interactionService) getComment(id string) (*model.Comment, error) {
	comment, err := s.repo.GetCommentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, "get comment")
	}

	counts, err := s.repo.CommentLikeCounts([]string{comment.ID})
	if err != nil {
		return nil, apperr.Wrap(err, "count comment likes")
	}
	comment.LikeCount = counts[comment.ID]
	return comment, nil
}

func (s *interactionService) GetComments(postID string, page, limit int) ([]model.Comment, int64, error) {
	if err := s.requirePost(postID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	comments, total, err := s.repo.GetCommentsByPost(postID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "list comments")
	}

	ids := make([]string, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	counts, err := s.repo.CommentLikeCounts(ids)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "count comment likes")
	}
	for i := range comments {
		comments[i].LikeCount = counts[comments[i].ID]
	}

	return comments, total, nil
}

func (s *interactionService) UpdateComment(id, callerID string, callerIsAdmin bool, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation("Comment body is required.")
	}
	if len(body) > maxCommentLength {
		return nil, apperr.Validation("Comment body must not exceed %d characters.", maxCommentLength)
	}

	comment, err := s.repo.GetCommentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, "get comment")
	}

	if comment.AuthorID != callerID && !callerIsAdmin {
		return nil, apperr.Forbidden("User does not have rights to modify this data.")
	}

	comment.Body = body
	if err := s.repo.UpdateComment(comment); err != nil {
		return nil, apperr.Wrap(err, "update comment")
	}

	return s.getComment(id)
}

func (s *interactionService) DeleteComment(id, callerID string, callerIsAdmin bool) error {
	comment, err := s.repo.GetCommentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Comment with ID %s not found", id)
		}
		return apperr.Wrap(err, "get comment")
	}

	if comment.AuthorID != callerID && !callerIsAdmin {
		return apperr.Forbidden("User does not have rights to modify this data.")
	}

	if err := s.repo.DeleteComment(id); err != nil {
		return apperr.Wrap(err, "delete comment")
	}
	return nil
}

func (s *interactionService) ToggleLikePost(userID, postID string) (bool, error) {
	if err := s.requirePost(postID); err != nil {
		return false, err
	}

	liked, err := s.repo.HasReaction(userID, postID)
	if err != nil {
		return false, apperr.Wrap(err, "check reaction")
	}

	if liked {
		if err := s.repo.DeleteReaction(userID, postID); err != nil {
			return false, apperr.Wrap(err, "delete reaction")
		}
		return false, nil
	}

	err = s.repo.CreateReaction(&model.Reaction{UserID: userID, PostID: postID})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflict("You already liked this post.")
		}
		return false, apperr.Wrap(err, "create reaction")
	}
	return true, nil
}

func (s *interactionService) ToggleLikeComment(userID, commentID string) (bool, error) {
	if _, err := s.repo.GetCommentByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("Comment with ID %s not found", commentID)
		}
		return false, apperr.Wrap(err, "get comment")
	}

	liked, err := s.repo.HasCommentLike(userID, commentID)
	if err != nil {
		return false, apperr.Wrap(err, "check comment like")
	}

	if liked {
		if err := s.repo.DeleteCommentLike(userID, commentID); err != nil {
			return false, apperr.Wrap(err, "delete comment like")
		}
		return false, nil
	}

	err = s.repo.CreateCommentLike(&model.CommentLike{UserID: userID, CommentID: commentID})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflict("You already liked this comment.")
		}
		return false, apperr.Wrap(err, "create comment like")
	}
	return true, nil
}

func (s *interactionService) ToggleSavePost(userID, postID string) (bool, error) {
	if err := s.requirePost(postID); err != nil {
		return false, err
	}

	saved, err := s.repo.HasSaved(userID, postID)
	if err != nil {
		return false, apperr.Wrap(err, "check saved post")
	}

	if saved {
		if err := s.repo.DeleteSaved(userID, postID); err != nil {
			return false, apperr.Wrap(err, "delete saved post")
		}
		return false, nil
	}

	err = s.repo.CreateSaved(&model.SavedPost{UserID: userID, PostID: postID})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflict("You already saved this post.")
		}
		return false, apperr.Wrap(err, "create saved post")
	}
	return true, nil
}

func (s *interactionService) GetSavedPosts(userID string, page, limit int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	posts, total, err := s.repo.GetSavedPosts(userID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "list saved posts")
	}

	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	reactions, err := s.postRepo.ReactionCounts(ids)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "count reactions")
	}
	comments, err := s.postRepo.CommentCounts(ids)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "count comments")
	}
	for i := range posts {
		posts[i].LikeCount = reactions[posts[i].ID]
		posts[i].CommentCount = comments[posts[i].ID]
	}
	return posts, total, nil
}
