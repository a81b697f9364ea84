package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog_crud_jwt/internal/domain/post/model"
	"blog_crud_jwt/internal/domain/post/repository"
	tagmodel "blog_crud_jwt/internal/domain/tag/model"
	tagrepo "blog_crud_jwt/internal/domain/tag/repository"
	"blog_crud_jwt/internal/pkg/worker"
	"blog_crud_jwt/pkg/apperr"
	"blog_crud_jwt/pkg/database"
	"blog_crud_jwt/pkg/logger"
	"blog_crud_jwt/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreatePostParams carries a post creation request.
type CreatePostParams struct {
	Title  string
	Body   string
	Banner string
	TagIDs []string
}

// PostPatch is the explicit partial-update shape for posts. The slug is
// assigned at creation and never changes, so links stay stable.
type PostPatch struct {
	Title  *string
	Body   *string
	Banner *string
	TagIDs *[]string
}

// PostService owns the post lifecycle and view counting.
type PostService interface {
	CreatePost(authorID string, params CreatePostParams) (*model.Post, error)
	GetPost(id, viewerID string) (*model.Post, error)
	GetPostBySlug(slug, viewerID string) (*model.Post, error)
	GetPosts(page, limit int) ([]model.Post, int64, error)
	SearchPosts(query string, page, limit int) ([]model.Post, int64, error)
	UpdatePost(id string, patch PostPatch, callerID string, callerIsAdmin bool) (*model.Post, error)
	DeletePost(id, callerID string, callerIsAdmin bool) error
}

// ViewDeduper reports whether a view is the viewer's first for that post
// within the dedup window. Recording the attempt and answering must be one
// atomic step so concurrent reads cannot double-count.
type ViewDeduper interface {
	FirstView(postID, viewerID string) (bool, error)
}

type redisViewDeduper struct {
	client *redis.Client
	window time.Duration
}

// NewRedisViewDeduper backs view dedup with a SetNX key per (post, viewer)
// pair that expires after the window.
func NewRedisViewDeduper(client *redis.Client, window time.Duration) ViewDeduper {
	return &redisViewDeduper{client: client, window: window}
}

func (d *redisViewDeduper) FirstView(postID, viewerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("post_view:%s:%s", postID, viewerID)
	return d.client.SetNX(ctx, key, 1, d.window).Result()
}

type postService struct {
	repo    repository.PostRepository
	tagRepo tagrepo.TagRepository
	deduper ViewDeduper
	flusher *worker.ViewFlushPool
}

func NewPostService(
	repo repository.PostRepository,
	tagRepo tagrepo.TagRepository,
	deduper ViewDeduper,
	flusher *worker.ViewFlushPool,
) PostService {
	return &postService{
		repo:    repo,
		tagRepo: tagRepo,
		deduper: deduper,
		flusher: flusher,
	}
}

func (s *postService) CreatePost(authorID string, params CreatePostParams) (*model.Post, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, apperr.Validation("Post title is required.")
	}
	if strings.TrimSpace(params.Body) == "" {
		return nil, apperr.Validation("Post body is required.")
	}

	tags, err := s.resolveTags(params.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    title,
		Slug:     utils.Slugify(title),
		Body:     params.Body,
		Banner:   params.Banner,
		AuthorID: authorID,
		Tags:     tags,
	}

	if err := s.repo.Create(post); err != nil {
		if database.IsUniqueViolation(err) {
			// Slug collision; the random suffix makes this vanishingly rare.
			post.Slug = utils.Slugify(title)
			if err := s.repo.Create(post); err != nil {
				return nil, apperr.Wrap(err, "create post")
			}
		} else {
			return nil, apperr.Wrap(err, "create post")
		}
	}

	return s.GetPost(post.ID, "")
}

// resolveTags validates the 1..4 tag rule and loads the referenced tags.
func (s *postService) resolveTags(tagIDs []string) ([]tagmodel.Tag, error) {
	if len(tagIDs) < 1 || len(tagIDs) > 4 {
		return nil, apperr.Validation("A post must have between 1 and 4 tags.")
	}

	seen := make(map[string]struct{}, len(tagIDs))
	unique := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	tags, err := s.tagRepo.GetByIDs(unique)
	if err != nil {
		return nil, apperr.Wrap(err, "resolve tags")
	}
	if len(tags) != len(unique) {
		return nil, apperr.Validation("One or more tags do not exist.")
	}
	return tags, nil
}

func (s *postService) GetPost(id, viewerID string) (*model.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, "get post")
	}

	s.recordView(post.ID, viewerID)
	if err := s.fillAggregates([]*model.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPostBySlug(slug, viewerID string) (*model.Post, error) {
	post, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post with slug %s not found", slug)
		}
		return nil, apperr.Wrap(err, "get post by slug")
	}

	s.recordView(post.ID, viewerID)
	if err := s.fillAggregates([]*model.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// recordView counts at most one view per viewer per post within the
// configured window. The counter itself is flushed asynchronously; a read
// may briefly show a stale total.
func (s *postService) recordView(postID, viewerID string) {
	if viewerID == "" || s.deduper == nil || s.flusher == nil {
		return
	}

	first, err := s.deduper.FirstView(postID, viewerID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Warn("view dedup failed", zap.String("post_id", postID), zap.Error(err))
		}
		return
	}
	if first {
		s.flusher.AddView(postID)
	}
}

func (s *postService) fillAggregates(posts []*model.Post) error {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	reactions, err := s.repo.ReactionCounts(ids)
	if err != nil {
		return apperr.Wrap(err, "count reactions")
	}
	comments, err := s.repo.CommentCounts(ids)
	if err != nil {
		return apperr.Wrap(err, "count comments")
	}

	for _, p := range posts {
		p.LikeCount = reactions[p.ID]
		p.CommentCount = comments[p.ID]
	}
	return nil
}

func (s *postService) GetPosts(page, limit int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	posts, total, err := s.repo.GetList((page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "list posts")
	}

	refs := make([]*model.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := s.fillAggregates(refs); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *postService) SearchPosts(query string, page, limit int) ([]model.Post, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, apperr.Validation("Search query is required.")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	posts, total, err := s.repo.Search(query, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "search posts")
	}

	refs := make([]*model.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := s.fillAggregates(refs); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *postService) UpdatePost(id string, patch PostPatch, callerID string, callerIsAdmin bool) (*model.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, "get post")
	}

	if post.AuthorID != callerID && !callerIsAdmin {
		return nil, apperr.Forbidden("User does not have rights to modify this data.")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.Validation("Post title is required.")
		}
		post.Title = title
	}
	if patch.Body != nil {
		if strings.TrimSpace(*patch.Body) == "" {
			return nil, apperr.Validation("Post body is required.")
		}
		post.Body = *patch.Body
	}
	if patch.Banner != nil {
		post.Banner = *patch.Banner
	}

	if patch.TagIDs != nil {
		tags, err := s.resolveTags(*patch.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTags(post, tags); err != nil {
			return nil, apperr.Wrap(err, "replace tags")
		}
	}

	if err := s.repo.Update(post); err != nil {
		return nil, apperr.Wrap(err, "update post")
	}

	return s.GetPost(id, "")
}

func (s *postService) DeletePost(id, callerID string, callerIsAdmin bool) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Post with ID %s not found", id)
		}
		return apperr.Wrap(err, "get post")
	}

	if post.AuthorID != callerID && !callerIsAdmin {
		return apperr.Forbidden("User does not have rights to modify this data.")
	}

	if err := s.repo.Delete(id); err != nil {
		return apperr.Wrap(err, "delete post")
	}
	return nil
}
