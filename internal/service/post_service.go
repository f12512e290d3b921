package service

import (
	"context"

	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/validation"
)

// PostService implements the feed workflows: posts, likes and comments.
type PostService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, comments: comments, users: users}
}

// Create stores a new post, snapshotting the author's name and avatar.
func (s *PostService) Create(ctx context.Context, userID uint, text string) (*models.Post, error) {
	if fields := validation.ValidateText(text); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	post := &models.Post{
		UserID: userID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// Get returns one post with its likes and comments.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns the feed newest-first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.posts.List(ctx, limit, offset)
}

// Delete removes a post. Only the author may delete it; everyone else gets a
// forbidden error and the post stays.
func (s *PostService) Delete(ctx context.Context, postID, userID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized")
	}
	return s.posts.Delete(ctx, postID)
}

// Like registers the caller's like and returns the post's updated like list.
// Liking twice is rejected, not toggled.
func (s *PostService) Like(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	liked, err := s.posts.IsLiked(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewAlreadyLikedError()
	}
	if err := s.posts.Like(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.posts.LikesFor(ctx, postID)
}

// Unlike removes the caller's like and returns the updated like list.
func (s *PostService) Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.posts.Unlike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.posts.LikesFor(ctx, postID)
}

// AddComment stores a comment on the post and returns the post's updated
// comment list, newest-first.
func (s *PostService) AddComment(ctx context.Context, postID, userID uint, text string) ([]models.Comment, error) {
	if fields := validation.ValidateText(text); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// DeleteComment removes a comment from a post. Only the comment's author may
// remove it. A comment ID that exists on a different post answers not found.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, userID uint) ([]models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment")
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("User not authorized")
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}
