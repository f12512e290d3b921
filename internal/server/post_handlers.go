package server

import (
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text string `json:"text"`
}

// handleCreatePost stores a new post authored by the caller.
//
//	@Summary	Create a post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		body	body		postRequest	true	"post payload"
//	@Success	201		{object}	models.Post
//	@Failure	400		{object}	models.ErrorResponse
//	@Router		/api/posts [post]
func (s *Server) handleCreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	post, err := s.posts.Create(c.UserContext(), s.userID(c), req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// handleListPosts answers with the feed newest-first.
//
//	@Summary	List posts
//	@Tags		posts
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		limit	query	int	false	"page size"
//	@Param		offset	query	int	false	"page offset"
//	@Success	200		{array}	models.Post
//	@Router		/api/posts [get]
func (s *Server) handleListPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	posts, err := s.posts.List(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// handleGetPost answers with one post including likes and comments.
//
//	@Summary	Get a post
//	@Tags		posts
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		int	true	"post ID"
//	@Success	200	{object}	models.Post
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/{id} [get]
func (s *Server) handleGetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.posts.Get(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// handleDeletePost removes the caller's post.
//
//	@Summary	Delete a post
//	@Tags		posts
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path		int	true	"post ID"
//	@Success	200	{object}	map[string]string
//	@Failure	403	{object}	models.ErrorResponse
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/{id} [delete]
func (s *Server) handleDeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.posts.Delete(c.UserContext(), postID, s.userID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// handleLikePost registers the caller's like and answers with the updated
// like list.
//
//	@Summary	Like a post
//	@Tags		posts
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path	int	true	"post ID"
//	@Success	200	{array}	models.Like
//	@Failure	400	{object}	models.ErrorResponse
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/like/{id} [put]
func (s *Server) handleLikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	likes, err := s.posts.Like(c.UserContext(), postID, s.userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(likes)
}

// handleUnlikePost removes the caller's like and answers with the updated
// like list.
//
//	@Summary	Unlike a post
//	@Tags		posts
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path	int	true	"post ID"
//	@Success	200	{array}	models.Like
//	@Failure	400	{object}	models.ErrorResponse
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/unlike/{id} [put]
func (s *Server) handleUnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	likes, err := s.posts.Unlike(c.UserContext(), postID, s.userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(likes)
}

// handleAddComment stores a comment and answers with the post's comments
// newest-first.
//
//	@Summary	Comment on a post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id		path	int			true	"post ID"
//	@Param		body	body	postRequest	true	"comment payload"
//	@Success	201		{array}	models.Comment
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/posts/comment/{id} [post]
func (s *Server) handleAddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	comments, err := s.posts.AddComment(c.UserContext(), postID, s.userID(c), req.Text)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// handleDeleteComment removes the caller's comment and answers with the
// post's remaining comments.
//
//	@Summary	Delete a comment
//	@Tags		posts
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id			path	int	true	"post ID"
//	@Param		commentId	path	int	true	"comment ID"
//	@Success	200			{array}	models.Comment
//	@Failure	403			{object}	models.ErrorResponse
//	@Failure	404			{object}	models.ErrorResponse
//	@Router		/api/posts/comment/{id}/{commentId} [delete]
func (s *Server) handleDeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}
	comments, err := s.posts.DeleteComment(c.UserContext(), postID, commentID, s.userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}
