package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"community_board/internal/model"
	"community_board/internal/repository"
)

// PostService defines operations on bulletin posts
type PostService interface {
	CreatePost(ctx context.Context, caller model.Identity, req model.CreatePostRequest) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, postID int) (*model.Post, error)
	UpdatePost(ctx context.Context, caller model.Identity, postID int, req model.UpdatePostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, caller model.Identity, postID int) (*model.Post, error)
}

type postService struct {
	repo   repository.PostRepository
	policy *OwnershipPolicy
}

// NewPostService creates a new PostService
func NewPostService(repo repository.PostRepository, policy *OwnershipPolicy) PostService {
	return &postService{repo: repo, policy: policy}
}

func (s *postService) CreatePost(ctx context.Context, caller model.Identity, req model.CreatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		AuthorID:  caller.UserID,
		ImageURL:  req.ImageURL,
		Location:  req.Location,
		ExpiresAt: req.ExpiresAt,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return nil, ErrAccountMissing
		}
		return nil, fmt.Errorf("failed to create post in repo: %w", err)
	}
	post.Author = &model.PostAuthor{ID: caller.UserID, Email: caller.Email}
	slog.InfoContext(ctx, "post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, postID int) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, caller model.Identity, postID int, req model.UpdatePostRequest) (*model.Post, error) {
	post, err := s.policy.Authorize(ctx, postID, caller)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.Apply(post)

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post in repo: %w", err)
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, caller model.Identity, postID int) (*model.Post, error) {
	post, err := s.policy.Authorize(ctx, postID, caller)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, postID, caller.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to delete post in repo: %w", err)
	}
	slog.InfoContext(ctx, "post deleted", "post_id", postID, "author_id", caller.UserID)
	return post, nil
}
