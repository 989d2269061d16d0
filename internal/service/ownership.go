package service

import (
	"context"
	"fmt"

	"community_board/internal/model"
	"community_board/internal/repository"
)

// OwnershipPolicy restricts post mutations to the post's author.
// There is no administrative override.
type OwnershipPolicy struct {
	posts repository.PostRepository
}

// NewOwnershipPolicy creates an OwnershipPolicy
func NewOwnershipPolicy(posts repository.PostRepository) *OwnershipPolicy {
	return &OwnershipPolicy{posts: posts}
}

// Authorize loads the post and checks caller owns it. Existence is checked
// first, so a missing post is ErrPostNotFound for every caller.
func (p *OwnershipPolicy) Authorize(ctx context.Context, postID int, caller model.Identity) (*model.Post, error) {
	post, err := p.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post for ownership check: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != caller.UserID {
		return nil, ErrNotPostOwner
	}
	return post, nil
}
