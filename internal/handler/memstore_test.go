package handler

import (
	"context"
	"slices"
	"sync"
	"time"

	"community_board/internal/model"
	"community_board/internal/repository"
)

// memStore is an in-memory stand-in for Postgres with the same constraint
// behaviour: unique emails, post authors must exist, guarded writes.
type memStore struct {
	mu     sync.Mutex
	users  []model.User
	posts  []model.Post
	nextID struct{ user, post int }
}

func newMemStore() *memStore { return &memStore{} }

type memUsers struct{ s *memStore }

type memPosts struct{ s *memStore }

func (s *memStore) userByID(id int) *model.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *memStore) userByEmail(email string) *model.User {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i]
		}
	}
	return nil
}

func (s *memStore) withAuthor(p model.Post) model.Post {
	if u := s.userByID(p.AuthorID); u != nil {
		p.Author = &model.PostAuthor{ID: u.ID, Email: u.Email}
	}
	return p
}

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.userByEmail(user.Email) != nil {
		return repository.ErrDuplicateEmail
	}
	r.s.nextID.user++
	user.ID = r.s.nextID.user
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u := r.s.userByEmail(email); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r memUsers) FindByID(_ context.Context, id int) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u := r.s.userByID(id); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r memUsers) FindAll(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.users), nil
}

func (r memUsers) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if other := r.s.userByEmail(user.Email); other != nil && other.ID != user.ID {
		return repository.ErrDuplicateEmail
	}
	u := r.s.userByID(user.ID)
	if u == nil {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	*u = *user
	return nil
}

// Delete cascades to the user's posts like ON DELETE CASCADE does
func (r memUsers) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.users)
	r.s.users = slices.DeleteFunc(r.s.users, func(u model.User) bool { return u.ID == id })
	if len(r.s.users) == n {
		return repository.ErrNotFound
	}
	r.s.posts = slices.DeleteFunc(r.s.posts, func(p model.Post) bool { return p.AuthorID == id })
	return nil
}

func (r memPosts) Create(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.userByID(post.AuthorID) == nil {
		return repository.ErrAuthorNotFound
	}
	r.s.nextID.post++
	post.ID = r.s.nextID.post
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	stored.Author = nil
	r.s.posts = append(r.s.posts, stored)
	return nil
}

func (r memPosts) FindByID(_ context.Context, id int) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.posts {
		if p.ID == id {
			out := r.s.withAuthor(p)
			return &out, nil
		}
	}
	return nil, nil
}

func (r memPosts) FindAll(_ context.Context) ([]model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Post, 0, len(r.s.posts))
	for i := len(r.s.posts) - 1; i >= 0; i-- {
		out = append(out, r.s.withAuthor(r.s.posts[i]))
	}
	return out, nil
}

func (r memPosts) Update(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.posts {
		if r.s.posts[i].ID == post.ID && r.s.posts[i].AuthorID == post.AuthorID {
			post.UpdatedAt = time.Now()
			stored := *post
			stored.Author = nil
			r.s.posts[i] = stored
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memPosts) Delete(_ context.Context, id, authorID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.posts {
		if r.s.posts[i].ID == id && r.s.posts[i].AuthorID == authorID {
			r.s.posts = slices.Delete(r.s.posts, i, i+1)
			return nil
		}
	}
	return repository.ErrNotFound
}
