package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/quill-server/internal/model"
)

// UserStore is an in-memory model.UserStore with a unique email index.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(user.Email, user.ID) {
		return model.User{}, fmt.Errorf("failed to create user: %w", model.ErrAlreadyExists)
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) Update(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return model.User{}, model.ErrNotFound
	}
	if s.emailTaken(user.Email, user.ID) {
		return model.User{}, fmt.Errorf("failed to update user: %w", model.ErrAlreadyExists)
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

// PostStore is an in-memory model.PostStore that joins author summaries from users.
type PostStore struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]model.Post
	users *UserStore
}

func NewPostStore(users *UserStore) *PostStore {
	return &PostStore{posts: make(map[uuid.UUID]model.Post), users: users}
}

func (s *PostStore) Create(ctx context.Context, post model.Post) (model.Post, error) {
	if _, err := s.users.GetByID(ctx, post.AuthorID); err != nil {
		return model.Post{}, err
	}

	s.mu.Lock()
	s.posts[post.ID] = post
	s.mu.Unlock()

	return s.withAuthor(ctx, post), nil
}

func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	s.mu.RLock()
	p, ok := s.posts[id]
	s.mu.RUnlock()

	if !ok {
		return model.Post{}, model.ErrNotFound
	}
	return s.withAuthor(ctx, p), nil
}

func (s *PostStore) List(ctx context.Context) ([]model.Post, error) {
	return s.filter(ctx, func(model.Post) bool { return true }), nil
}

func (s *PostStore) ListByCategory(ctx context.Context, category string) ([]model.Post, error) {
	return s.filter(ctx, func(p model.Post) bool { return p.Category == category }), nil
}

func (s *PostStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	return s.filter(ctx, func(p model.Post) bool { return p.AuthorID == authorID }), nil
}

func (s *PostStore) Update(ctx context.Context, post model.Post) (model.Post, error) {
	s.mu.Lock()
	existing, ok := s.posts[post.ID]
	if !ok {
		s.mu.Unlock()
		return model.Post{}, model.ErrNotFound
	}
	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt
	s.posts[post.ID] = post
	s.mu.Unlock()

	return s.withAuthor(ctx, post), nil
}

func (s *PostStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *PostStore) filter(ctx context.Context, keep func(model.Post) bool) []model.Post {
	s.mu.RLock()
	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	for i := range out {
		out[i] = s.withAuthor(ctx, out[i])
	}
	return out
}

func (s *PostStore) withAuthor(ctx context.Context, p model.Post) model.Post {
	if u, err := s.users.GetByID(ctx, p.AuthorID); err == nil {
		p.Author = model.AuthorSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return p
}

type object struct {
	data        []byte
	contentType string
}

// Storage is an in-memory model.Storage.
type Storage struct {
	mu      sync.RWMutex
	objects map[string]object
}

func NewStorage() *Storage {
	return &Storage{objects: make(map[string]object)}
}

func (s *Storage) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read object: %w", err)
	}

	s.mu.Lock()
	s.objects[key] = object{data: data, contentType: contentType}
	s.mu.Unlock()
	return nil
}

func (s *Storage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

func (s *Storage) Stat(_ context.Context, key string) (model.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return model.ObjectInfo{}, model.ErrNotFound
	}
	return model.ObjectInfo{Size: int64(len(obj.data)), ContentType: obj.contentType}, nil
}

// Keys lists stored object keys.
func (s *Storage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
