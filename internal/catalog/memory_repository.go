package catalog

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository stores post summaries in-memory.
type MemoryRepository struct {
	mu          sync.RWMutex
	posts       map[string]PostSummary
	broadcaster *changeBroadcaster
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts:       map[string]PostSummary{},
		broadcaster: newChangeBroadcaster(),
	}
}

// Upsert stores post, emitting a change event when something changed.
func (r *MemoryRepository) Upsert(_ context.Context, post PostSummary) (PostSummary, error) {
	post.Tags = slices.Clone(post.Tags)

	r.mu.Lock()
	previous, exists := r.posts[post.Slug]
	r.posts[post.Slug] = post
	r.mu.Unlock()

	if exists && previous.equal(post) {
		return post, nil
	}
	changeType := ChangeUpdated
	if !exists {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(changeType, post.Slug))
	return post, nil
}

// Get returns the summary stored for slug or ErrPostNotFound.
func (r *MemoryRepository) Get(_ context.Context, slug string) (PostSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[slug]
	if !ok {
		return PostSummary{}, ErrPostNotFound
	}
	post.Tags = slices.Clone(post.Tags)
	return post, nil
}

// List returns every stored summary, newest first.
func (r *MemoryRepository) List(context.Context) ([]PostSummary, error) {
	r.mu.RLock()
	posts := make([]PostSummary, 0, len(r.posts))
	for _, post := range r.posts {
		post.Tags = slices.Clone(post.Tags)
		posts = append(posts, post)
	}
	r.mu.RUnlock()

	sortNewestFirst(posts)
	return posts, nil
}

// Delete removes the summary stored for slug and emits a change event.
func (r *MemoryRepository) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	if _, ok := r.posts[slug]; !ok {
		r.mu.Unlock()
		return ErrPostNotFound
	}
	delete(r.posts, slug)
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, slug))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
