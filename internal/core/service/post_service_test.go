package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-system/blog-api/internal/core/domain"
	"github.com/blog-system/blog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	posts     map[int64]*domain.Post
	nextID    int64
	saveErr   error // if set, Save returns this error
	saveCalls int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[int64]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	return &clone
}

func (r *stubPostRepo) sorted(keep func(*domain.Post) bool) []*domain.Post {
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, clonePost(p))
		}
	}
	// Mirrors ORDER BY created_at DESC, id DESC.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *stubPostRepo) FindAll(_ context.Context) ([]*domain.Post, error) {
	return r.sorted(func(*domain.Post) bool { return true }), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, ports.ErrNoRecord
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) Save(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.saveCalls++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	clone := clonePost(p)
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if _, ok := r.posts[clone.ID]; !ok {
		return nil, ports.ErrNoRecord
	}
	r.posts[clone.ID] = clone
	return clonePost(clone), nil
}

func (r *stubPostRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return ports.ErrNoRecord
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) FindByTitleContaining(_ context.Context, keyword string) ([]*domain.Post, error) {
	return r.sorted(func(p *domain.Post) bool { return strings.Contains(p.Title, keyword) }), nil
}

func (r *stubPostRepo) FindByAuthor(_ context.Context, author string) ([]*domain.Post, error) {
	return r.sorted(func(p *domain.Post) bool { return p.Author == author }), nil
}

// stubIdempotencyStore holds 0 for a reserved key whose post is not saved yet.
type stubIdempotencyStore struct {
	keys map[string]int64
	err  error // if set, Reserve and Lookup return this error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]int64)}
}

func (s *stubIdempotencyStore) Reserve(_ context.Context, key string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = 0
	return true, nil
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, key string) (int64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	id, ok := s.keys[key]
	return id, ok && id != 0, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, key string, postID int64) error {
	s.keys[key] = postID
	return nil
}

func (s *stubIdempotencyStore) Release(_ context.Context, key string) error {
	delete(s.keys, key)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validInput(title string) ports.CreatePostInput {
	return ports.CreatePostInput{PostInput: ports.PostInput{
		Title:   title,
		Content: "테스트 내용입니다.",
		Author:  "테스터",
	}}
}

func seedPost(repo *stubPostRepo, title, author string, createdAt time.Time) *domain.Post {
	repo.nextID++
	p := &domain.Post{
		ID:        repo.nextID,
		Title:     title,
		Content:   "본문",
		Author:    author,
		CreatedAt: domain.DateOf(createdAt),
	}
	repo.posts[p.ID] = p
	return clonePost(p)
}

// ---------------------------------------------------------------------------
// CreatePost tests
// ---------------------------------------------------------------------------

func TestPostService_Create_AssignsIDAndToday(t *testing.T) {
	repo := newStubPostRepo()
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.Local)
	svc := NewPostService(repo, discardLogger, WithClock(fixedClock(now)))

	result, err := svc.CreatePost(context.Background(), validInput("테스트 게시글"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Post.ID == 0 {
		t.Error("expected an assigned id")
	}
	want := time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)
	if !result.Post.CreatedAt.Equal(want) {
		t.Errorf("expected createdAt %v, got %v", want, result.Post.CreatedAt)
	}
	if result.Replayed {
		t.Error("expected Replayed=false for a new post")
	}
	if _, ok := repo.posts[result.Post.ID]; !ok {
		t.Error("post was not persisted")
	}
}

func TestPostService_Create_RejectsBlankFields(t *testing.T) {
	cases := []struct {
		name  string
		input ports.PostInput
		want  error
	}{
		{"empty title", ports.PostInput{Title: "", Content: "c", Author: "a"}, domain.ErrTitleRequired},
		{"whitespace title", ports.PostInput{Title: "   ", Content: "c", Author: "a"}, domain.ErrTitleRequired},
		{"blank content", ports.PostInput{Title: "t", Content: "\t\n", Author: "a"}, domain.ErrContentRequired},
		{"blank author", ports.PostInput{Title: "t", Content: "c", Author: " "}, domain.ErrAuthorRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubPostRepo()
			svc := NewPostService(repo, discardLogger)

			_, err := svc.CreatePost(context.Background(), ports.CreatePostInput{PostInput: tc.input})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation kind, got %v", err)
			}
			if repo.saveCalls != 0 {
				t.Errorf("repo must not be called for invalid input, got %d calls", repo.saveCalls)
			}
		})
	}
}

func TestPostService_Create_RepoError(t *testing.T) {
	repo := newStubPostRepo()
	repo.saveErr = errors.New("db unavailable")
	svc := NewPostService(repo, discardLogger)

	if _, err := svc.CreatePost(context.Background(), validInput("t")); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Idempotency tests
// ---------------------------------------------------------------------------

func TestPostService_Create_IdempotencyReplay(t *testing.T) {
	repo := newStubPostRepo()
	store := newStubIdempotencyStore()
	svc := NewPostService(repo, discardLogger, WithIdempotencyStore(store))

	input := validInput("t")
	input.IdempotencyKey = "key-abc-123"

	first, err := svc.CreatePost(context.Background(), input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.CreatePost(context.Background(), input)
	if err != nil {
		t.Fatalf("second create (replay) failed: %v", err)
	}

	if second.Post.ID != first.Post.ID {
		t.Errorf("replay must return the same post: got %d, want %d", second.Post.ID, first.Post.ID)
	}
	if !second.Replayed {
		t.Error("replay must set Replayed=true")
	}
	if len(repo.posts) != 1 {
		t.Errorf("expected 1 stored post, got %d", len(repo.posts))
	}
}

func TestPostService_Create_IdempotencyKeyOfDeletedPost(t *testing.T) {
	repo := newStubPostRepo()
	store := newStubIdempotencyStore()
	store.keys["gone"] = 42
	svc := NewPostService(repo, discardLogger, WithIdempotencyStore(store))

	input := validInput("t")
	input.IdempotencyKey = "gone"

	result, err := svc.CreatePost(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Replayed {
		t.Error("a key pointing at a missing post must not replay")
	}
	if store.keys["gone"] != result.Post.ID {
		t.Errorf("key should now point at %d, got %d", result.Post.ID, store.keys["gone"])
	}
}

func TestPostService_Create_IdempotencyStoreDown(t *testing.T) {
	repo := newStubPostRepo()
	store := newStubIdempotencyStore()
	store.err = errors.New("redis down")
	svc := NewPostService(repo, discardLogger, WithIdempotencyStore(store))

	input := validInput("t")
	input.IdempotencyKey = "k"

	if _, err := svc.CreatePost(context.Background(), input); err != nil {
		t.Fatalf("store failure must not fail the create: %v", err)
	}
	if len(repo.posts) != 1 {
		t.Errorf("expected 1 stored post, got %d", len(repo.posts))
	}
}

func TestPostService_Create_IdempotencyKeyInFlight(t *testing.T) {
	repo := newStubPostRepo()
	store := newStubIdempotencyStore()
	svc := NewPostService(repo, discardLogger, WithIdempotencyStore(store))

	// Another request reserved the key and has not saved its post yet.
	reserved, _ := store.Reserve(context.Background(), "k")
	if !reserved {
		t.Fatal("expected fresh key to be reserved")
	}

	input := validInput("t")
	input.IdempotencyKey = "k"

	_, err := svc.CreatePost(context.Background(), input)
	if !errors.Is(err, domain.ErrRequestInProgress) {
		t.Fatalf("expected ErrRequestInProgress, got %v", err)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected a conflict kind, got %v", err)
	}
	if repo.saveCalls != 0 {
		t.Errorf("in-flight key must not create a second post, got %d saves", repo.saveCalls)
	}
}

func TestPostService_Create_ReleasesKeyWhenSaveFails(t *testing.T) {
	repo := newStubPostRepo()
	repo.saveErr = errors.New("db unavailable")
	store := newStubIdempotencyStore()
	svc := NewPostService(repo, discardLogger, WithIdempotencyStore(store))

	input := validInput("t")
	input.IdempotencyKey = "k"

	if _, err := svc.CreatePost(context.Background(), input); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
	if _, held := store.keys["k"]; held {
		t.Fatal("failed create must release its reservation")
	}

	repo.saveErr = nil
	result, err := svc.CreatePost(context.Background(), input)
	if err != nil {
		t.Fatalf("retry after failure should succeed: %v", err)
	}
	if result.Replayed || store.keys["k"] != result.Post.ID {
		t.Errorf("retry must create and remember the post, got %+v keys=%v", result, store.keys)
	}
}

func TestPostService_Create_InvalidInputLeavesKeyFree(t *testing.T) {
	store := newStubIdempotencyStore()
	svc := NewPostService(newStubPostRepo(), discardLogger, WithIdempotencyStore(store))

	input := validInput("")
	input.IdempotencyKey = "k"

	if _, err := svc.CreatePost(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.keys) != 0 {
		t.Errorf("rejected input must not reserve a key, got %v", store.keys)
	}
}

func TestPostService_Create_NoIdempotencyKey_AlwaysCreates(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, discardLogger, WithIdempotencyStore(newStubIdempotencyStore()))

	_, _ = svc.CreatePost(context.Background(), validInput("t"))
	_, _ = svc.CreatePost(context.Background(), validInput("t"))

	if len(repo.posts) != 2 {
		t.Errorf("without idempotency key, each call must create a new post; got %d", len(repo.posts))
	}
}

// ---------------------------------------------------------------------------
// Read tests
// ---------------------------------------------------------------------------

func TestPostService_GetAll_NewestFirst(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, discardLogger)
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	seedPost(repo, "old", "a", base.AddDate(0, 0, -2))
	seedPost(repo, "new", "a", base)
	seedPost(repo, "mid", "a", base.AddDate(0, 0, -1))

	posts, err := svc.GetAllPosts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if posts[i].CreatedAt.After(posts[i-1].CreatedAt) {
			t.Errorf("posts not ordered newest first at %d: %v after %v", i, posts[i].CreatedAt, posts[i-1].CreatedAt)
		}
	}
	if posts[0].Title != "new" {
		t.Errorf("expected newest post first, got %q", posts[0].Title)
	}
}

func TestPostService_GetByID_NotFound(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), discardLogger)

	_, err := svc.GetPostByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), "999") {
		t.Errorf("error must contain the id, got %q", err.Error())
	}
}

func TestPostService_SearchByTitle(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, discardLogger)
	seedPost(repo, "테스트 게시글", "테스터", time.Now())
	seedPost(repo, "다른 글", "테스터", time.Now())

	found, err := svc.SearchByTitle(context.Background(), "테스트")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].Title != "테스트 게시글" {
		t.Fatalf("expected the matching post, got %+v", found)
	}

	none, err := svc.SearchByTitle(context.Background(), "없는 제목")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestPostService_GetPostsByAuthor_ExactMatch(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, discardLogger)
	seedPost(repo, "a", "kim", time.Now())
	seedPost(repo, "b", "kimchi", time.Now())

	posts, err := svc.GetPostsByAuthor(context.Background(), "kim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 || posts[0].Author != "kim" {
		t.Fatalf("expected exactly the post by kim, got %+v", posts)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete tests
// ---------------------------------------------------------------------------

func TestPostService_Update_ChangesOnlyEditableFields(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, discardLogger)
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	orig := seedPost(repo, "before", "kim", created)

	updated, err := svc.UpdatePost(context.Background(), orig.ID, ports.PostInput{
		Title: "after", Content: "new body", Author: "lee",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.ID != orig.ID {
		t.Errorf("id changed: %d -> %d", orig.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("createdAt changed: %v -> %v", orig.CreatedAt, updated.CreatedAt)
	}
	if updated.Title != "after" || updated.Content != "new body" || updated.Author != "lee" {
		t.Errorf("editable fields not applied: %+v", updated)
	}
	if stored := repo.posts[orig.ID]; stored.Title != "after" {
		t.Errorf("update not persisted: %+v", stored)
	}
}

func TestPostService_Update_NotFound(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), discardLogger)

	_, err := svc.UpdatePost(context.Background(), 7, ports.PostInput{Title: "t", Content: "c", Author: "a"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostService_Update_RejectsBlank(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, discardLogger)
	orig := seedPost(repo, "keep", "kim", time.Now())

	_, err := svc.UpdatePost(context.Background(), orig.ID, ports.PostInput{Title: " ", Content: "c", Author: "a"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.posts[orig.ID].Title != "keep" {
		t.Error("invalid update must not be persisted")
	}
}

func TestPostService_Delete_ThenLookupFails(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, discardLogger)
	p := seedPost(repo, "bye", "kim", time.Now())

	if err := svc.DeletePost(context.Background(), p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetPostByID(context.Background(), p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestPostService_Delete_NotFound(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), discardLogger)

	if err := svc.DeletePost(context.Background(), 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
