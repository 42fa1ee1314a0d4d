package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/blog-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/blog-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const (
	postID   = "0f8fad5b-d9cb-469f-a165-70867728950e"
	authorID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

type fakePostUsecase struct {
	create        func(ctx context.Context, input usecase.CreatePostInput) (*domain.Post, error)
	listPublished func(ctx context.Context, input usecase.ListPublishedInput) (*domain.PostList, error)
	get           func(ctx context.Context, id, viewerID string) (*domain.Post, error)
	update        func(ctx context.Context, id, callerID string, patch domain.PostPatch) (*domain.Post, error)
	delete        func(ctx context.Context, id, callerID string) error
	listOwn       func(ctx context.Context, callerID string, state *domain.State, page domain.Page) (*domain.PostList, error)
}

func (f *fakePostUsecase) Create(ctx context.Context, input usecase.CreatePostInput) (*domain.Post, error) {
	return f.create(ctx, input)
}

func (f *fakePostUsecase) ListPublished(ctx context.Context, input usecase.ListPublishedInput) (*domain.PostList, error) {
	return f.listPublished(ctx, input)
}

func (f *fakePostUsecase) Get(ctx context.Context, id, viewerID string) (*domain.Post, error) {
	return f.get(ctx, id, viewerID)
}

func (f *fakePostUsecase) Update(ctx context.Context, id, callerID string, patch domain.PostPatch) (*domain.Post, error) {
	return f.update(ctx, id, callerID, patch)
}

func (f *fakePostUsecase) Delete(ctx context.Context, id, callerID string) error {
	return f.delete(ctx, id, callerID)
}

func (f *fakePostUsecase) ListOwn(ctx context.Context, callerID string, state *domain.State, page domain.Page) (*domain.PostList, error) {
	return f.listOwn(ctx, callerID, state, page)
}

// staticAuth authenticates any bearer token as the fixed author.
type staticAuth struct{}

func (staticAuth) Authenticate(_ context.Context, _ string) (*domain.User, error) {
	return &domain.User{ID: authorID}, nil
}

func newPostEngine(uc *fakePostUsecase) *gin.Engine {
	h := handler.NewPostHandler(uc, discard)
	requireAuth := middleware.RequireAuth(staticAuth{})

	r := gin.New()
	r.Use(middleware.Errors(discard))
	r.GET("/api/blogs", h.List)
	r.GET("/api/blogs/me", requireAuth, h.ListOwn)
	r.GET("/api/blogs/:id", middleware.OptionalAuth(staticAuth{}), h.Get)
	r.POST("/api/blogs", requireAuth, h.Create)
	r.PATCH("/api/blogs/:id", requireAuth, h.Update)
	r.DELETE("/api/blogs/:id", requireAuth, h.Delete)
	return r
}

func send(r *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer token")
	}
	r.ServeHTTP(w, req)
	return w
}

func samplePost() *domain.Post {
	return &domain.Post{
		ID:          postID,
		AuthorID:    authorID,
		Title:       "Hello",
		Slug:        "hello",
		Body:        "body",
		Tags:        []string{"go"},
		State:       domain.StatePublished,
		ReadCount:   1,
		ReadingTime: 2,
		CreatedAt:   time.Unix(1700000000, 0).UTC(),
		Author:      &domain.Author{ID: authorID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}
}

// ---- Create ----

func TestCreatePost_Unauthenticated_Returns401(t *testing.T) {
	w := send(newPostEngine(&fakePostUsecase{}), http.MethodPost, "/api/blogs", `{"title":"t","body":"b"}`, false)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestCreatePost_MissingBody_Returns400(t *testing.T) {
	w := send(newPostEngine(&fakePostUsecase{}), http.MethodPost, "/api/blogs", `{"title":"t"}`, true)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreatePost_BadState_Returns400(t *testing.T) {
	w := send(newPostEngine(&fakePostUsecase{}), http.MethodPost, "/api/blogs", `{"title":"t","body":"b","state":"archived"}`, true)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreatePost_Success_OwnerIsCaller(t *testing.T) {
	uc := &fakePostUsecase{
		create: func(_ context.Context, in usecase.CreatePostInput) (*domain.Post, error) {
			if in.AuthorID != authorID {
				t.Errorf("author = %q, want %q", in.AuthorID, authorID)
			}
			p := samplePost()
			p.State = domain.StateDraft
			p.ReadCount = 0
			return p, nil
		},
	}
	w := send(newPostEngine(uc), http.MethodPost, "/api/blogs", `{"title":"Hello","body":"body"}`, true)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var resp struct {
		Data struct {
			Author      string `json:"author"`
			State       string `json:"state"`
			ReadingTime string `json:"reading_time"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Author != authorID || resp.Data.State != "draft" || resp.Data.ReadingTime != "2 min read" {
		t.Errorf("data = %+v", resp.Data)
	}
}

// ---- List ----

func TestListPosts_ParsesQuery(t *testing.T) {
	uc := &fakePostUsecase{
		listPublished: func(_ context.Context, in usecase.ListPublishedInput) (*domain.PostList, error) {
			if in.Search != "go" || in.Tag != "tips" || in.AuthorID != authorID {
				t.Errorf("input = %+v", in)
			}
			if in.Order != domain.OrderQuickest {
				t.Errorf("order = %+v, want quickest", in.Order)
			}
			if in.Page != (domain.Page{Number: 2, Limit: 5}) {
				t.Errorf("page = %+v", in.Page)
			}
			return &domain.PostList{Posts: []*domain.Post{samplePost()}, Page: in.Page, Total: 6}, nil
		},
	}
	w := send(newPostEngine(uc), http.MethodGet,
		"/api/blogs?search=go&tag=tips&author="+authorID+"&orderBy=reading_time&page=2&limit=5", "", false)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Data []struct {
			Author struct {
				FirstName string `json:"first_name"`
			} `json:"author"`
		} `json:"data"`
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Page != 2 || resp.Limit != 5 || resp.Total != 6 {
		t.Errorf("page=%d limit=%d total=%d", resp.Page, resp.Limit, resp.Total)
	}
	if len(resp.Data) != 1 || resp.Data[0].Author.FirstName != "Ada" {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestListPosts_MalformedAuthor_Returns400(t *testing.T) {
	w := send(newPostEngine(&fakePostUsecase{}), http.MethodGet, "/api/blogs?author=123", "", false)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListOwn_InvalidStateFilter_Unfiltered(t *testing.T) {
	uc := &fakePostUsecase{
		listOwn: func(_ context.Context, callerID string, state *domain.State, page domain.Page) (*domain.PostList, error) {
			if callerID != authorID {
				t.Errorf("caller = %q", callerID)
			}
			if state != nil {
				t.Errorf("state = %v, want nil", *state)
			}
			return &domain.PostList{Page: page}, nil
		},
	}
	w := send(newPostEngine(uc), http.MethodGet, "/api/blogs/me?state=archived", "", true)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty data array", w.Body.String())
	}
}

// ---- Get ----

func TestGetPost_Anonymous_Returns200(t *testing.T) {
	uc := &fakePostUsecase{
		get: func(_ context.Context, id, viewerID string) (*domain.Post, error) {
			if viewerID != "" {
				t.Errorf("viewer = %q, want anonymous", viewerID)
			}
			return samplePost(), nil
		},
	}
	w := send(newPostEngine(uc), http.MethodGet, "/api/blogs/"+postID, "", false)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"read_count":1`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGetPost_NotFound_Returns404(t *testing.T) {
	uc := &fakePostUsecase{
		get: func(_ context.Context, _, _ string) (*domain.Post, error) {
			return nil, domain.ErrPostNotFound
		},
	}
	w := send(newPostEngine(uc), http.MethodGet, "/api/blogs/"+postID, "", true)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetPost_MalformedID_Returns400(t *testing.T) {
	w := send(newPostEngine(&fakePostUsecase{}), http.MethodGet, "/api/blogs/not-an-id", "", false)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---- Update / Delete ----

func TestUpdatePost_OnlyPresentFieldsPatched(t *testing.T) {
	uc := &fakePostUsecase{
		update: func(_ context.Context, _, _ string, patch domain.PostPatch) (*domain.Post, error) {
			if patch.State == nil || *patch.State != domain.StatePublished {
				t.Errorf("state = %v, want published", patch.State)
			}
			if patch.Title != nil || patch.Body != nil || patch.Description != nil || patch.Tags != nil {
				t.Errorf("unexpected fields in patch: %+v", patch)
			}
			return samplePost(), nil
		},
	}
	w := send(newPostEngine(uc), http.MethodPatch, "/api/blogs/"+postID, `{"state":"published"}`, true)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestUpdatePost_NotOwner_Returns403(t *testing.T) {
	uc := &fakePostUsecase{
		update: func(_ context.Context, _, _ string, _ domain.PostPatch) (*domain.Post, error) {
			return nil, domain.ErrForbiddenUpdate
		},
	}
	w := send(newPostEngine(uc), http.MethodPatch, "/api/blogs/"+postID, `{"title":"x"}`, true)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestUpdatePost_InvalidValues_ReachUsecase(t *testing.T) {
	called := false
	uc := &fakePostUsecase{
		update: func(_ context.Context, _, _ string, patch domain.PostPatch) (*domain.Post, error) {
			called = true
			if patch.State == nil || *patch.State != "archived" {
				t.Errorf("state = %v, want archived", patch.State)
			}
			return nil, domain.ErrForbiddenUpdate
		},
	}
	w := send(newPostEngine(uc), http.MethodPatch, "/api/blogs/"+postID, `{"title":"","state":"archived"}`, true)

	if !called {
		t.Fatal("usecase not called")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestDeletePost_Success_ReturnsNullData(t *testing.T) {
	uc := &fakePostUsecase{
		delete: func(_ context.Context, id, callerID string) error {
			if id != postID || callerID != authorID {
				t.Errorf("id=%q caller=%q", id, callerID)
			}
			return nil
		},
	}
	w := send(newPostEngine(uc), http.MethodDelete, "/api/blogs/"+postID, "", true)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"success","data":null}` {
		t.Errorf("body = %s", got)
	}
}
