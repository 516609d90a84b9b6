//go:build unit

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-cms-app/internal/data"
	"go-cms-app/internal/validator"
)

// mockPageRepository is an in-memory implementation of the PageRepository
// interface.
type mockPageRepository struct {
	pages   map[int64]*data.Page
	authors map[int64]data.Author
	nextID  int64

	errToReturn  error
	createCalled bool
	updateCalled bool
	deleteCalled bool
	lastMeta     data.PageMeta
	lastBlocks   []data.Block
}

var _ PageRepository = (*mockPageRepository)(nil)

func newMockPageRepository() *mockPageRepository {
	return &mockPageRepository{
		pages:   make(map[int64]*data.Page),
		authors: make(map[int64]data.Author),
		nextID:  1,
	}
}

func (m *mockPageRepository) ListAllPages(ctx context.Context) ([]data.Page, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	var pages []data.Page
	for _, p := range m.pages {
		page := *p
		page.Status = data.ResolveStatus(page.PublicationDate, data.Today())
		pages = append(pages, page)
	}
	return pages, nil
}

func (m *mockPageRepository) ListPublishedPages(ctx context.Context) ([]data.Page, error) {
	all, err := m.ListAllPages(ctx)
	if err != nil {
		return nil, err
	}
	var published []data.Page
	for _, p := range all {
		if p.Status == data.StatusPublished {
			published = append(published, p)
		}
	}
	return published, nil
}

func (m *mockPageRepository) GetPageWithBlocks(ctx context.Context, id int64) (*data.Page, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	p, ok := m.pages[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	page := *p
	page.Blocks = append([]data.Block(nil), p.Blocks...)
	page.Status = data.ResolveStatus(page.PublicationDate, data.Today())
	return &page, nil
}

func (m *mockPageRepository) CreatePageWithBlocks(ctx context.Context, meta data.PageMeta, blocks []data.Block) (int64, error) {
	m.createCalled = true
	m.lastMeta = meta
	m.lastBlocks = blocks
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	id := m.nextID
	m.nextID++
	m.pages[id] = &data.Page{
		ID:              id,
		Title:           meta.Title,
		Author:          m.authors[meta.AuthorID],
		CreationDate:    meta.CreationDate,
		PublicationDate: meta.PublicationDate,
		Blocks:          blocks,
	}
	return id, nil
}

func (m *mockPageRepository) UpdatePageWithBlocks(ctx context.Context, id int64, meta data.PageMeta, blocks []data.Block) error {
	m.updateCalled = true
	m.lastMeta = meta
	m.lastBlocks = blocks
	if m.errToReturn != nil {
		return m.errToReturn
	}
	p, ok := m.pages[id]
	if !ok {
		return data.ErrNotFound
	}
	p.Title = meta.Title
	p.Author = m.authors[meta.AuthorID]
	p.PublicationDate = meta.PublicationDate
	p.Blocks = blocks
	return nil
}

func (m *mockPageRepository) DeletePage(ctx context.Context, id int64) error {
	m.deleteCalled = true
	if m.errToReturn != nil {
		return m.errToReturn
	}
	if _, ok := m.pages[id]; !ok {
		return data.ErrNotFound
	}
	delete(m.pages, id)
	return nil
}

// mockUserRepository is an in-memory implementation of the UserRepository
// interface.
type mockUserRepository struct {
	users map[string]*data.User
}

var _ UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) GetUserByID(ctx context.Context, id int64) (*data.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*data.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, data.ErrNotFound
}

// newTestService wires a PageService over fresh mocks with two regular users
// and one admin.
func newTestService() (*PageService, *mockPageRepository, *mockUserRepository) {
	pages := newMockPageRepository()
	users := &mockUserRepository{users: map[string]*data.User{
		"alice": {ID: 1, Name: "Alice", Username: "alice", Role: data.RoleUser},
		"bob":   {ID: 2, Name: "Bob", Username: "bob", Role: data.RoleUser},
		"root":  {ID: 3, Name: "Root", Username: "root", Role: data.RoleAdmin},
	}}
	pages.authors[1] = data.Author{Name: "Alice", Username: "alice"}
	pages.authors[2] = data.Author{Name: "Bob", Username: "bob"}
	pages.authors[3] = data.Author{Name: "Root", Username: "root"}
	return NewPageService(pages, users), pages, users
}

var (
	alice = Actor{ID: 1, Username: "alice", Role: data.RoleUser}
	bob   = Actor{ID: 2, Username: "bob", Role: data.RoleUser}
	root  = Actor{ID: 3, Username: "root", Role: data.RoleAdmin}
	anon  = Actor{}
)

func draftInput(author string) PageInput {
	return PageInput{
		Title:          "T",
		AuthorUsername: author,
		Blocks: []data.Block{
			{Type: data.BlockHeader, Content: "H", Position: 1},
			{Type: data.BlockParagraph, Content: "P", Position: 2},
		},
	}
}

func TestPageService_CreatePage(t *testing.T) {
	ctx := context.Background()

	t.Run("create without publication date yields a draft", func(t *testing.T) {
		svc, _, _ := newTestService()

		page, err := svc.CreatePage(ctx, alice, draftInput("alice"))
		if err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}
		if page.Status != data.StatusDraft {
			t.Errorf("expected status draft, got %q", page.Status)
		}
		if len(page.Blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(page.Blocks))
		}
		if page.Blocks[0].Position != 1 || page.Blocks[1].Position != 2 {
			t.Errorf("expected positions 1,2, got %d,%d", page.Blocks[0].Position, page.Blocks[1].Position)
		}
		if !page.CreationDate.Equal(data.Today()) {
			t.Errorf("expected creation date today, got %s", page.CreationDate)
		}
	})

	t.Run("creating for another author requires admin", func(t *testing.T) {
		svc, repo, _ := newTestService()

		_, err := svc.CreatePage(ctx, bob, draftInput("alice"))
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if repo.createCalled {
			t.Error("repository was called despite the authorization failure")
		}

		if _, err := svc.CreatePage(ctx, root, draftInput("alice")); err != nil {
			t.Errorf("admin create for another author failed: %v", err)
		}
	})

	t.Run("unknown author fails before privilege is checked", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.CreatePage(ctx, alice, draftInput("nobody"))
		if !errors.Is(err, data.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("validation failure leaves no side effects", func(t *testing.T) {
		svc, repo, _ := newTestService()
		input := draftInput("alice")
		input.Title = ""
		input.Blocks = input.Blocks[:1]

		_, err := svc.CreatePage(ctx, alice, input)
		var verr validator.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected a ValidationError, got %v", err)
		}
		if len(verr.Errors) < 2 {
			t.Errorf("expected all violations reported together, got %v", verr.Errors)
		}
		if repo.createCalled {
			t.Error("repository was called despite the validation failure")
		}
	})

	t.Run("blocks are persisted sorted by position", func(t *testing.T) {
		svc, repo, _ := newTestService()
		input := PageInput{
			Title:          "T",
			AuthorUsername: "alice",
			Blocks: []data.Block{
				{Type: data.BlockParagraph, Content: "P", Position: 2},
				{Type: data.BlockHeader, Content: "H", Position: 1},
			},
		}
		if _, err := svc.CreatePage(ctx, alice, input); err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}
		if repo.lastBlocks[0].Position != 1 || repo.lastBlocks[1].Position != 2 {
			t.Errorf("expected blocks sorted by position, got %+v", repo.lastBlocks)
		}
	})
}

func TestPageService_GetPage(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous read of a draft is not authenticated", func(t *testing.T) {
		svc, _, _ := newTestService()
		page, err := svc.CreatePage(ctx, alice, draftInput("alice"))
		if err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}

		if _, err := svc.GetPage(ctx, page.ID, anon); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("anonymous read of a published page succeeds", func(t *testing.T) {
		svc, _, _ := newTestService()
		input := draftInput("alice")
		input.PublicationDate = data.Today()
		created, err := svc.CreatePage(ctx, alice, input)
		if err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}

		page, err := svc.GetPage(ctx, created.ID, anon)
		if err != nil {
			t.Fatalf("GetPage failed: %v", err)
		}
		if page.Status != data.StatusPublished {
			t.Errorf("expected status published, got %q", page.Status)
		}
	})

	t.Run("missing page is not found, not unauthenticated", func(t *testing.T) {
		svc, _, _ := newTestService()
		if _, err := svc.GetPage(ctx, 99, anon); !errors.Is(err, data.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("paragraph blocks carry rendered html", func(t *testing.T) {
		svc, _, _ := newTestService()
		input := draftInput("alice")
		input.Blocks[1].Content = "some **bold** text"
		created, err := svc.CreatePage(ctx, alice, input)
		if err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}

		page, err := svc.GetPage(ctx, created.ID, alice)
		if err != nil {
			t.Fatalf("GetPage failed: %v", err)
		}
		if !strings.Contains(page.Blocks[1].HTML, "<strong>bold</strong>") {
			t.Errorf("expected rendered markdown, got %q", page.Blocks[1].HTML)
		}
		if page.Blocks[0].HTML != "" {
			t.Errorf("header blocks should not carry html, got %q", page.Blocks[0].HTML)
		}
	})
}

func TestPageService_UpdatePage(t *testing.T) {
	ctx := context.Background()

	t.Run("publication date before the creation date is rejected", func(t *testing.T) {
		svc, repo, _ := newTestService()
		created, err := svc.CreatePage(ctx, alice, draftInput("alice"))
		if err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}
		repo.updateCalled = false

		input := draftInput("alice")
		input.PublicationDate = data.DateOf(time.Now().AddDate(0, 0, -1))
		_, err = svc.UpdatePage(ctx, alice, created.ID, input)

		var verr validator.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected a ValidationError, got %v", err)
		}
		if _, ok := verr.Errors["publicationDate"]; !ok {
			t.Errorf("expected a publicationDate violation, got %v", verr.Errors)
		}
		if repo.updateCalled {
			t.Error("repository was called despite the validation failure")
		}
	})

	t.Run("non-author cannot update", func(t *testing.T) {
		svc, _, _ := newTestService()
		created, _ := svc.CreatePage(ctx, alice, draftInput("alice"))

		if _, err := svc.UpdatePage(ctx, bob, created.ID, draftInput("alice")); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("missing page takes priority over privilege", func(t *testing.T) {
		svc, _, _ := newTestService()
		if _, err := svc.UpdatePage(ctx, bob, 42, draftInput("alice")); !errors.Is(err, data.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("only admin may reassign the author", func(t *testing.T) {
		svc, _, _ := newTestService()
		created, _ := svc.CreatePage(ctx, alice, draftInput("alice"))

		if _, err := svc.UpdatePage(ctx, alice, created.ID, draftInput("bob")); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden on self-serve reassignment, got %v", err)
		}

		page, err := svc.UpdatePage(ctx, root, created.ID, draftInput("bob"))
		if err != nil {
			t.Fatalf("admin reassignment failed: %v", err)
		}
		if page.Author.Username != "bob" {
			t.Errorf("expected author bob, got %q", page.Author.Username)
		}
	})

	t.Run("creation date survives updates", func(t *testing.T) {
		svc, repo, _ := newTestService()
		created, _ := svc.CreatePage(ctx, alice, draftInput("alice"))

		if _, err := svc.UpdatePage(ctx, alice, created.ID, draftInput("alice")); err != nil {
			t.Fatalf("UpdatePage failed: %v", err)
		}
		if !repo.lastMeta.CreationDate.Equal(created.CreationDate) {
			t.Errorf("creation date changed from %s to %s", created.CreationDate, repo.lastMeta.CreationDate)
		}
	})
}

func TestPageService_DeletePage(t *testing.T) {
	ctx := context.Background()

	t.Run("non-author non-admin is forbidden", func(t *testing.T) {
		svc, repo, _ := newTestService()
		created, _ := svc.CreatePage(ctx, alice, draftInput("alice"))
		repo.deleteCalled = false

		if err := svc.DeletePage(ctx, bob, created.ID); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if repo.deleteCalled {
			t.Error("repository was called despite the authorization failure")
		}
	})

	t.Run("admin may delete any page", func(t *testing.T) {
		svc, _, _ := newTestService()
		created, _ := svc.CreatePage(ctx, alice, draftInput("alice"))

		if err := svc.DeletePage(ctx, root, created.ID); err != nil {
			t.Fatalf("DeletePage failed: %v", err)
		}
		if _, err := svc.GetPage(ctx, created.ID, root); !errors.Is(err, data.ErrNotFound) {
			t.Errorf("expected the page to be gone, got %v", err)
		}
	})

	t.Run("missing page is not found", func(t *testing.T) {
		svc, _, _ := newTestService()
		if err := svc.DeletePage(ctx, root, 42); !errors.Is(err, data.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
