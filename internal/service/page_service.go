package service

import (
	"context"
	"errors"

	"github.com/microcosm-cc/bluemonday"

	"go-cms-app/internal/data"
	"go-cms-app/internal/markdown"
	"go-cms-app/internal/validator"
)

var (
	// ErrForbidden means the caller is authenticated but lacks the
	// privilege for the operation.
	ErrForbidden = errors.New("insufficient privileges to complete the requested operation")
	// ErrNotAuthenticated means the operation requires an identity the
	// caller did not present.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Actor is the identity performing an operation. The zero value is the
// anonymous caller.
type Actor struct {
	ID       int64
	Username string
	Role     data.Role
}

// Anonymous reports whether no identity was presented.
func (a Actor) Anonymous() bool {
	return a.ID == 0
}

// Admin reports whether the actor holds the admin role.
func (a Actor) Admin() bool {
	return a.Role == data.RoleAdmin
}

// PageRepository defines the persistence gateway for pages and their blocks.
type PageRepository interface {
	ListAllPages(ctx context.Context) ([]data.Page, error)
	ListPublishedPages(ctx context.Context) ([]data.Page, error)
	GetPageWithBlocks(ctx context.Context, id int64) (*data.Page, error)
	CreatePageWithBlocks(ctx context.Context, meta data.PageMeta, blocks []data.Block) (int64, error)
	UpdatePageWithBlocks(ctx context.Context, id int64, meta data.PageMeta, blocks []data.Block) error
	DeletePage(ctx context.Context, id int64) error
}

// UserRepository defines the user lookups the page service needs.
type UserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*data.User, error)
	GetUserByUsername(ctx context.Context, username string) (*data.User, error)
}

// PageInput is the payload of a page create or update.
type PageInput struct {
	Title           string       `json:"title"`
	AuthorUsername  string       `json:"authorUsername"`
	PublicationDate data.Date    `json:"publicationDate"`
	Blocks          []data.Block `json:"blocks"`
}

// PageService implements the page composition operations: listing, reading
// with status gating, and validated, authorized create/update/delete.
type PageService struct {
	pages     PageRepository
	users     UserRepository
	sanitizer *bluemonday.Policy
	renderer  *markdown.Renderer
}

// NewPageService creates a new PageService with the given repositories.
func NewPageService(pages PageRepository, users UserRepository) *PageService {
	return &PageService{
		pages: pages,
		users: users,
		// UGCPolicy strips dangerous HTML from user-supplied titles and
		// block content while keeping basic formatting.
		sanitizer: bluemonday.UGCPolicy(),
		renderer:  markdown.NewRenderer(),
	}
}

// ListPages returns every page for the back office, status resolved at read
// time.
func (s *PageService) ListPages(ctx context.Context) ([]data.Page, error) {
	return s.pages.ListAllPages(ctx)
}

// ListPublishedPages returns only published pages, for the anonymous front
// office.
func (s *PageService) ListPublishedPages(ctx context.Context) ([]data.Page, error) {
	return s.pages.ListPublishedPages(ctx)
}

// GetPage returns a page with its ordered blocks. Pages that are not yet
// published are only visible to authenticated callers: anonymous access to a
// draft or programmed page fails as not authenticated, so unpublished content
// never leaks to the front office.
func (s *PageService) GetPage(ctx context.Context, id int64, actor Actor) (*data.Page, error) {
	page, err := s.pages.GetPageWithBlocks(ctx, id)
	if err != nil {
		return nil, err
	}
	if page.Status != data.StatusPublished && actor.Anonymous() {
		return nil, ErrNotAuthenticated
	}
	s.renderBlocks(page)
	return page, nil
}

// CreatePage validates and persists a new page with its blocks. The acting
// identity must be the named author or hold the admin role. The creation
// date is set to today and is immutable afterwards.
func (s *PageService) CreatePage(ctx context.Context, actor Actor, input PageInput) (*data.Page, error) {
	author, err := s.users.GetUserByUsername(ctx, input.AuthorUsername)
	if err != nil {
		return nil, err
	}
	if author.ID != actor.ID && !actor.Admin() {
		return nil, ErrForbidden
	}

	creationDate := data.Today()
	blocks, err := s.prepare(input, creationDate)
	if err != nil {
		return nil, err
	}

	meta := data.PageMeta{
		Title:           s.sanitizer.Sanitize(input.Title),
		AuthorID:        author.ID,
		CreationDate:    creationDate,
		PublicationDate: input.PublicationDate,
	}
	id, err := s.pages.CreatePageWithBlocks(ctx, meta, blocks)
	if err != nil {
		return nil, err
	}
	return s.GetPage(ctx, id, actor)
}

// UpdatePage validates and persists changes to an existing page, replacing
// its whole block list. Existence is checked before privilege. The page's
// current author or an admin may update; only an admin may hand the page to
// a different author. The stored creation date is kept and bounds the new
// publication date.
func (s *PageService) UpdatePage(ctx context.Context, actor Actor, id int64, input PageInput) (*data.Page, error) {
	existing, err := s.pages.GetPageWithBlocks(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() {
		if existing.Author.Username != actor.Username {
			return nil, ErrForbidden
		}
		if input.AuthorUsername != existing.Author.Username {
			// Reassigning authorship is an admin-only operation.
			return nil, ErrForbidden
		}
	}
	author, err := s.users.GetUserByUsername(ctx, input.AuthorUsername)
	if err != nil {
		return nil, err
	}

	blocks, err := s.prepare(input, existing.CreationDate)
	if err != nil {
		return nil, err
	}

	meta := data.PageMeta{
		Title:           s.sanitizer.Sanitize(input.Title),
		AuthorID:        author.ID,
		CreationDate:    existing.CreationDate,
		PublicationDate: input.PublicationDate,
	}
	if err := s.pages.UpdatePageWithBlocks(ctx, id, meta, blocks); err != nil {
		return nil, err
	}
	return s.GetPage(ctx, id, actor)
}

// DeletePage removes a page and all of its blocks. Existence is checked
// before privilege; only the page's current author or an admin may delete.
func (s *PageService) DeletePage(ctx context.Context, actor Actor, id int64) error {
	existing, err := s.pages.GetPageWithBlocks(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin() && existing.Author.Username != actor.Username {
		return ErrForbidden
	}
	return s.pages.DeletePage(ctx, id)
}

// prepare runs every validation rule against the input, then returns the
// sanitized block list ordered by position. Nothing is persisted when any
// rule fails; all violations are reported together.
func (s *PageService) prepare(input PageInput, creationDate data.Date) ([]data.Block, error) {
	v := validator.New()
	validatePage(v, input.Title, input.PublicationDate, creationDate, input.Blocks)
	if !v.Valid() {
		return nil, v.Err()
	}

	blocks := SortBlocks(input.Blocks)
	for i := range blocks {
		blocks[i].Content = s.sanitizer.Sanitize(blocks[i].Content)
	}
	return blocks, nil
}

// renderBlocks fills the HTML view of paragraph blocks.
func (s *PageService) renderBlocks(page *data.Page) {
	for i := range page.Blocks {
		if page.Blocks[i].Type == data.BlockParagraph {
			page.Blocks[i].HTML = s.renderer.Render(page.Blocks[i].Content)
		}
	}
}
