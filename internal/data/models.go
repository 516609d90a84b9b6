package data

// BlockType identifies the kind of content a block holds.
type BlockType string

const (
	BlockHeader    BlockType = "header"
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
)

// KnownBlockType reports whether t is one of the three supported block types.
func KnownBlockType(t BlockType) bool {
	return t == BlockHeader || t == BlockParagraph || t == BlockImage
}

// Status is the derived publication state of a page. It is computed from the
// publication date on every read and never stored.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusProgrammed Status = "programmed"
	StatusPublished  Status = "published"
)

// ResolveStatus derives the publication status of a page from its publication
// date. An absent date means the page is a draft; a date on or before today
// means it is published; a future date means publication is programmed.
func ResolveStatus(publicationDate, today Date) Status {
	switch {
	case publicationDate.IsZero():
		return StatusDraft
	case publicationDate.After(today):
		return StatusProgrammed
	default:
		return StatusPublished
	}
}

// Author is the user credited for a page.
type Author struct {
	Name     string `json:"name" db:"author_name"`
	Username string `json:"username" db:"author_username"`
}

// Block is a typed, positioned content unit within a page. Within one page,
// positions always form a contiguous 1..N sequence. For header and paragraph
// blocks Content is text; for image blocks it is a bare image filename.
type Block struct {
	ID      int64     `json:"id" db:"id"`
	Type    BlockType `json:"type" db:"type"`
	Content string    `json:"content" db:"content"`
	// HTML carries the rendered markdown of a paragraph block. It is
	// populated on read and never stored.
	HTML     string `json:"html,omitempty" db:"-"`
	Position int    `json:"position" db:"position"`
}

// Page is the page aggregate: metadata plus an ordered block list. Status is
// a view over PublicationDate, not state.
type Page struct {
	ID              int64   `json:"id" db:"id"`
	Title           string  `json:"title" db:"title"`
	Author          Author  `json:"author" db:"author"`
	CreationDate    Date    `json:"creationDate" db:"creation_date"`
	PublicationDate Date    `json:"publicationDate" db:"publication_date"`
	Status          Status  `json:"status" db:"-"`
	Blocks          []Block `json:"blocks,omitempty" db:"-"`
}

// Role is the privilege level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account that can author pages. The credential columns
// never leave the data layer.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"fullname"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	Role     Role   `json:"role" db:"role"`
}

// AppConfig is the single row of application-wide settings.
type AppConfig struct {
	AppName string `json:"appName" db:"app_name"`
}
