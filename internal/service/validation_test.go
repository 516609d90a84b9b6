//go:build unit

package service

import (
	"testing"
	"time"

	"go-cms-app/internal/data"
	"go-cms-app/internal/validator"
)

func validPageBlocks() []data.Block {
	return []data.Block{
		{Type: data.BlockHeader, Content: "H", Position: 1},
		{Type: data.BlockParagraph, Content: "P", Position: 2},
	}
}

// runValidation is a small harness returning the violated fields.
func runValidation(title string, pub, created data.Date, blocks []data.Block) map[string]string {
	v := validator.New()
	validatePage(v, title, pub, created, blocks)
	return v.Errors
}

func TestValidatePage(t *testing.T) {
	today := data.Today()

	t.Run("valid page passes", func(t *testing.T) {
		errs := runValidation("T", data.Date{}, today, validPageBlocks())
		if len(errs) != 0 {
			t.Errorf("expected no violations, got %v", errs)
		}
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		errs := runValidation("   ", data.Date{}, today, validPageBlocks())
		if _, ok := errs["title"]; !ok {
			t.Errorf("expected a title violation, got %v", errs)
		}
	})

	t.Run("single block is rejected", func(t *testing.T) {
		blocks := []data.Block{{Type: data.BlockHeader, Content: "H", Position: 1}}
		errs := runValidation("T", data.Date{}, today, blocks)
		if _, ok := errs["blocks"]; !ok {
			t.Errorf("expected a block-count violation, got %v", errs)
		}
	})

	t.Run("missing header block is rejected", func(t *testing.T) {
		blocks := []data.Block{
			{Type: data.BlockParagraph, Content: "P", Position: 1},
			{Type: data.BlockImage, Content: "cat.jpeg", Position: 2},
		}
		errs := runValidation("T", data.Date{}, today, blocks)
		if _, ok := errs["header"]; !ok {
			t.Errorf("expected a header violation, got %v", errs)
		}
	})

	t.Run("missing paragraph or image block is rejected", func(t *testing.T) {
		blocks := []data.Block{
			{Type: data.BlockHeader, Content: "H1", Position: 1},
			{Type: data.BlockHeader, Content: "H2", Position: 2},
		}
		errs := runValidation("T", data.Date{}, today, blocks)
		if _, ok := errs["body"]; !ok {
			t.Errorf("expected a body violation, got %v", errs)
		}
	})

	t.Run("empty text block content is rejected", func(t *testing.T) {
		blocks := []data.Block{
			{Type: data.BlockHeader, Content: "H", Position: 1},
			{Type: data.BlockParagraph, Content: "", Position: 2},
		}
		errs := runValidation("T", data.Date{}, today, blocks)
		if _, ok := errs["blocks[2].content"]; !ok {
			t.Errorf("expected a content violation, got %v", errs)
		}
	})

	t.Run("empty image content is allowed once selected fields are set", func(t *testing.T) {
		blocks := []data.Block{
			{Type: data.BlockHeader, Content: "H", Position: 1},
			{Type: data.BlockImage, Content: "cat.jpeg", Position: 2},
		}
		errs := runValidation("T", data.Date{}, today, blocks)
		if len(errs) != 0 {
			t.Errorf("expected no violations, got %v", errs)
		}
	})

	t.Run("unknown block type is rejected", func(t *testing.T) {
		blocks := []data.Block{
			{Type: data.BlockHeader, Content: "H", Position: 1},
			{Type: "video", Content: "clip.mp4", Position: 2},
		}
		errs := runValidation("T", data.Date{}, today, blocks)
		if _, ok := errs["blocks"]; !ok {
			t.Errorf("expected an unknown-type violation, got %v", errs)
		}
	})

	t.Run("publication before creation is rejected", func(t *testing.T) {
		yesterday := data.DateOf(time.Now().AddDate(0, 0, -1))
		errs := runValidation("T", yesterday, today, validPageBlocks())
		if _, ok := errs["publicationDate"]; !ok {
			t.Errorf("expected a publicationDate violation, got %v", errs)
		}
	})

	t.Run("publication on the creation date is allowed", func(t *testing.T) {
		errs := runValidation("T", today, today, validPageBlocks())
		if len(errs) != 0 {
			t.Errorf("expected no violations, got %v", errs)
		}
	})

	t.Run("non-contiguous positions are rejected", func(t *testing.T) {
		blocks := []data.Block{
			{Type: data.BlockHeader, Content: "H", Position: 1},
			{Type: data.BlockParagraph, Content: "P", Position: 3},
		}
		errs := runValidation("T", data.Date{}, today, blocks)
		if _, ok := errs["positions"]; !ok {
			t.Errorf("expected a positions violation, got %v", errs)
		}
	})

	t.Run("all violations are reported together", func(t *testing.T) {
		yesterday := data.DateOf(time.Now().AddDate(0, 0, -1))
		blocks := []data.Block{{Type: data.BlockParagraph, Content: "", Position: 1}}
		errs := runValidation("", yesterday, today, blocks)

		for _, field := range []string{"title", "publicationDate", "blocks", "header", "blocks[1].content"} {
			if _, ok := errs[field]; !ok {
				t.Errorf("expected a violation for %q, got %v", field, errs)
			}
		}
	})
}
