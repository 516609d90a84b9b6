package service

import (
	"fmt"

	"go-cms-app/internal/data"
	"go-cms-app/internal/validator"
)

// validatePage runs every page rule and reports all violations together.
// creationDate is today's date on create and the page's stored original on
// update; the publication date may never precede it.
func validatePage(v *validator.Validator, title string, publicationDate, creationDate data.Date, blocks []data.Block) {
	v.Check(validator.NotBlank(title), "title", "cannot be empty")

	if !publicationDate.IsZero() && publicationDate.Before(creationDate) {
		v.AddError("publicationDate", "cannot be before the creation date")
	}

	v.Check(len(blocks) >= 2, "blocks", "page must have at least two blocks")

	hasHeader := false
	hasBody := false
	for _, b := range blocks {
		switch b.Type {
		case data.BlockHeader:
			hasHeader = true
		case data.BlockParagraph, data.BlockImage:
			hasBody = true
		default:
			v.AddError("blocks", fmt.Sprintf("unknown block type %q", b.Type))
		}
		if b.Type != data.BlockImage && !validator.NotBlank(b.Content) {
			v.AddError(fmt.Sprintf("blocks[%d].content", b.Position), "cannot be empty")
		}
		if b.Position < 1 {
			v.AddError("positions", "block positions must be positive integers")
		}
	}
	v.Check(hasHeader, "header", "page must have at least one header block")
	v.Check(hasBody, "body", "page must have at least one paragraph or image block")

	if !CheckPositions(blocks) {
		v.AddError("positions", "block positions must form a contiguous sequence starting at 1")
	}
}
