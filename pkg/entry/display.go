package entry

import (
	"fmt"
	"strings"
)

// PreviewLimit is how many tags or images a card shows before "+N".
const PreviewLimit = 3

// DateLabel renders the card date, e.g. "Mar 4, 2025".
func (e *Entry) DateLabel() string {
	if e.CreatedAt.IsZero() {
		return ""
	}
	return e.CreatedAt.Local().Format(CardDateLayout)
}

// TagPreview renders at most PreviewLimit tags as "#name" followed by a "+N"
// overflow marker.
func (e *Entry) TagPreview() string {
	if len(e.Tags) == 0 {
		return ""
	}
	parts := make([]string, 0, PreviewLimit+1)
	for i, t := range e.Tags {
		if i == PreviewLimit {
			parts = append(parts, fmt.Sprintf("+%d", len(e.Tags)-PreviewLimit))
			break
		}
		parts = append(parts, "#"+t.Name)
	}
	return strings.Join(parts, " ")
}

// ImagePreview returns the first PreviewLimit image URLs and the number hidden.
func (e *Entry) ImagePreview() ([]string, int) {
	if len(e.Images) <= PreviewLimit {
		return e.Images, 0
	}
	return e.Images[:PreviewLimit], len(e.Images) - PreviewLimit
}
