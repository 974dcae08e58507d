package editor

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
)

// MaxTitle bounds entry titles.
const MaxTitle = 200

// Form is the editable copy of one entry. ID is empty for a draft.
type Form struct {
	ID       string
	Title    string
	Content  string
	Mood     entry.Mood
	Tags     string
	Images   []string
	Favorite bool
}

// FromEntry binds e into a form.
func FromEntry(e entry.Entry) Form {
	return Form{
		ID:       e.ID,
		Title:    e.Title,
		Content:  e.Content,
		Mood:     e.Mood,
		Tags:     strings.Join(e.TagNames(), ", "),
		Images:   append([]string(nil), e.Images...),
		Favorite: e.Favorite,
	}
}

// IsDraft reports whether submitting creates a new entry.
func (f *Form) IsDraft() bool { return f.ID == "" }

// ParseTags splits comma separated tag names, trimming each and dropping
// empty ones. Order is kept.
func ParseTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TagList is the parsed form of Tags.
func (f *Form) TagList() []string { return ParseTags(f.Tags) }

// PlainContent is the content without markup.
func (f *Form) PlainContent() string { return entry.PlainText(f.Content) }

// SetPlainContent replaces the content with escaped paragraphs of text.
func (f *Form) SetPlainContent(text string) { f.Content = entry.Paragraphs(text) }

// ToggleFavorite flips the favorite flag.
func (f *Form) ToggleFavorite() { f.Favorite = !f.Favorite }

// RemoveImage drops the image at i.
func (f *Form) RemoveImage(i int) bool {
	if i < 0 || i >= len(f.Images) {
		return false
	}
	f.Images = append(f.Images[:i:i], f.Images[i+1:]...)
	return true
}

// Validate checks the form before anything is sent.
func (f *Form) Validate() error {
	err := validation.ValidateStruct(f,
		validation.Field(&f.Title,
			validation.By(notBlank("title is required")),
			validation.RuneLength(0, MaxTitle)),
		validation.Field(&f.Mood,
			validation.Required.Error("mood is required"),
			validation.By(knownMood)),
	)
	return apperr.Validation(err)
}

func notBlank(msg string) validation.RuleFunc {
	return func(v any) error {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			return validation.NewError("validation_blank", msg)
		}
		return nil
	}
}

func knownMood(v any) error {
	m, _ := v.(entry.Mood)
	if m == "" || m.Valid() {
		return nil
	}
	return validation.NewError("validation_mood", "unknown mood "+string(m))
}

// Patch is the full replacement sent on submit: every field in the form.
func (f *Form) Patch() gateway.EntryPatch {
	title := strings.TrimSpace(f.Title)
	content := f.Content
	mood := f.Mood
	tags := f.TagList()
	images := append([]string{}, f.Images...)
	fav := f.Favorite
	return gateway.EntryPatch{
		Title:    &title,
		Content:  &content,
		Mood:     &mood,
		Tags:     &tags,
		Images:   &images,
		Favorite: &fav,
	}
}
