// Package add provides the runner logic for creating and editing entries.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

// Asker reads free text and a mood from the user.
type Asker interface {
	Ask(label string) (string, error)
	PickMood(label string, def entry.Mood) (entry.Mood, error)
}

// Add saves one entry. With an ID the stored entry is loaded first and only
// the applied fields change; without one a draft is created.
type Add struct {
	ID     string
	ShowID bool

	// Apply copies user input onto the form before images are uploaded.
	Apply  func(*editor.Form) error
	Images []string
	// Ask fills in a draft's missing fields when set.
	Ask Asker

	Editor *editor.Editor
	Out    io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Editor == nil {
		return errors.New("can not save, no editor")
	}

	if n.ID == "" {
		n.Editor.NewDraft()
	} else if err := n.Editor.Load(ctx, n.ID); err != nil {
		return err
	}
	form := n.Editor.Form()

	if n.Apply != nil {
		if err := n.Apply(form); err != nil {
			return err
		}
	}
	if form.IsDraft() && n.Ask != nil {
		if err := n.prompt(form); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	if len(n.Images) > 0 {
		var failed error
		for _, r := range n.Editor.Upload(ctx, n.Images...) {
			if r.Err != nil {
				failed = errors.Join(failed, fmt.Errorf("upload %s: %w", r.File, r.Err))
				continue
			}
			pp.Notice(fmt.Sprintf("Uploaded %s", r.File))
		}
		if failed != nil {
			return failed
		}
	}

	saved, err := n.Editor.Submit(ctx)
	if err != nil {
		return err
	}

	pp.NewLine()
	if n.ID == "" {
		pp.Title("Created")
	} else {
		pp.Title("Saved")
	}
	pp.Detail(&saved)
	return nil
}

func (n *Add) prompt(form *editor.Form) error {
	if form.Title == "" {
		t, err := n.Ask.Ask("Title")
		if err != nil {
			return err
		}
		form.Title = t
	}
	if form.Content == "" {
		c, err := n.Ask.Ask("Text")
		if err != nil {
			return err
		}
		form.SetPlainContent(c)
	}
	if form.Mood == entry.DefaultMood {
		mood, err := n.Ask.PickMood("Mood", entry.DefaultMood)
		if err != nil {
			return err
		}
		if !mood.Valid() {
			return apperr.Validation(fmt.Errorf("unknown mood %q", mood))
		}
		form.Mood = mood
	}
	return nil
}
