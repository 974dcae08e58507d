package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/runner/add"
)

func addNew(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"add", "write"},
		Short:   "Write a new entry",
		Long: `Write a new entry. Fields not given as flags are asked for when
running in a terminal; the mood defaults to 😀.`,
		Example: `
diary new
diary new --title "Pizza night" --mood party --tags "friends, food"
diary new -t "Beach" -c "Sunny all day" --image beach.jpg --favorite
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, "", eo, io, eo.Images)
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry",
		Long: `Load an entry, apply the given flags and save every field back.
Flags that are not given keep their stored value.`,
		Example: `
diary edit 65f1c2 --mood sad
diary edit 65f1c2 --tags "" --remove-image 0
diary edit 65f1c2 --content "First line
Second paragraph"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return io.TakeID(args)
		},
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !eo.Any() {
				return errors.New("nothing to change, see --help for the field flags")
			}
			return runAdd(cmd, io.ID, eo, io, eo.Images)
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addUpload(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "upload <id> <image>...",
		Short: "Attach images to an entry",
		Example: `
diary upload 65f1c2 beach.jpg sunset.png
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("an entry id and at least one image are required")
			}
			return io.TakeID(args[:1])
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return entryCompletions(cmd, args, toComplete)
			}
			return []string{"png", "jpg", "jpeg", "gif", "webp"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, io.ID, nil, io, args[1:])
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, id string, eo *options.EntryOptions, io *options.IDOptions, images []string) error {
	d, err := loadDeps(cmd, global, false)
	if err != nil {
		return err
	}
	if err := d.requireLogin(); err != nil {
		return d.done(err)
	}

	a := add.Add{
		ID:     id,
		ShowID: io.ShowID,
		Images: images,
		Editor: editor.New(d.api, editor.WithLogger(d.log)),
		Out:    cmd.OutOrStdout(),
	}
	if eo != nil {
		a.Apply = eo.Apply
		p := options.NewPrompter(cmd)
		if id == "" && !eo.Any() && p.Interactive() {
			a.Ask = p
		}
	}
	return d.done(a.Do(cmd.Context()))
}
