// Package link provides the bookmark commands: adding a link, listing every
// saved link and listing the known tags.
// Registers commands: link (with subcommand tags).
package link

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/jpl-au/mystuff/cmd"
	"github.com/jpl-au/mystuff/extension"
	"github.com/jpl-au/mystuff/internal/config"
	"github.com/jpl-au/mystuff/internal/format"
	"github.com/jpl-au/mystuff/internal/log"
	"github.com/jpl-au/mystuff/internal/prompt"
	"github.com/jpl-au/mystuff/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the link extension.
type Extension struct {
	svc *service.Service
	cfg *config.Config
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "link".
func (e *Extension) Name() string { return "link" }

// Init connects to the shared link service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the link command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newLinkCmd()}
}

func (e *Extension) newLinkCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "link",
		Short: "Add or list links",
		Long: `Add a link, or list every saved link when --add is not given.

  mystuff link --add https://go.dev                      # prompts for description and tags
  mystuff link --add https://go.dev -t go -t lang -d "Go" # no prompts
  mystuff link --add https://go.dev --tag go,lang         # comma-separated tags
  mystuff link                                            # list links, sorted by url
  mystuff link -o json                                    # list as JSON

Adding a url that is already saved prints the existing link and changes nothing.`,
		Args: cobra.NoArgs,
		RunE: e.runLink,
	}
	c.Flags().StringP(extension.FlagAdd, "a", "", "Url of the link to add")
	c.Flags().StringArrayP(extension.FlagTag, "t", nil, "Tag for the new link (repeatable, comma-separated values allowed)")
	c.Flags().StringP(extension.FlagDescription, "d", "", "Description for the new link")
	c.Flags().String(extension.FlagRender, "", "List rendering: auto, plain or markdown (default from config)")
	_ = c.RegisterFlagCompletionFunc(extension.FlagRender, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return format.Modes(), cobra.ShellCompDirectiveNoFileComp
	})

	c.AddCommand(e.newTagsCmd())
	return c
}

func (e *Extension) runLink(c *cobra.Command, _ []string) error {
	if !c.Flags().Changed(extension.FlagAdd) {
		return e.list(c)
	}

	u, _ := c.Flags().GetString(extension.FlagAdd)
	values, _ := c.Flags().GetStringArray(extension.FlagTag)
	var tags []string
	for _, v := range values {
		tags = append(tags, prompt.SplitTags(v)...)
	}

	opts := service.AddOptions{
		Tags:     tags,
		Resolver: prompt.New(c.InOrStdin(), c.ErrOrStderr()),
	}
	if c.Flags().Changed(extension.FlagDescription) {
		d, _ := c.Flags().GetString(extension.FlagDescription)
		opts.Description = &d
	}

	return e.add(c.Context(), u, opts)
}

func (e *Extension) add(ctx context.Context, u string, opts service.AddOptions) error {
	l := log.Event("link:add", "add").Author(cmd.Author()).URL(u)

	res, err := e.svc.Add(ctx, u, opts)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("add %q: %w", u, err))
	}

	if res.Added {
		l.Outcome("added")
	} else {
		l.Outcome("exists")
	}
	l.Detail("tags", res.Link.Tags).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	if res.Added {
		fmt.Fprintf(cmd.Out(), "Added %s\n", format.Line(res.Link))
		return nil
	}
	fmt.Fprintf(cmd.Out(), "Link %s already exists\n", res.Link.URL)
	fmt.Fprintln(cmd.Out(), format.Line(res.Link))
	return nil
}

func (e *Extension) list(c *cobra.Command) error {
	mode := e.cfg.Render()
	if c.Flags().Changed(extension.FlagRender) {
		mode, _ = c.Flags().GetString(extension.FlagRender)
		if !slices.Contains(format.Modes(), mode) {
			return cmd.PrintJSONError(fmt.Errorf("invalid --render %q (valid: %v)", mode, format.Modes()))
		}
	}

	links, err := e.svc.List(c.Context())
	log.Event("link:list", "list").Author(cmd.Author()).Detail("count", len(links)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list links: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(links)
	}
	if len(links) == 0 {
		fmt.Fprintln(cmd.Out(), "No links found.")
		return nil
	}
	return format.Render(cmd.Out(), links, mode, isTerminal(cmd.Out()))
}

// --- tags subcommand ---

func (e *Extension) newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Long: `List the distinct tags across all links, lowercased and sorted.

  mystuff link tags
  mystuff link tags -o json`,
		Args: cobra.NoArgs,
		RunE: e.runTags,
	}
}

func (e *Extension) runTags(c *cobra.Command, _ []string) error {
	tags, err := e.svc.Tags(c.Context())
	log.Event("link:tags", "tags").Author(cmd.Author()).Detail("count", len(tags)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list tags: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(tags)
	}
	if len(tags) == 0 {
		fmt.Fprintln(cmd.Out(), "No tags found.")
		return nil
	}
	return format.Tags(cmd.Out(), tags)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
