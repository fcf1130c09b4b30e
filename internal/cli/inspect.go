package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojsonlint/internal/ui/pretty"
	"github.com/yaklabco/gojsonlint/pkg/document"
	"github.com/yaklabco/gojsonlint/pkg/jsonast"
	"github.com/yaklabco/gojsonlint/pkg/parser/jsonc"
	"github.com/yaklabco/gojsonlint/pkg/schema"
)

type inspectFlags struct {
	offset     int
	schemaPath string
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the node and applicable schemas at a byte offset",
		Long: `Inspect a position in a JSON or JSONC file: print the deepest node
containing the offset, its path, and the schemas that apply to it.

This is the query editors use to drive hover and completion over schemas.

Examples:
  gojsonlint inspect --offset 42 settings.json
  gojsonlint inspect --offset 42 --schema api.schema.json data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.offset, "offset", 0, "byte offset to inspect")
	cmd.Flags().StringVar(&flags.schemaPath, "schema", "", "schema document to match against")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, flags *inspectFlags) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	doc := document.Parse(path, content, jsonc.Options{CollectComments: true})
	if doc.Root == nil {
		return fmt.Errorf("%s contains no JSON value", path)
	}

	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.ColorEnabled(colorMode, os.Stdout))
	out := &strings.Builder{}

	node := doc.NodeAtOffset(flags.offset, true)
	if node == nil {
		return fmt.Errorf("offset %d is outside the document value", flags.offset)
	}

	pos := doc.PositionAt(node.Start)
	fmt.Fprintf(out, "%s %s at %s (bytes %d-%d)\n",
		styles.Bold.Render(node.Kind.TypeName()),
		describeNode(node),
		styles.Location.Render(fmt.Sprintf("%d:%d", pos.Line, pos.Column)),
		node.Start, node.End)

	if pointer := jsonast.PathOf(node).Pointer(); pointer != "" {
		fmt.Fprintf(out, "  path %s\n", styles.Message.Render(pointer))
	}

	if flags.schemaPath != "" {
		s, err := schema.Load(flags.schemaPath)
		if err != nil {
			return err
		}
		matches := doc.MatchingSchemas(s, flags.offset, nil)
		fmt.Fprintf(out, "\n%s\n", styles.SummaryTitle.Render("Applicable schemas"))
		for _, m := range matches {
			if m.Node != node {
				continue
			}
			label := describeSchema(m.Schema)
			if m.Inverted {
				label = "not " + label
			}
			fmt.Fprintf(out, "  %s\n", styles.Message.Render(label))
			if detail := styles.FormatSchemaDetail(m.Schema.Title, m.Schema.Description); detail != "" {
				fmt.Fprintf(out, "%s\n", detail)
			}
		}
	}

	fmt.Fprint(os.Stdout, out.String())
	return nil
}

// describeNode renders a short value preview for scalar nodes.
func describeNode(n *jsonast.Node) string {
	switch n.Kind {
	case jsonast.NodeString:
		return fmt.Sprintf("%q", n.StringValue)
	case jsonast.NodeNumber:
		return fmt.Sprintf("%v", n.NumberValue)
	case jsonast.NodeBoolean:
		return fmt.Sprintf("%v", n.BoolValue)
	case jsonast.NodeObject:
		return fmt.Sprintf("{%d properties}", len(n.Items))
	case jsonast.NodeArray:
		return fmt.Sprintf("[%d items]", len(n.Items))
	default:
		return ""
	}
}

// describeSchema renders a one-line label for a schema.
func describeSchema(s *schema.Schema) string {
	switch {
	case s.Title != "":
		return s.Title
	case len(s.Type) > 0:
		return "type " + strings.Join(s.Type, "|")
	case s.Const != nil:
		return "const"
	case len(s.Enum) > 0:
		return "enum"
	default:
		return "schema"
	}
}
