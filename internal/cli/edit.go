package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgjson/pkg/json"
)

// getCommand creates the get command.
func (c *CLI) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one top-level field",
		Long: `Print the value of a top-level field. String values are printed as-is; other
values are printed as indented JSON. Exits with status 1 when the field is absent.`,
		Example: `  pkgjson get version
  pkgjson get scripts`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.openDocument()
			if err != nil {
				return err
			}
			raw, err := m.Descriptor().Get(args[0])
			if err != nil {
				return err
			}

			var s string
			if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, raw, "", "  "); err != nil {
				return err
			}
			buf.WriteByte('\n')
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

// setCommand creates the set command.
func (c *CLI) setCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one top-level field and save",
		Long: `Set a top-level field and write the file back. The value is parsed as JSON when
it is valid JSON and stored as a string otherwise, so both of these work:

  pkgjson set description 'A small library'
  pkgjson set engines '{"node": ">=18"}'

Setting a field to null removes it. Fields pkgjson does not know are kept as
given.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			raw, err := valueArg(args[1])
			if err != nil {
				return err
			}

			m, err := c.openDocument()
			if err != nil {
				return err
			}
			if err := m.Descriptor().Set(key, raw); err != nil {
				return err
			}
			if err := m.Write(); err != nil {
				return err
			}

			path, _ := m.Path()
			printSuccess(cmd.OutOrStdout(), "Set %s", StyleHighlight.Render(key))
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// unsetCommand creates the unset command.
func (c *CLI) unsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "unset <key>",
		Short:             "Remove one top-level field and save",
		Long:              `Remove a top-level field and write the file back. name and version cannot be removed.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			m, err := c.openDocument()
			if err != nil {
				return err
			}
			if err := m.Descriptor().Unset(key); err != nil {
				return err
			}
			if err := m.Write(); err != nil {
				return err
			}

			path, _ := m.Path()
			printSuccess(cmd.OutOrStdout(), "Removed %s", StyleHighlight.Render(key))
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// valueArg turns a command-line value into JSON: valid JSON is taken as is,
// anything else becomes a JSON string.
func valueArg(s string) ([]byte, error) {
	if json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}
