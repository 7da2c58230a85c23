package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/froggen/ascii-frog/internal/commands"
	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/spf13/cobra"
)

const (
	listTable = "table"
	listJSON  = "json"
	listIDs   = "ids"

	tablePadding = 2
	tableWrap    = 100
)

func validListFormat(format string) error {
	switch format {
	case listTable, listJSON, listIDs:
		return nil
	}
	return errors.ValidationError("Invalid list format").
		WithDetails(fmt.Sprintf("format: must be one of table, json, ids (got %q)", format))
}

// renderMarkdown draws markdown through glamour, styled only on a terminal
func (a *app) renderMarkdown(out io.Writer, md string) error {
	style := glamour.WithStandardStyle("notty")
	if a.opts.IsTTY() {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(tableWrap))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func markdownTable(title string, headers []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "templates"},
		Short:   "List frog templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validListFormat(format); err != nil {
				return err
			}
			data, err := a.execute(cmd.Context(), commands.CmdListTemplates, nil)
			if err != nil {
				return err
			}
			templates := data.([]models.TemplateSummary)
			out := cmd.OutOrStdout()

			switch format {
			case listJSON:
				return writeJSON(out, templates)
			case listIDs:
				for _, t := range templates {
					fmt.Fprintln(out, t.ID)
				}
				return nil
			}

			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				rows = append(rows, []string{t.ID, t.Name})
			}
			return a.renderMarkdown(out, markdownTable("Templates", []string{"ID", "Name"}, rows))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", listTable, "output format (table, json, ids)")
	return cmd
}

func newSchemesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "schemes",
		Aliases: []string{"color-schemes"},
		Short:   "List color schemes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validListFormat(format); err != nil {
				return err
			}
			data, err := a.execute(cmd.Context(), commands.CmdListSchemes, nil)
			if err != nil {
				return err
			}
			schemes := data.([]models.SchemeSummary)
			out := cmd.OutOrStdout()

			switch format {
			case listJSON:
				return writeJSON(out, schemes)
			case listIDs:
				for _, s := range schemes {
					fmt.Fprintln(out, s.ID)
				}
				return nil
			}

			rows := make([][]string, 0, len(schemes))
			for _, s := range schemes {
				row := []string{s.ID, s.Name}
				for _, role := range models.Roles {
					color := s.Roles[role]
					if color == "" {
						color = "-"
					}
					row = append(row, color)
				}
				rows = append(rows, row)
			}
			headers := []string{"ID", "Name"}
			for _, role := range models.Roles {
				headers = append(headers, strings.ToUpper(string(role[:1]))+string(role[1:]))
			}
			return a.renderMarkdown(out, markdownTable("Color schemes", headers, rows))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", listTable, "output format (table, json, ids)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search templates by id and name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.execute(cmd.Context(), commands.CmdSearch, map[string]interface{}{
				"query": args[0],
				"limit": limit,
			})
			if err != nil {
				return err
			}
			results := data.([]models.SearchResult)
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, results)
			}
			if len(results) == 0 {
				fmt.Fprintf(out, "No templates match %q\n", args[0])
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.ID, r.Name, strconv.Itoa(r.Score)})
			}
			return writeTable(out, []string{"ID", "NAME", "SCORE"}, rows)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
