package cli

import (
	"fmt"

	"github.com/froggen/ascii-frog/internal/commands"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/storage"
	"github.com/spf13/cobra"
)

const formatJSON = "json"

// outputFormat resolves --format. Empty means the configured format on a
// terminal and plain text otherwise; json prints the ANSI render as a JSON object.
func (a *app) outputFormat(flag string) (models.Format, bool) {
	switch flag {
	case "":
		if a.opts.IsTTY() {
			return models.Format(a.cfg.Render.Format), false
		}
		return models.FormatPlain, false
	case formatJSON:
		return models.FormatANSI, true
	default:
		return models.Format(flag), false
	}
}

func (a *app) printRendered(cmd *cobra.Command, data interface{}, asJSON bool) error {
	out, ok := data.(*models.RenderedOutput)
	if !ok {
		return fmt.Errorf("unexpected render result %T", data)
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), out.Text)
	return err
}

func newRenderCmd(a *app) *cobra.Command {
	var scheme, format string

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a frog template",
		Long: "Render a frog template, optionally colorized with a color scheme.\n" +
			"The template defaults to " + storage.DefaultTemplateID + ".",
		Example: "  ascii-frog render classic --scheme tropical\n  ascii-frog render happy --format html",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, asJSON := a.outputFormat(format)
			params := map[string]interface{}{
				"colorScheme": scheme,
				"format":      string(f),
			}
			if len(args) == 1 {
				params["template"] = args[0]
			}

			data, err := a.execute(cmd.Context(), commands.CmdRender, params)
			if err != nil {
				return err
			}
			return a.printRendered(cmd, data, asJSON)
		},
	}

	cmd.Flags().StringVarP(&scheme, "scheme", "s", "", "color scheme id")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (plain, ansi, html, json)")
	return cmd
}

func newRandomCmd(a *app) *cobra.Command {
	var scheme, format string
	var randomScheme bool

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Render a random frog",
		Long:  "Render a randomly chosen template. --scheme colors it; --random-scheme picks the scheme at random too.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, asJSON := a.outputFormat(format)
			data, err := a.execute(cmd.Context(), commands.CmdRandom, map[string]interface{}{
				"colorScheme":  scheme,
				"randomScheme": randomScheme,
				"format":       string(f),
			})
			if err != nil {
				return err
			}
			return a.printRendered(cmd, data, asJSON)
		},
	}

	cmd.Flags().StringVarP(&scheme, "scheme", "s", "", "color scheme id")
	cmd.Flags().BoolVarP(&randomScheme, "random-scheme", "r", false, "pick a random color scheme")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (plain, ansi, html, json)")
	return cmd
}

func newCopyCmd(a *app) *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "copy <template>",
		Short: "Copy a frog to the clipboard",
		Long:  "Render a template and copy it as plain text, followed by its name, to the system clipboard.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := a.execute(ctx, commands.CmdRender, map[string]interface{}{
				"template":    args[0],
				"colorScheme": scheme,
				"format":      string(models.FormatANSI),
			})
			if err != nil {
				return err
			}
			rendered := data.(*models.RenderedOutput)

			data, err = a.execute(ctx, commands.CmdFormatClipboard, map[string]interface{}{
				"ascii":    rendered.Text,
				"frogName": rendered.TemplateName,
				"format":   string(rendered.Format),
			})
			if err != nil {
				return err
			}
			text := data.(commands.ClipboardText).Text

			if err := a.opts.Clipboard.Copy(ctx, text); err != nil {
				return err
			}

			a.logger.Debug().Str("template", rendered.TemplateID).Int("bytes", len(text)).Msg("copied to clipboard")
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to clipboard\n", rendered.TemplateName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scheme, "scheme", "s", "", "color scheme id")
	return cmd
}
