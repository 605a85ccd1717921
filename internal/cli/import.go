package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fontgarden/fontgarden/pkg/garden"
	"github.com/fontgarden/fontgarden/pkg/ufo"
)

func newImportCmd() *cobra.Command {
	var (
		glyphFiles []string
		sets       []string
		sourceName string
		planPath   string
	)

	cmd := &cobra.Command{
		Use:   "import GARDEN FONT...",
		Short: "Import glyphs from UFO fonts into a fontgarden",
		Long: `Import glyphs from one or more UFO fonts into a fontgarden.

Each --glyphs-file pairs with a --set in order of appearance: the listed
glyphs (plus the components they reference) land in that set, except for
glyphs a previous import already placed elsewhere, which stay where they
are. Larger imports can be described once in a TOML plan file instead.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			gardenPath, fontPaths := args[0], args[1:]

			var batches []importBatch
			var plan *importPlan
			switch {
			case planPath != "":
				if len(glyphFiles) > 0 || len(sets) > 0 {
					return fmt.Errorf("--plan cannot be combined with --glyphs-file/--set")
				}
				var err error
				if plan, batches, err = loadPlan(planPath); err != nil {
					return err
				}
			case len(glyphFiles) != len(sets):
				return fmt.Errorf("each --glyphs-file needs a matching --set (got %d and %d)", len(glyphFiles), len(sets))
			case len(glyphFiles) == 0:
				return fmt.Errorf("nothing to import: pass --glyphs-file/--set pairs or --plan")
			default:
				for i, file := range glyphFiles {
					glyphs, err := readGlyphList(file)
					if err != nil {
						return err
					}
					batches = append(batches, importBatch{set: sets[i], glyphs: glyphs})
				}
			}

			fg, err := garden.Load(gardenPath)
			if err != nil {
				return err
			}
			p := newProgress(logger)

			for _, fontPath := range fontPaths {
				font, err := ufo.LoadFont(fontPath)
				if err != nil {
					return err
				}

				source := sourceName
				if source == "" && plan != nil {
					source = plan.Source
				}
				if source == "" {
					source = font.Info.StyleName
				}
				if source == "" {
					return fmt.Errorf("%s: no style name, pass --source-name", fontPath)
				}

				printInfo("Importing %s as source %q", fontPath, source)
				logger.Debug("importing font", "font", fontPath, "source", source)
				for _, b := range batches {
					if err := fg.Import(font, b.glyphs, b.set, source); err != nil {
						return fmt.Errorf("import into set %q: %w", b.set, err)
					}
					logger.Debug("imported batch", "set", b.set, "glyphs", len(b.glyphs))
				}
			}

			if err := fg.Save(gardenPath); err != nil {
				return err
			}
			p.done("import complete")
			printSuccess("Imported %d font(s) into %s", len(fontPaths), gardenPath)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&glyphFiles, "glyphs-file", nil, "file listing glyph names, one per line (repeatable)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "target set for the matching --glyphs-file (repeatable)")
	cmd.Flags().StringVar(&sourceName, "source-name", "", "source to import into (default: the font's style name)")
	cmd.Flags().StringVar(&planPath, "plan", "", "TOML plan file describing the import batches")

	return cmd
}
