package cli

import (
	"fmt"
	maps "golang.org/x/exp/maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fontgarden/fontgarden/pkg/garden"
)

func newExportCmd() *cobra.Command {
	var (
		setNames    []string
		glyphFile   string
		sourceNames []string
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "export GARDEN",
		Short: "Export glyphs from a fontgarden into UFO fonts",
		Long: `Export glyphs from a fontgarden into one UFO font per source.

The glyphs to export come either from --set (everything the named sets
cover) or from a --glyphs-file; the selection is then grown to include
every component the selected glyphs reference. Sources that end up with
no glyphs at all are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			gardenPath := args[0]

			if (len(setNames) > 0) == (glyphFile != "") {
				return fmt.Errorf("pass exactly one of --set and --glyphs-file")
			}

			fg, err := garden.Load(gardenPath)
			if err != nil {
				return err
			}

			glyphs := make(map[string]bool)
			if glyphFile != "" {
				if glyphs, err = readGlyphList(glyphFile); err != nil {
					return err
				}
			} else {
				for _, name := range setNames {
					set, ok := fg.Sets[name]
					if !ok {
						return fmt.Errorf("no set named %q in %s", name, gardenPath)
					}
					for glyph := range set.Coverage() {
						glyphs[glyph] = true
					}
				}
			}

			var sources map[string]bool
			if len(sourceNames) > 0 {
				sources = make(map[string]bool, len(sourceNames))
				for _, name := range sourceNames {
					sources[name] = true
				}
			}

			fonts, err := fg.Export(glyphs, sources)
			if err != nil {
				return err
			}
			if len(fonts) == 0 {
				return fmt.Errorf("no glyphs matched the selection")
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			p := newProgress(logger)
			sortedKeys := maps.Keys(fonts)
			slices.Sort(sortedKeys)
			for _, name := range sortedKeys {
				path := filepath.Join(outputDir, name+".ufo")
				logger.Info("writing font", "source", name, "path", path)
				if err := fonts[name].Save(path); err != nil {
					return err
				}
				printDetail("%s", path)
			}
			p.done("export complete")
			printSuccess("Exported %d font(s) to %s", len(fonts), outputDir)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&setNames, "set", nil, "export everything the named set covers (repeatable)")
	cmd.Flags().StringVar(&glyphFile, "glyphs-file", "", "file listing glyph names to export, one per line")
	cmd.Flags().StringArrayVar(&sourceNames, "source-name", nil, "restrict the export to these sources (default: all)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory to write the UFO fonts into")

	return cmd
}
