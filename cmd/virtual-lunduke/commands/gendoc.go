package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/nexussfan/virtual-lunduke/internal/errors"
	"github.com/nexussfan/virtual-lunduke/internal/paths"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown or man page documentation for the CLI",
	Hidden: true,
	Args:   userArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputDir, _ := cmd.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "pass --dir")
		}
		format, _ := cmd.Flags().GetString("format")

		if err := paths.EnsureDir(outputDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		var err error
		switch format {
		case "markdown":
			err = doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler)
		case "man":
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{
				Title:   "VIRTUAL-LUNDUKE",
				Section: "1",
				Source:  "virtual-lunduke",
			}, outputDir)
		default:
			return errors.NewUserError(errors.Newf("unknown format %q", format), "use --format markdown or --format man")
		}
		if err != nil {
			return errors.Wrapf(err, "generating %s", format)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "Output directory for documentation")
	genDocCmd.Flags().String("format", "markdown", "Output format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// virtual-lunduke_check.md -> virtual-lunduke check
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s command"
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ToLower(base) + ".md"
}
