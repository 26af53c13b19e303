package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/create-webapp/internal/manifest"
)

func (a *app) filesCmd() *cobra.Command {
	var foldersOnly bool

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the files a new project contains",
		Long: `List every folder and file of a generated project.

Each file is shown with the source that produces it: "bundled" files are
copied verbatim from a template (embedded, --templates-dir, or --templates-s3),
"synthetic" files are rendered with the project name.

The command fails if any file has no template, so it can be used to check a
custom templates directory or bucket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			for _, dir := range manifest.Folders {
				fmt.Fprintf(a.stdout, "%-10s %s/\n", "folder", dir)
			}
			if foldersOnly {
				return nil
			}

			resolver, err := a.newResolver(cfg)
			if err != nil {
				return err
			}
			for _, entry := range manifest.Files {
				src, origin, err := resolver.Lookup(cmd.Context(), entry)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%-10s %-32s %s\n", src, entry, origin)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&foldersOnly, "folders", false, "List only folders")

	return cmd
}
