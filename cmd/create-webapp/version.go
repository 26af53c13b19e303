package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vango-dev/create-webapp/internal/manifest"
	"github.com/vango-dev/create-webapp/internal/templates"
)

func (a *app) versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the build of create-webapp and the project template it generates.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(a.stdout, version)
				return nil
			}

			assets, err := templates.EmbeddedNames()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "create-webapp %s (%s, built %s)\n", version, commit, date)
			fmt.Fprintf(a.stdout, "  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(a.stdout, "  Template: %d folders, %d files (%d bundled, %d generated)\n",
				len(manifest.Folders), len(manifest.Files), len(assets), len(templates.Generators()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
