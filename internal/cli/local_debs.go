package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pkg-provenance/internal/app"
)

type localDebsOptions struct {
	Folders []string
}

func newLocalDebsCommand() *cobra.Command {
	opts := localDebsOptions{}
	cmd := &cobra.Command{
		Use:   "local-debs",
		Short: "Match locally installed packages with .deb files in the deb folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocalDebs(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Folders, "deb-folders", nil, "Folders holding local .deb files, scanned in order")
	_ = viper.BindPFlag("deb_folders", cmd.Flags().Lookup("deb-folders"))
	return cmd
}

func runLocalDebs(ctx context.Context, cmd *cobra.Command, opts localDebsOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service := newAppService()
	result, err := service.LocalDebs(ctx, app.LocalDebsRequest{
		Folders: resolveStrings(cmd, opts.Folders, "deb_folders", "deb-folders"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("local installs: %d\n", len(result.Matches))
	for _, match := range result.Matches {
		install := match.Install
		if match.Deb == nil {
			fmt.Printf("- %s %s (%s): no local .deb\n", install.Package, install.Version, install.Architecture)
			continue
		}
		fmt.Printf("- %s %s (%s): %s %s\n", install.Package, install.Version, install.Architecture, match.Deb.Version, match.Deb.Filename)
	}
	fmt.Printf("unknown to apt: %d\n", len(result.Unknown))
	for _, control := range result.Unknown {
		fmt.Printf("- %s %s %s\n", control.Package, control.Version, control.Filename)
	}
	return nil
}
