package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkg-provenance/internal/app"
)

func newInspectDebCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect-deb <path>",
		Short: "Show control fields of a .deb file or every .deb in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspectDeb(cmd.Context(), args[0])
		},
	}
}

func runInspectDeb(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service := newAppService()
	result, err := service.InspectDeb(ctx, app.InspectDebRequest{Path: path})
	if err != nil {
		return err
	}
	fmt.Printf("deb archives: %d\n", len(result.Controls))
	for _, control := range result.Controls {
		fmt.Printf("- %s %s (%s)\n", control.Package, control.Version, control.Architecture)
		if control.Filename != "" {
			fmt.Printf("  file: %s\n", control.Filename)
		}
		if len(control.Depends) > 0 {
			fmt.Printf("  depends: %s\n", strings.Join(control.Depends, ", "))
		}
	}
	return nil
}

func newListLocalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-local",
		Short: "List packages apt reports as installed from local archives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListLocal(cmd.Context())
		},
	}
}

func runListLocal(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service := newAppService()
	result, err := service.ListLocal(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("local installs: %d\n", len(result.Installs))
	for _, install := range result.Installs {
		fmt.Printf("- %s %s (%s)\n", install.Package, install.Version, install.Architecture)
	}
	return nil
}
