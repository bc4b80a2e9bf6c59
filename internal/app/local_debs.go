package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pkg-provenance/internal/types"
)

// LocalDebs indexes the .deb archives in the configured folders by package
// name and joins them with the packages apt lists as installed locally.
// Folders are scanned in order; a later archive for the same package
// replaces an earlier one.
func (s Service) LocalDebs(ctx context.Context, req LocalDebsRequest) (LocalDebsResult, error) {
	folders := req.Folders
	if len(folders) == 0 {
		folders = s.DebFolders
	}
	folders = nonBlank(folders)
	if len(folders) == 0 {
		return LocalDebsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no deb folders configured")
	}
	if s.Debs == nil || s.Installed == nil {
		return LocalDebsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("local debs requires a deb inspector and an installed list provider")
	}

	index := map[string]types.DebControl{}
	for _, folder := range folders {
		controls, err := s.Debs.ScanDir(ctx, folder)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return LocalDebsResult{}, ctxErr
			}
			log.Warn().
				Str("dir", folder).
				Err(err).
				Msg("skipping deb folder")
			continue
		}
		for _, control := range controls {
			index[control.Package] = control
		}
	}
	log.Debug().Int("folders", len(folders)).Int("debs", len(index)).Msg("local debs indexed")

	installs, err := s.Installed.LocalInstalls(ctx)
	if err != nil {
		return LocalDebsResult{}, err
	}
	installed := make(map[string]struct{}, len(installs))
	matches := make([]LocalDebMatch, 0, len(installs))
	for _, install := range installs {
		installed[install.Package] = struct{}{}
		match := LocalDebMatch{Install: install}
		if control, ok := index[install.Package]; ok {
			match.Deb = &control
		}
		matches = append(matches, match)
	}

	unknown, err := s.unknownDebs(ctx, index, installed)
	if err != nil {
		return LocalDebsResult{}, err
	}
	return LocalDebsResult{Matches: matches, Unknown: unknown, Index: index}, nil
}

// unknownDebs returns indexed archives for packages apt-cache has no record
// of. An Unavailable report (no output for the name) marks a package as
// unknown; other provider failures are logged and the archive is left out.
func (s Service) unknownDebs(ctx context.Context, index map[string]types.DebControl, installed map[string]struct{}) ([]types.DebControl, error) {
	names := make([]string, 0, len(index))
	for name := range index {
		if _, ok := installed[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) > 0 && s.Reports == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("local debs requires a policy report provider")
	}

	unknown := []types.DebControl{}
	for _, name := range names {
		_, err := s.Reports.Report(ctx, name)
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errbuilder.CodeOf(err) == errbuilder.CodeUnavailable {
			unknown = append(unknown, index[name])
			continue
		}
		log.Warn().
			Str("package", name).
			Err(err).
			Msg("policy report unavailable")
	}
	return unknown, nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
