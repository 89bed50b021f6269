package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	vcard "github.com/mbideau/vcardtools"
	"go.uber.org/zap"
)

// Run drives the whole pipeline: read every source file, fix/parse/normalize
// each record into a working set, group probable duplicates, and write the
// destination tree. It aborts between files or records if ctx is done; a
// parse failure on one file never prevents the rest from being processed,
// matching the original tool's per-file error boundary (§7).
func Run(ctx context.Context, logger *zap.SugaredLogger, cli cliOptions) error {
	opts := cli.toVCardOptions()
	if len(opts.MatchAttributes) == 0 {
		opts.MatchAttributes = vcard.DefaultOptions().MatchAttributes
	}

	if _, err := os.Stat(cli.Args.Destination); err == nil {
		return fmt.Errorf("%w: %s", vcard.ErrOutputExists, cli.Args.Destination)
	}
	if err := os.MkdirAll(cli.Args.Destination, 0o755); err != nil {
		return err
	}

	ws := vcard.NewWorkingSet()

	for _, path := range cli.Args.Sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Errorw("cannot read source file", "path", path, "error", err)
			continue
		}

		text := string(raw)
		if !opts.NoFixAndConvert {
			text = vcard.Fix(raw, opts)
		}

		records, err := vcard.Parse(text)
		if err != nil {
			logger.Errorw("cannot parse source file", "path", path, "error", err)
			continue
		}
		logger.Infow("read source file", "path", path, "records", len(records))

		for _, r := range records {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			candidates := vcard.CollectCandidateNames(r)
			selected, err := vcard.SelectMostRelevantName(candidates)
			if err != nil {
				logger.Errorw("cannot select a name for record, skipping", "path", path, "error", err)
				continue
			}
			vcard.Normalize(r, selected, opts)
			key := ws.UniqueKey(selected)
			ws.Put(key, r)
		}
	}

	grouper := vcard.NewGrouper(opts)
	groups, groupOrder, ungrouped, err := grouper.Group(ws)
	if err != nil {
		return err
	}
	logger.Infow("grouping complete", "groups", len(groups), "ungrouped", len(ungrouped))

	switch {
	case cli.Merge:
		return writeMerged(ws, groups, groupOrder, ungrouped, cli, opts, logger)
	case cli.Group:
		return writeGrouped(ws, groups, groupOrder, ungrouped, cli, logger)
	default:
		return writeFlat(ws, cli, logger)
	}
}

func writeFlat(ws *vcard.WorkingSet, cli cliOptions, logger *zap.SugaredLogger) error {
	for _, key := range ws.Keys() {
		if err := writeRecordFile(cli.Args.Destination, key, ws.Get(key), cli.VCardExtension); err != nil {
			return err
		}
		logger.Debugw("wrote record", "key", key)
	}
	return nil
}

func writeGrouped(ws *vcard.WorkingSet, groups map[string][]string, groupOrder []string, ungrouped []string, cli cliOptions, logger *zap.SugaredLogger) error {
	for _, groupKey := range groupOrder {
		members := groups[groupKey]
		dir := filepath.Join(cli.Args.Destination, sanitizeFilename(groupKey, ""))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		for _, member := range members {
			if err := writeRecordFile(dir, member, ws.Get(member), cli.VCardExtension); err != nil {
				return err
			}
		}
		logger.Debugw("wrote group", "key", groupKey, "members", len(members))
	}
	for _, key := range ungrouped {
		if err := writeRecordFile(cli.Args.Destination, key, ws.Get(key), cli.VCardExtension); err != nil {
			return err
		}
	}
	return nil
}

func writeMerged(ws *vcard.WorkingSet, groups map[string][]string, groupOrder []string, ungrouped []string, cli cliOptions, opts vcard.Options, logger *zap.SugaredLogger) error {
	for _, groupKey := range groupOrder {
		members := groups[groupKey]
		if len(members) == 0 {
			continue
		}
		base := vcard.NewRecord()
		var all []*vcard.Record
		for _, member := range members {
			all = append(all, ws.Get(member))
		}
		vcard.Merge(base, all...)
		merged, err := vcard.Deduplicate(base, opts)
		if err != nil {
			return err
		}
		if err := writeRecordFile(cli.Args.Destination, groupKey, merged, cli.VCardExtension); err != nil {
			return err
		}
		logger.Debugw("wrote merged group", "key", groupKey, "members", len(members))
	}
	for _, key := range ungrouped {
		if err := writeRecordFile(cli.Args.Destination, key, ws.Get(key), cli.VCardExtension); err != nil {
			return err
		}
	}
	return nil
}

func writeRecordFile(dir, key string, r *vcard.Record, ext string) error {
	path := filepath.Join(dir, sanitizeFilename(key, ext))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", vcard.ErrOutputExists, path)
		}
		return err
	}
	defer f.Close()

	enc := vcard.NewEncoder(f)
	return enc.Encode(r)
}
