/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/gntraits/internal/iochunk"
	"github.com/gnames/gntraits/internal/iocypher"
	"github.com/gnames/gntraits/internal/iodump"
	"github.com/gnames/gntraits/pkg/config"
	"github.com/spf13/cobra"
)

// getDumpCmd returns the dump command.
func getDumpCmd() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Extract the trait graph into a tar.gz of CSV tables",
		Long: `Extract every trait bank table from the remote graph endpoint and
package them into a gzipped tarball.

The working directory keeps fetched chunks between runs, so an
interrupted extraction continues from where it stopped instead of
starting over. Remove the working directory to force a full refetch.

Examples:
  # Full dump with default settings
  gntraits dump

  # Restrict pages and traits to mammals, write a custom archive
  gntraits dump --clade 1642 --output mammalia.tgz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args)
		},
	}

	dumpCmd.Flags().IntP("clade", "c", 0,
		"restrict the dump to the subtree of this page ID")
	dumpCmd.Flags().StringP("workdir", "w", "",
		"directory for intermediate chunk files")
	dumpCmd.Flags().StringP("output", "o", "",
		"path of the resulting tar.gz archive")
	dumpCmd.Flags().Int("chunk-size", 0,
		"rows requested per query window")

	return dumpCmd
}

func runDump(
	cmd *cobra.Command,
	_ []string,
) error {
	var flagOpts []config.Option
	if clade, _ := cmd.Flags().GetInt("clade"); clade > 0 {
		flagOpts = append(flagOpts, config.OptDumpClade(clade))
	}
	if workDir, _ := cmd.Flags().GetString("workdir"); workDir != "" {
		flagOpts = append(flagOpts, config.OptDumpWorkDir(workDir))
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		flagOpts = append(flagOpts, config.OptDumpArchive(output))
	}
	if size, _ := cmd.Flags().GetInt("chunk-size"); size > 0 {
		flagOpts = append(flagOpts, config.OptDumpChunkSize(size))
	}
	cfg.Update(flagOpts)

	// default working directory lives in the cache dir
	if cfg.Dump.WorkDir == "" {
		cfg.Update([]config.Option{
			config.OptDumpWorkDir(config.DumpDir(cfg.HomeDir)),
		})
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt,
	)
	defer stop()

	client := iocypher.New(cfg)
	store, err := iochunk.NewStore(cfg.Dump.WorkDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	dumper := iodump.New(cfg, client, store)
	if err = dumper.Dump(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
