//go:build unix

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/backup"
	"github.com/opsbox/opsbox/internal/execx"
)

var (
	backupArchive string
	backupSources []string
	backupIndexDB string
)

var backupCmd = &cobra.Command{
	Use:     "backup",
	Aliases: []string{"bu"},
	Short:   "Archive system directories into a tarball",
	RunE:    runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVarP(&backupArchive, "archive", "a", "/var/backups/opsbox.tgz",
		"path of the tarball to write")
	backupCmd.Flags().StringSliceVarP(&backupSources, "paths", "p", backup.DefaultSources,
		"source directories to back up")
	backupCmd.Flags().StringVar(&backupIndexDB, "index-db", "",
		"record the backup in this sqlite catalog")
}

func runBackup(cmd *cobra.Command, _ []string) error {
	runner := execx.NewRunner(logger.Logger)

	manifest, err := backup.Run(cmd.Context(), runner, backupArchive, backupSources)
	if err != nil {
		return err
	}

	manifestPath := strings.TrimSuffix(backupArchive, ".tgz") + ".manifest.json"
	if err := backup.WriteManifest(manifestPath, manifest); err != nil {
		return err
	}

	if backupIndexDB != "" {
		index, err := backup.OpenIndex(backupIndexDB)
		if err != nil {
			return err
		}
		defer index.Close()
		if err := index.Record(manifest); err != nil {
			return err
		}
	}

	fmt.Printf("Archived %d paths into %s (%d bytes)\n",
		len(manifest.Sources), manifest.Archive, manifest.SizeBytes)
	return nil
}
