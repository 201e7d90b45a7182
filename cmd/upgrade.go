package cmd

import (
	"os"

	"github.com/devcompass/compass-cli/config"
	"github.com/devcompass/compass-cli/display"
	"github.com/getsavvyinc/upgrade-cli"
	"github.com/getsavvyinc/upgrade-cli/release/asset"
	"github.com/spf13/cobra"
)

const (
	owner = "devcompass"
	repo  = "compass-cli"
)

// upgradeCmd represents the upgrade command
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "upgrade compass to the latest version",
	Long:  `upgrade compass to the latest version`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "upgrade")

		executablePath, err := os.Executable()
		if err != nil {
			display.Error(err)
			os.Exit(1)
		}
		version := config.Version()

		assetDownloader := asset.NewAssetDownloader(executablePath, asset.WithLookupArchFallback(map[string]string{
			"amd64": "x86_64",
			"386":   "i386",
		}))
		upgrader := upgrade.NewUpgrader(owner, repo, executablePath, upgrade.WithAssetDownloader(assetDownloader))

		if ok, err := upgrader.IsNewVersionAvailable(ctx, version); err != nil {
			display.Error(err)
			return
		} else if !ok {
			display.Info("compass is already up to date")
			return
		}

		logger.Debug("upgrading", "from", version, "executable", executablePath)
		display.Info("Upgrading compass...")
		if err := upgrader.Upgrade(ctx, version); err != nil {
			display.Error(err)
			os.Exit(1)
		} else {
			display.Success("compass has been upgraded to the latest version")
		}
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}
