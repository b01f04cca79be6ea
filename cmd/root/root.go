package root

import (
	"github.com/spf13/cobra"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/cmd/plan"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/cmd/verify"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/cmd/version"
)

func GetRootCmd() *cobra.Command {

	var rootCmd = &cobra.Command{Use: "sxt-proof-of-sql-sdk"}
	rootCmd.AddCommand(verify.GetCommand())
	rootCmd.AddCommand(plan.GetCommand())
	rootCmd.AddCommand(version.GetCommand())
	return rootCmd
}
