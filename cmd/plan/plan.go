package plan

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/client"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/config"
)

const (
	configFileFlag    = "config"
	queryFlag         = "query"
	apiKeyFlag        = "api-key"
	evmCompatibleFlag = "evm-compatible"
)

var (
	cfgFilePath   string
	conf          = config.GetDefaultConfig()
	sqlQuery      string
	evmCompatible bool
)

func GetCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "plan",
		Short: "Command to compile SQL into a serialized proof plan",
		RunE:  runCommand,
	}

	cmd.Flags().StringVar(
		&cfgFilePath,
		configFileFlag,
		"./config.json",
		"Used to specify JSON config file path",
	)
	cmd.Flags().StringVarP(
		&sqlQuery,
		queryFlag,
		"q",
		"",
		"SQL query to compile",
	)
	cmd.Flags().StringVar(
		&conf.APIKey,
		apiKeyFlag,
		"",
		"API key for the Space and Time services",
	)
	cmd.Flags().BoolVar(
		&evmCompatible,
		evmCompatibleFlag,
		true,
		"Request an EVM-ABI-compatible plan",
	)

	return cmd
}

func runCommand(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgFilePath); err == nil {
		c, err := config.ReadConfigJson(cfgFilePath)
		if err != nil {
			log.Infof("Config file parsing error")
			return err
		}
		conf = c
	}
	if conf.APIKey == "" {
		return fmt.Errorf("required flag missing: %q", apiKeyFlag)
	}
	if sqlQuery == "" {
		return fmt.Errorf("required flag missing: %q", queryFlag)
	}

	auth := client.NewAuthenticator(conf.AuthURL, conf.APIKey)
	zk := client.NewZkQueryClient(conf.ZkQueryURL, auth)

	response, err := zk.BuildPlan(context.Background(), &client.QueryPlanRequest{
		SQLText:       sqlQuery,
		SourceNetwork: client.Network(conf.Network),
		EVMCompatible: evmCompatible,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, response.Plan)
	return nil
}
