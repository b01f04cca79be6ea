package verify

import (
	"context"
	"fmt"
	"os"

	ethcommon "github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/client"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/config"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/table"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/telemetry"
)

const (
	configFileFlag   = "config"
	queryFlag        = "query"
	schemeFlag       = "scheme"
	blockHashFlag    = "block-hash"
	outputFormatFlag = "output"
	apiKeyFlag       = "api-key"
	zkQueryURLFlag   = "zk-query-url"
	authURLFlag      = "auth-url"
	chainRPCURLFlag  = "chain-rpc-url"
	hyperKzgFlag     = "hyperkzg-setup"
	dynamicDoryFlag  = "dynamic-dory-setup"
	telemetryFlag    = "serve-metrics"
)

var (
	cfgFilePath  string
	conf         = config.GetDefaultConfig()
	sqlQuery     string
	schemeName   string
	blockHashHex string
	outputFormat string
	serveMetrics bool
)

func GetCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "verify",
		Short: "Command to run a SQL query and verify the result end to end",
		RunE:  runCommand,
	}

	setFlags(cmd)

	return cmd
}

func setFlags(cmd *cobra.Command) {
	d := config.GetDefaultConfig()
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
		"SQL query to run and verify",
	)
	cmd.Flags().StringVar(
		&schemeName,
		schemeFlag,
		"",
		"Used to force a commitment scheme (hyper-kzg or dynamic-dory)",
	)
	cmd.Flags().StringVar(
		&blockHashHex,
		blockHashFlag,
		"",
		"Used to pin attestation fetching to one chain block hash",
	)
	cmd.Flags().StringVar(
		&outputFormat,
		outputFormatFlag,
		"json",
		"Output format for the verified table: json or csv",
	)
	cmd.Flags().StringVar(
		&conf.APIKey,
		apiKeyFlag,
		"",
		"API key for the Space and Time services",
	)
	cmd.Flags().StringVar(
		&conf.ZkQueryURL,
		zkQueryURLFlag,
		d.ZkQueryURL,
		"Used to specify the ZK Query API root URL",
	)
	cmd.Flags().StringVar(
		&conf.AuthURL,
		authURLFlag,
		d.AuthURL,
		"Used to specify the auth service root URL",
	)
	cmd.Flags().StringVar(
		&conf.ChainRPCURL,
		chainRPCURLFlag,
		d.ChainRPCURL,
		"Used to specify the chain node JSON-RPC URL",
	)
	cmd.Flags().StringVar(
		&conf.HyperKzgSetupPath,
		hyperKzgFlag,
		"",
		"Path to the HyperKZG verifier setup file",
	)
	cmd.Flags().StringVar(
		&conf.DynamicDorySetupPath,
		dynamicDoryFlag,
		"",
		"Path to the DynamicDory verifier setup file",
	)
	cmd.Flags().BoolVar(
		&serveMetrics,
		telemetryFlag,
		false,
		"Serve prometheus metrics while the command runs",
	)
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
	if err := conf.VerifyRequired(); err != nil {
		return err
	}
	if sqlQuery == "" {
		return fmt.Errorf("required flag missing: %q", queryFlag)
	}
	config.GlobalConfig = conf

	opts := client.QueryOptions{}
	if schemeName != "" {
		scheme, err := commitment.ParseScheme(schemeName)
		if err != nil {
			return err
		}
		opts.Scheme = &scheme
	}
	if blockHashHex != "" {
		hash := ethcommon.HexToHash(blockHashHex)
		opts.BlockHash = &hash
	}

	setups, err := conf.LoadVerifierSetups()
	if err != nil {
		return err
	}

	if serveMetrics {
		go telemetry.StartClient(conf.TelemetryAddress)
	}

	c := client.NewSxTClient(conf.ZkQueryURL, conf.AuthURL, conf.ChainRPCURL, conf.APIKey, setups)
	c.Network = client.Network(conf.Network)

	verified, err := c.QueryAndVerify(context.Background(), sqlQuery, opts)
	if err != nil {
		return err
	}
	return render(verified)
}

func render(t *table.OwnedTable) error {
	switch outputFormat {
	case "json":
		out, err := table.RenderJSON(t)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	case "csv":
		return table.WriteCSV(os.Stdout, t)
	}
	return fmt.Errorf("unknown output format: %q", outputFormat)
}
