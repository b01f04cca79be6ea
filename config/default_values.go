package config

var (
	DefaultZkQueryURL       = "https://api.makeinfinite.dev"
	DefaultAuthURL          = "https://proxy.api.makeinfinite.dev"
	DefaultChainRPCURL      = "https://rpc.testnet.sxt.network"
	DefaultNetwork          = "mainnet"
	DefaultTelemetryAddress = ":9090"
)
