package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
)

var GlobalConfig *Config

type Config struct {
	ZkQueryURL           string `json:"zkQueryUrl"`
	AuthURL              string `json:"authUrl"`
	ChainRPCURL          string `json:"chainRpcUrl"`
	APIKey               string `json:"apiKey"`
	Network              string `json:"network"`
	HyperKzgSetupPath    string `json:"hyperKzgSetupPath"`
	DynamicDorySetupPath string `json:"dynamicDorySetupPath"`
	TelemetryAddress     string `json:"telemetryAddress"`
}

func (c *Config) VerifyRequired() error {
	if c.APIKey == "" {
		return errors.New("required apiKey missing")
	}
	if c.HyperKzgSetupPath == "" && c.DynamicDorySetupPath == "" {
		return errors.New("at least one verifier setup path is required")
	}
	return nil
}

func ConfigFromFile(configPath string) (*Config, error) {
	return ReadConfigJson(configPath)
}

func ReadConfigJson(configPath string) (*Config, error) {
	config := GetDefaultConfig()
	log.Debugf("ConfigPath=%s", configPath)
	f, err := os.OpenFile(configPath, os.O_RDONLY|os.O_SYNC, 0)
	if err != nil {
		log.WithError(err).Error("OpenConfigFile")
		return nil, err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(config)
	if err != nil {
		log.WithError(err).Error("DecodeConfig")
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return config, nil
}

func GetDefaultConfig() *Config {
	return &Config{
		ZkQueryURL:       DefaultZkQueryURL,
		AuthURL:          DefaultAuthURL,
		ChainRPCURL:      DefaultChainRPCURL,
		Network:          DefaultNetwork,
		TelemetryAddress: DefaultTelemetryAddress,
	}
}

// LoadVerifierSetups reads every configured setup file into the per-scheme
// set the pipeline consumes. Loaded once at process start.
func (c *Config) LoadVerifierSetups() (*commitment.VerifierSetups, error) {
	var setups []*commitment.VerifierSetup
	if c.HyperKzgSetupPath != "" {
		s, err := commitment.LoadVerifierSetupFile(commitment.HyperKzg, c.HyperKzgSetupPath)
		if err != nil {
			return nil, err
		}
		setups = append(setups, s)
	}
	if c.DynamicDorySetupPath != "" {
		s, err := commitment.LoadVerifierSetupFile(commitment.DynamicDory, c.DynamicDorySetupPath)
		if err != nil {
			return nil, err
		}
		setups = append(setups, s)
	}
	if len(setups) == 0 {
		return nil, errors.New("no verifier setup paths configured")
	}
	return commitment.NewVerifierSetups(setups...), nil
}
