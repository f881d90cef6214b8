package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/pmarks/mctp/pkg/discovery"
)

// Config file / environment keys.
const (
	keyConnectors     = "connectors"
	keyChannels       = "channels"
	keyTargetAddress  = "target_address"
	keyInterval       = "interval_seconds"
	keyPrometheusPort = "prometheus_port"
	keyNodeName       = "node_name"
)

// loadConfig reads the optional config file and environment. A missing
// config file is not an error; explicit flags always win over both.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(keyConnectors, "")
	v.SetDefault(keyChannels, "")
	v.SetDefault(keyTargetAddress, int(discovery.DefaultTargetAddress))
	v.SetDefault(keyInterval, 60)
	v.SetDefault(keyPrometheusPort, 9285)
	v.SetDefault(keyNodeName, "")

	v.SetEnvPrefix("NVMEMICTL")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nvmemictl")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/nvmemictl")
	}

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// parseConnectors parses a comma-separated connector list ("0,1,4").
// An empty string means the sweep default.
func parseConnectors(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var connectors []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid connector %q: %w", part, err)
		}
		connectors = append(connectors, n)
	}
	return connectors, nil
}

// parseChannels parses a comma-separated channel list ("a,b").
// An empty string means the sweep default.
func parseChannels(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var channels []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			channels = append(channels, trimmed)
		}
	}
	return channels
}
