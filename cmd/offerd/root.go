package main

import (
	"strings"

	"github.com/spf13/viper"
)

// envReplacer maps a flag like `--my-param` to the env var `OFFERD_MY_PARAM`.
var envReplacer = strings.NewReplacer("-", "_")

func init() {
	viper.SetEnvPrefix("OFFERD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(envReplacer)
}
