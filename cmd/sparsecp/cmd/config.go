package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/viper"

	"github.com/sparsetools/sparsecp/pkg/appconfig"
)

var flagConfigFile string
var flagVerbose bool

var TheAppConfig appconfig.Config

func initConfig() error {
	if flagConfigFile != "" {
		viper.SetConfigFile(flagConfigFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not determine home directory: %w", err)
		}
		viper.AddConfigPath(path.Join(home, ".sparsecp"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("SPARSECP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Running without a config file is normal; a broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config '%v': %w", viper.ConfigFileUsed(), err)
		}
	}
	if err := viper.Unmarshal(&TheAppConfig); err != nil {
		return fmt.Errorf("unmarshalling config '%v': %w", viper.ConfigFileUsed(), err)
	}
	if flagVerbose {
		TheAppConfig.Verbose = true
	}
	return nil
}
