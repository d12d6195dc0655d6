package main

import (
	"github.com/spf13/viper"

	"github.com/skosovsky/toolschema"
)

func initViperDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Artifacts
	viper.SetDefault("schema_file", toolschema.DefaultSchemaFile)
	viper.SetDefault("classification_file", toolschema.DefaultClassificationFile)

	// Generation
	viper.SetDefault("generate.max_concurrency", 4)
	viper.SetDefault("generate.types", []string{})
}
