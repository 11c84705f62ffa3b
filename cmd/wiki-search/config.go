// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/wiki-search/pkg/types"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.user_agent", "wiki-search/"+version)
	v.SetDefault("search.max_retries", 5)
	v.SetDefault("search.data_file", "")
	v.SetDefault("search.data_url", "")
	v.SetDefault("store.data_dir", "data")
	v.SetDefault("store.dataset", "wiki")
	v.SetDefault("store.max_results", 20)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// readConfig decodes the settings held by v.
func readConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
