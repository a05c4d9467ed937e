// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conf

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/database"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/log"
)

/**
 * @file: conf.go
 * @description: TOML config with hot reload
 */

type AppConfig struct {
	Log      log.Conf
	Http     httpx.Http
	Database database.Database
	Redis    cache.Redis
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads the TOML config and keeps watching it, so log level
// changes and the like take effect without a restart.
func LoadConfigFile(confFile string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confFile)
	config.AddConfigPath("./conf.d")
	config.SetConfigName("config")
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, reloading: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	return cfg, nil
}
