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

package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/go-atrium/atrium/internal/admin/conf"
	"github.com/go-atrium/atrium/internal/admin/router"
	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/database"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/log"
)

// uploadTmpMaxAge is how long a temporary upload may linger before the
// hourly sweep removes it.
const uploadTmpMaxAge = 24 * time.Hour

// App holds everything a running instance owns.
type App struct {
	AppConf conf.AppConfig
	Ctx     *ctx.Context
	Cron    *cron.Cron
}

// Bootstrap wires config, logging, Redis, MySQL and the router together,
// and returns the app plus the blocking shutdown hook of the http server.
func Bootstrap(configFile string) (*App, func(), error) {
	appConf := conf.NewConf(configFile)

	if err := log.Init(&appConf.Log); err != nil {
		return nil, nil, err
	}

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, nil, err
	}
	redisCache := cache.NewRedisCache(redisClient)

	dbClient, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, err
	}
	db := database.NewGormDB(dbClient)

	appCtx := ctx.NewContext(context.Background(), db, redisCache, log.GetLogger())

	rt := router.NewRouter(&appConf.Http, appCtx)
	shutdown := httpx.NewHttp(appConf.Http, rt.Router())

	c := cron.New()
	tmpDir := appConf.Http.UploadTmpDir
	if tmpDir == "" {
		tmpDir = "./upload_tmp"
	}
	if _, err := c.AddFunc("@hourly", func() { sweepUploadTmp(tmpDir) }); err != nil {
		return nil, nil, err
	}
	c.Start()

	app := &App{
		AppConf: appConf,
		Ctx:     appCtx,
		Cron:    c,
	}
	cleanup := func() {
		shutdown()
		c.Stop()
	}
	return app, cleanup, nil
}

// sweepUploadTmp drops temporary upload files older than a day.
func sweepUploadTmp(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Errorf("read upload tmp dir: %v", err)
		}
		return
	}

	cutoff := time.Now().Add(-uploadTmpMaxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Errorf("remove stale upload %s: %v", path, err)
			} else {
				log.Infof("removed stale upload %s", path)
			}
		}
	}
}
