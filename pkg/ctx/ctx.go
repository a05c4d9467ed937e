package ctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/database"
)

/**
 * @file: ctx.go
 * @description: application-scoped context carrying shared handles
 */

type Context struct {
	Ctx   context.Context
	DB    database.IDatabase
	Cache cache.ICache
	Log   *zap.SugaredLogger
}

func NewContext(ctx context.Context, db database.IDatabase, cache cache.ICache, log *zap.SugaredLogger) *Context {
	return &Context{
		Ctx:   ctx,
		DB:    db,
		Cache: cache,
		Log:   log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) GetDB() database.IDatabase {
	return c.DB
}

func (c *Context) GetCache() cache.ICache {
	return c.Cache
}
