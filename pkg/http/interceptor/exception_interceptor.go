package interceptor

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/log"
)

/**
 * @file: exception_interceptor.go
 * @description: panic recovery
 */

// ExceptionInterceptor recovers from handler panics and reports a generic
// internal failure without leaking the stack to the client.
func ExceptionInterceptor(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic: %v\n%s", err, debug.Stack())
			httpx.WithRepErr(c, httpx.InternalError)
			c.Abort()
		}
	}()
	c.Next()
}
