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

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// WithRepJSON returns a success envelope wrapping data.
func WithRepJSON(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WithRepMsg returns a success envelope with only a message.
func WithRepMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"message": msg},
	})
}

// WithRepErr maps err onto a failure envelope. *Error values carry their own
// HTTP status; anything else is reported as a generic internal failure so
// database detail never leaks to the client.
func WithRepErr(c *gin.Context, err error) {
	var respErr *Error
	if errors.As(err, &respErr) {
		c.JSON(respErr.Status, Response{
			Success: false,
			Data:    gin.H{"message": respErr.Msg},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Data:    gin.H{"message": InternalError.Msg},
	})
}

// WithRepErrMsg returns a failure envelope with an explicit status and message.
func WithRepErrMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{
		Success: false,
		Data:    gin.H{"message": msg},
	})
}
