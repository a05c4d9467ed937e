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

package common

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/go-atrium/atrium/internal/admin/logic"
	"github.com/go-atrium/atrium/pkg/http/interceptor"
	"github.com/go-atrium/atrium/pkg/http/jwt"
)

// ParseAuthorizationToken reads and verifies the bearer token directly,
// for handlers that sit outside the authorization interceptor.
func ParseAuthorizationToken(c *gin.Context, secretKey string) (*jwt.AuthClaims, error) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	return jwt.ParseToken(token, secretKey)
}

// ActorFromContext resolves the acting user for audit entries. Behind the
// authorization interceptor it uses the verified claims; elsewhere it
// falls back to parsing the header, and to an anonymous actor without one.
func ActorFromContext(c *gin.Context, secretKey string) logic.Actor {
	if claims, ok := interceptor.GetClaims(c); ok {
		return logic.Actor{Id: claims.UserId, Name: claims.Name}
	}
	if claims, err := ParseAuthorizationToken(c, secretKey); err == nil {
		return logic.Actor{Id: claims.UserId, Name: claims.Name}
	}
	return logic.Actor{Id: 0, Name: "anonymous"}
}
