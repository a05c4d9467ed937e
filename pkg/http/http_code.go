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

import "net/http"

// Error is a response error carrying the HTTP status to report with.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// failed constructor
func failed(status int, msg string) *Error {
	return &Error{Status: status, Msg: msg}
}

var (
	BadRequest                    = failed(http.StatusBadRequest, "Bad request")
	RequestParameterParsingFailed = failed(http.StatusBadRequest, "Request parameter parsing failed")
	NotFound                      = failed(http.StatusNotFound, "Not found")
	InternalError                 = failed(http.StatusInternalServerError, "Internal error, please contact the administrator")

	// authentication / tokens
	Unauthorized         = failed(http.StatusUnauthorized, "Unauthorized")
	InvalidToken         = failed(http.StatusUnauthorized, "Invalid token")
	TokenBeEmpty         = failed(http.StatusUnauthorized, "Token cannot be empty")
	TokenExpired         = failed(http.StatusUnauthorized, "Token is expired")
	TokenFormatIncorrect = failed(http.StatusUnauthorized, "Token format is incorrect")
	InvalidRefreshToken  = failed(http.StatusUnauthorized, "Invalid refresh token")

	// users
	UserNotExist          = failed(http.StatusNotFound, "User does not exist")
	UserAlreadyExist      = failed(http.StatusConflict, "User already exists")
	UserIncorrectPassword = failed(http.StatusUnauthorized, "User incorrect password")
	UserDisabled          = failed(http.StatusForbidden, "User account is disabled")
	UserDisabledOrMissing = failed(http.StatusUnauthorized, "User does not exist or is disabled")
	PasswordTooShort      = failed(http.StatusBadRequest, "Password must be at least 6 characters")

	// roles
	RoleNotExist = failed(http.StatusNotFound, "Role does not exist")

	UsernameIsRequired = failed(http.StatusBadRequest, "Username is required")
)
