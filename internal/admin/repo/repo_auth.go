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

package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/pkg/cache"
)

// Session is the server-side record backing an issued token pair.
type Session struct {
	UserId       int64  `json:"userId"`
	Username     string `json:"username"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IssuedAt     int64  `json:"issuedAt"`
}

type IAuthRepository interface {
	SetSession(ctx context.Context, session *Session, ttl time.Duration) error
	GetSession(ctx context.Context, userId int64) (*Session, error)
	DelSession(ctx context.Context, userId int64) error
}

type AuthRepo struct {
	cache cache.ICache
}

func NewAuthRepo(c cache.ICache) IAuthRepository {
	return &AuthRepo{cache: c}
}

func sessionKey(userId int64) string {
	return consts.SessionKeyPrefix + strconv.FormatInt(userId, 10)
}

func (ar *AuthRepo) SetSession(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := sonic.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	if err := ar.cache.Set(ctx, sessionKey(session.UserId), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "store session")
	}
	return nil
}

func (ar *AuthRepo) GetSession(ctx context.Context, userId int64) (*Session, error) {
	payload, err := ar.cache.Get(ctx, sessionKey(userId)).Result()
	if err != nil {
		return nil, err
	}
	var session Session
	if err := sonic.Unmarshal([]byte(payload), &session); err != nil {
		return nil, errors.Wrap(err, "unmarshal session")
	}
	return &session, nil
}

func (ar *AuthRepo) DelSession(ctx context.Context, userId int64) error {
	return ar.cache.Del(ctx, sessionKey(userId)).Err()
}
