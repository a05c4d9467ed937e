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

package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-atrium/atrium/internal/admin/consts"
	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/jwt"
	"github.com/go-atrium/atrium/pkg/log"
)

const minPasswordLen = 6

type AuthLogic struct {
	ctx      *ctx.Context
	userRepo repo.IUserRepository
	roleRepo repo.IRoleRepository
	permRepo repo.IPermissionRepository
	authRepo repo.IAuthRepository
	audit    *OperationLogLogic
}

func NewAuthLogic(ctx *ctx.Context, userRepo repo.IUserRepository, roleRepo repo.IRoleRepository,
	permRepo repo.IPermissionRepository, authRepo repo.IAuthRepository, audit *OperationLogLogic) *AuthLogic {
	return &AuthLogic{
		ctx:      ctx,
		userRepo: userRepo,
		roleRepo: roleRepo,
		permRepo: permRepo,
		authRepo: authRepo,
		audit:    audit,
	}
}

// Login verifies the credentials and issues a token pair. Every failed
// attempt is audited with operator id 0 so lockout tooling can see it.
func (al *AuthLogic) Login(login *model.Login, auth http.Auth, ip string) (*model.LoginResp, error) {
	attempt := Actor{Id: 0, Name: login.Username}

	user, err := al.userRepo.GetByUsername(login.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			al.audit.Record(attempt, consts.OperationLogin, consts.ModuleAuth,
				nil, "user", "login failed: user does not exist", ip)
			return nil, http.UserNotExist
		}
		log.Errorf("login lookup for %s: %v", login.Username, err)
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)) != nil {
		al.audit.Record(attempt, consts.OperationLogin, consts.ModuleAuth,
			&user.Id, "user", "login failed: incorrect password", ip)
		return nil, http.UserIncorrectPassword
	}

	if user.Status != consts.StatusEnabled {
		al.audit.Record(attempt, consts.OperationLogin, consts.ModuleAuth,
			&user.Id, "user", "login failed: account disabled", ip)
		return nil, http.UserDisabled
	}

	roles, err := al.roleRepo.CodesByUserId(user.Id)
	if err != nil {
		return nil, err
	}
	permissions, err := al.permRepo.CodesByUsername(user.Username)
	if err != nil {
		return nil, err
	}

	aToken, rToken, err := jwt.GenToken(user.Id, user.Username, user.Name,
		[]byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		log.Errorf("generate tokens for %s: %v", user.Username, err)
		return nil, err
	}

	// best effort, a dead Redis must not block login
	go func() {
		session := &repo.Session{
			UserId:       user.Id,
			Username:     user.Username,
			AccessToken:  aToken,
			RefreshToken: rToken,
			IssuedAt:     time.Now().UnixMilli(),
		}
		if err := al.authRepo.SetSession(al.ctx.GetCtx(), session, auth.AccessExpire*time.Minute); err != nil {
			log.Errorf("store session for %s: %v", user.Username, err)
		}
	}()

	al.audit.Record(Actor{Id: user.Id, Name: user.Name}, consts.OperationLogin,
		consts.ModuleAuth, &user.Id, "user", "login succeeded", ip)

	return &model.LoginResp{
		Username:     user.Name,
		UserId:       user.UserId,
		Roles:        roles,
		Permissions:  permissions,
		AccessToken:  aToken,
		RefreshToken: rToken,
		Expires:      time.Now().Add(auth.AccessExpire * time.Minute).UnixMilli(),
		Department:   user.Department,
		Position:     user.Position,
		Mobile:       user.Mobile,
		Email:        user.Email,
		Avatar:       user.Avatar,
	}, nil
}

// Refresh trades a valid refresh token for a new pair. The user is
// re-checked so a deletion or disable takes effect at the next refresh.
func (al *AuthLogic) Refresh(req *model.RefreshReq, auth http.Auth) (*model.RefreshResp, error) {
	claims, err := jwt.ParseToken(req.RefreshToken, auth.SecretKey)
	if err != nil {
		return nil, http.InvalidRefreshToken
	}

	user, err := al.userRepo.GetById(claims.UserId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.UserDisabledOrMissing
		}
		return nil, err
	}
	if user.Status != consts.StatusEnabled {
		return nil, http.UserDisabledOrMissing
	}

	aToken, rToken, err := jwt.GenToken(user.Id, user.Username, user.Name,
		[]byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		return nil, err
	}

	go func() {
		session := &repo.Session{
			UserId:       user.Id,
			Username:     user.Username,
			AccessToken:  aToken,
			RefreshToken: rToken,
			IssuedAt:     time.Now().UnixMilli(),
		}
		if err := al.authRepo.SetSession(al.ctx.GetCtx(), session, auth.AccessExpire*time.Minute); err != nil {
			log.Errorf("refresh session for %s: %v", user.Username, err)
		}
	}()

	return &model.RefreshResp{
		AccessToken:  aToken,
		RefreshToken: rToken,
		Expires:      time.Now().Add(auth.AccessExpire * time.Minute).UnixMilli(),
	}, nil
}

// Register creates the user and its role bindings in one transaction.
func (al *AuthLogic) Register(register *model.Register, ip string) error {
	if len(register.Password) < minPasswordLen {
		return http.PasswordTooShort
	}

	exists, err := al.userRepo.ExistsByUsername(register.Username)
	if err != nil {
		return err
	}
	if exists {
		return http.UserAlreadyExist
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(register.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	roleIds := []int64{consts.DefaultRoleId}
	if len(register.Roles) > 0 {
		roles, err := al.roleRepo.GetByCodes(register.Roles)
		if err != nil {
			return err
		}
		// unknown codes are dropped, an empty resolution falls back to
		// the default role
		if len(roles) > 0 {
			roleIds = roleIds[:0]
			for _, role := range roles {
				roleIds = append(roleIds, role.Id)
			}
		}
	}

	name := register.Name
	if name == "" {
		name = register.Username
	}
	user := &model.User{
		Username:   register.Username,
		UserId:     register.UserId,
		Name:       name,
		Password:   string(hash),
		Department: register.Department,
		Position:   register.Position,
		Mobile:     register.Mobile,
		Gender:     register.Gender,
		Email:      register.Email,
		Avatar:     register.Avatar,
		Status:     consts.StatusEnabled,
	}
	if err := al.userRepo.Register(user, roleIds); err != nil {
		return err
	}

	al.audit.Record(Actor{Id: user.Id, Name: user.Name}, consts.OperationCreate,
		consts.ModuleUser, &user.Id, "user",
		fmt.Sprintf("registered user %s with roles [%s]", user.Username, strings.Join(register.Roles, ",")), ip)
	return nil
}

// Logout drops the server-side session. The tokens themselves stay valid
// until expiry, which routes checking session presence will reject.
func (al *AuthLogic) Logout(userId int64) error {
	return al.authRepo.DelSession(al.ctx.GetCtx(), userId)
}
