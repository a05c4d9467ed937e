package logic

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/go-atrium/atrium/internal/admin/model"
	"github.com/go-atrium/atrium/internal/admin/repo"
	"github.com/go-atrium/atrium/pkg/ctx"
)

// In-memory repository stubs. The repo layer has its own sqlmock tests;
// here only the decisions made on top of it matter.

func newTestCtx() *ctx.Context {
	return ctx.NewContext(context.Background(), nil, nil, zap.NewNop().Sugar())
}

type stubUserRepo struct {
	mu         sync.Mutex
	byUsername map[string]*model.User
	byId       map[int64]*model.User

	registered      *model.User
	registeredRoles []int64
	updatedId       int64
	updatedFields   map[string]any
	updatedRoles    []string
	replacedRoles   bool
	deletedId       int64
	imported        []repo.ImportRow
}

func (s *stubUserRepo) GetByUsername(username string) (*model.User, error) {
	if u, ok := s.byUsername[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetById(id int64) (*model.User, error) {
	if u, ok := s.byId[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) ExistsByUsername(username string) (bool, error) {
	_, ok := s.byUsername[username]
	return ok, nil
}

func (s *stubUserRepo) Register(user *model.User, roleIds []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Id = 100
	s.registered = user
	s.registeredRoles = roleIds
	return nil
}

func (s *stubUserRepo) Update(id int64, fields map[string]any, roleCodes []string, replaceRoles bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedId = id
	s.updatedFields = fields
	s.updatedRoles = roleCodes
	s.replacedRoles = replaceRoles
	return nil
}

func (s *stubUserRepo) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletedId = id
	return nil
}

func (s *stubUserRepo) Import(rows []repo.ImportRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imported = rows
	return nil
}

func (s *stubUserRepo) List() ([]model.UserWithRoles, error) { return nil, nil }

func (s *stubUserRepo) SearchPage(page, size int) ([]model.User, error) { return nil, nil }

func (s *stubUserRepo) SearchVague(username string) ([]model.User, error) { return nil, nil }

type stubRoleRepo struct {
	roles       []model.Role
	userCodes   []string
	permCodes   map[int64][]string
	replaced    []string
	replacedFor int64
	kept        []string
}

func (s *stubRoleRepo) ListEnabled() ([]model.Role, error) { return s.roles, nil }

func (s *stubRoleRepo) GetByCode(code string) (*model.Role, error) {
	for i := range s.roles {
		if s.roles[i].Code == code {
			return &s.roles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRoleRepo) GetByName(name string) (*model.Role, error) {
	for i := range s.roles {
		if s.roles[i].Name == name {
			return &s.roles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRoleRepo) GetByCodes(codes []string) ([]model.Role, error) {
	var found []model.Role
	for _, code := range codes {
		for _, r := range s.roles {
			if r.Code == code {
				found = append(found, r)
			}
		}
	}
	return found, nil
}

func (s *stubRoleRepo) PermissionCodes(roleId int64) ([]string, error) {
	codes := s.permCodes[roleId]
	if codes == nil {
		codes = []string{}
	}
	return codes, nil
}

func (s *stubRoleRepo) CodesByUserId(userId int64) ([]string, error) {
	if s.userCodes == nil {
		return []string{}, nil
	}
	return s.userCodes, nil
}

func (s *stubRoleRepo) ReplacePermissions(roleId int64, codes []string) ([]string, error) {
	s.replacedFor = roleId
	s.replaced = codes
	if s.kept != nil {
		return s.kept, nil
	}
	return []string{}, nil
}

type stubPermRepo struct {
	perms []model.Permission
	codes []string
}

func (s *stubPermRepo) ListEnabled() ([]model.Permission, error) { return s.perms, nil }

func (s *stubPermRepo) CodesByUsername(username string) ([]string, error) {
	if s.codes == nil {
		return []string{}, nil
	}
	return s.codes, nil
}

type stubAuthRepo struct {
	mu       sync.Mutex
	sessions map[int64]*repo.Session
}

func (s *stubAuthRepo) SetSession(_ context.Context, session *repo.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = map[int64]*repo.Session{}
	}
	s.sessions[session.UserId] = session
	return nil
}

func (s *stubAuthRepo) GetSession(_ context.Context, userId int64) (*repo.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userId]; ok {
		return session, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) DelSession(_ context.Context, userId int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userId)
	return nil
}

// stubLogRepo feeds appended audit entries into a channel, so tests can
// wait on the fire-and-forget goroutine.
type stubLogRepo struct {
	entries chan *model.OperationLog
}

func newStubLogRepo() *stubLogRepo {
	return &stubLogRepo{entries: make(chan *model.OperationLog, 16)}
}

func (s *stubLogRepo) Append(entry *model.OperationLog) error {
	s.entries <- entry
	return nil
}

func (s *stubLogRepo) List(page, size int) ([]model.OperationLog, int64, error) {
	return nil, 0, nil
}

func awaitEntry(t *testing.T, lr *stubLogRepo) *model.OperationLog {
	t.Helper()
	select {
	case entry := <-lr.entries:
		return entry
	case <-time.After(2 * time.Second):
		t.Fatal("no audit entry recorded")
		return nil
	}
}
