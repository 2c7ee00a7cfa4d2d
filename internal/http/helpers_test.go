package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/TurkiHQ/DevConnecter/internal/config"
	"github.com/TurkiHQ/DevConnecter/internal/domain"
	api "github.com/TurkiHQ/DevConnecter/internal/http"
	"github.com/TurkiHQ/DevConnecter/internal/queue"
	"github.com/TurkiHQ/DevConnecter/internal/repo"
)

const testSecret = "test_secret"

// fakeStore implements repo.UserRepo and repo.ProfileRepo in memory with the
// same semantics the mongo Store has: duplicate detection, nil-on-absent
// lookups, prepend-at-head, pull-by-id with entry-not-found. mutations counts
// every write so tests can assert the guard rejected before anything changed.
type fakeStore struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]domain.User
	profiles  map[primitive.ObjectID]domain.Profile // keyed by owner user id
	mutations int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[primitive.ObjectID]domain.User),
		profiles: make(map[primitive.ObjectID]domain.Profile),
	}
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func (f *fakeStore) CreateUser(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	f.users[u.ID] = *u
	f.mutations++
	return nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, userID)
	delete(f.users, userID)
	f.mutations++
	return nil
}

func (f *fakeStore) CreateProfile(ctx context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.UserID]; ok {
		return repo.ErrProfileExists
	}
	p.ID = primitive.NewObjectID()
	f.profiles[p.UserID] = copyProfile(*p)
	f.mutations++
	return nil
}

func (f *fakeStore) FindProfileByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		cp := copyProfile(p)
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Profile{}
	for _, p := range f.profiles {
		out = append(out, copyProfile(p))
	}
	return out, nil
}

func (f *fakeStore) UpdateProfileFields(ctx context.Context, userID primitive.ObjectID, upd domain.ProfileUpdate) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&p.Company, upd.Company)
	apply(&p.Website, upd.Website)
	apply(&p.Location, upd.Location)
	apply(&p.Bio, upd.Bio)
	apply(&p.Status, upd.Status)
	apply(&p.GithubUsername, upd.GithubUsername)
	if upd.Skills != nil {
		p.Skills = append([]string(nil), upd.Skills...)
	}
	apply(&p.Social.Youtube, upd.Youtube)
	apply(&p.Social.Twitter, upd.Twitter)
	apply(&p.Social.Facebook, upd.Facebook)
	apply(&p.Social.Linkedin, upd.Linkedin)
	apply(&p.Social.Instagram, upd.Instagram)
	f.profiles[userID] = copyProfile(p)
	f.mutations++
	cp := copyProfile(p)
	return &cp, nil
}

func (f *fakeStore) PushExperience(ctx context.Context, userID primitive.ObjectID, e domain.Experience) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.Experience = append([]domain.Experience{e}, p.Experience...)
	f.profiles[userID] = copyProfile(p)
	f.mutations++
	cp := copyProfile(p)
	return &cp, nil
}

func (f *fakeStore) PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	idx := -1
	for i, e := range p.Experience {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, repo.ErrEntryNotFound
	}
	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
	f.profiles[userID] = copyProfile(p)
	f.mutations++
	cp := copyProfile(p)
	return &cp, nil
}

func (f *fakeStore) PushEducation(ctx context.Context, userID primitive.ObjectID, e domain.Education) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.Education = append([]domain.Education{e}, p.Education...)
	f.profiles[userID] = copyProfile(p)
	f.mutations++
	cp := copyProfile(p)
	return &cp, nil
}

func (f *fakeStore) PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	idx := -1
	for i, e := range p.Education {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, repo.ErrEntryNotFound
	}
	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
	f.profiles[userID] = copyProfile(p)
	f.mutations++
	cp := copyProfile(p)
	return &cp, nil
}

func (f *fakeStore) userCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeStore) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations
}

func copyProfile(p domain.Profile) domain.Profile {
	p.Skills = append([]string(nil), p.Skills...)
	p.Experience = append([]domain.Experience(nil), p.Experience...)
	p.Education = append([]domain.Education(nil), p.Education...)
	return p
}

type testEnv struct {
	Store  *fakeStore
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	cfg := config.Config{
		JWTSecret:     testSecret,
		JWTTTLSeconds: 3600,
		BcryptCost:    bcrypt.MinCost,
	}
	h := api.NewHandler(store, store, cfg, nil, queue.NewNoop())
	h.Health = store
	return &testEnv{Store: store, Router: api.NewRouter(h)}
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// registerAndLogin creates a fresh user and returns its token.
func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	w := e.do("POST", "/api/users",
		`{"name":"John","email":"`+email+`","password":"StrongP@ss1"}`, nil)
	if w.Code != 200 {
		t.Fatalf("register code=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("register resp parse: %v; body=%s", err, w.Body.String())
	}
	return out.Token
}
