package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"ringback/backend/access"
	"ringback/backend/consent"
	"ringback/backend/database"
	"ringback/backend/industry"
	"ringback/backend/models"
	"ringback/backend/utils"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.User
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, byID: map[int64]models.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, name, email, hash, phone string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return 0, database.ErrDuplicate
		}
	}
	id := f.nextID
	f.nextID++
	f.byID[id] = models.User{ID: id, Name: name, Email: email, PasswordHash: hash, Phone: phone}
	return id, nil
}

func (f *fakeUsers) UserByID(_ context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return u, database.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.User{}, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, database.ErrNotFound
}

type fakeBusinesses struct {
	mu        sync.Mutex
	byID      map[int64]models.Business
	owners    map[int64]int64
	saved     []models.Business
	pendingQ  []bool
	completed []int64
	err       error
}

func newFakeBusinesses() *fakeBusinesses {
	return &fakeBusinesses{byID: map[int64]models.Business{}, owners: map[int64]int64{}}
}

func (f *fakeBusinesses) BusinessByID(_ context.Context, id int64) (models.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Business{}, f.err
	}
	b, ok := f.byID[id]
	if !ok {
		return b, database.ErrNotFound
	}
	return b, nil
}

func (f *fakeBusinesses) SaveBusiness(_ context.Context, b models.Business) (models.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Business{}, f.err
	}
	id, ok := f.owners[b.OwnerID]
	if !ok {
		id = int64(100 + len(f.owners))
		f.owners[b.OwnerID] = id
	}
	b.ID = id
	b.CreatedAt = time.Unix(0, 0).UTC()
	f.byID[id] = b
	f.saved = append(f.saved, b)
	return b, nil
}

func (f *fakeBusinesses) ListBusinesses(_ context.Context, pendingOnly bool) ([]models.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingQ = append(f.pendingQ, pendingOnly)
	if f.err != nil {
		return nil, f.err
	}
	list := []models.Business{}
	for _, b := range f.byID {
		if pendingOnly && !(b.RequiresManualSetup && !b.OnboardingComplete) {
			continue
		}
		list = append(list, b)
	}
	return list, nil
}

func (f *fakeBusinesses) CompleteOnboarding(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	b, ok := f.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	b.OnboardingComplete = true
	f.byID[id] = b
	f.completed = append(f.completed, id)
	return nil
}

// directory answers access lookups from the fake stores, like database.Store.
type directory struct {
	users      *fakeUsers
	businesses *fakeBusinesses
	admins     map[int64]bool
}

func (d *directory) Account(ctx context.Context, id int64) (access.Account, error) {
	if _, err := d.users.UserByID(ctx, id); err != nil {
		return access.Account{}, access.ErrNotFound
	}
	a := access.Account{UserID: id, IsAdmin: d.admins[id]}
	d.businesses.mu.Lock()
	if bid, ok := d.businesses.owners[id]; ok {
		a.BusinessID = &bid
	}
	d.businesses.mu.Unlock()
	return a, nil
}

func (d *directory) BusinessState(ctx context.Context, id int64) (access.BusinessState, error) {
	b, err := d.businesses.BusinessByID(ctx, id)
	if err != nil {
		return access.BusinessState{}, access.ErrNotFound
	}
	return access.BusinessState{OnboardingComplete: b.OnboardingComplete}, nil
}

type fakeOptIns struct {
	records []models.OptIn
	err     error
}

func (f *fakeOptIns) ListOptIns(context.Context) ([]models.OptIn, error) {
	return f.records, f.err
}

type fakeSink struct {
	got []consent.Submission
	err error
}

func (f *fakeSink) RecordOptIn(_ context.Context, s consent.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, s)
	return nil
}

type fakeDrafter struct {
	script string
	err    error
}

func (f fakeDrafter) DraftGreeting(context.Context, string, industry.Entry) (string, error) {
	return f.script, f.err
}

var errDB = errors.New("connection refused")

func bearer(uid int64) string {
	tok, err := utils.GenerateJWT(secret, uid, time.Hour)
	if err != nil {
		panic(err)
	}
	return "Bearer " + tok
}

func send(r http.Handler, method, path, authz, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
