// Package session holds the signed-in administrator's profile and console
// settings for each identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/upasthiti/admin-console/internal/logging"
	"github.com/upasthiti/admin-console/internal/models"
)

// PictureFailedNotice is the one notice reported for any failed picture update.
const PictureFailedNotice = "Failed to upload profile picture."

var (
	ErrUpdateInProgress = errors.New("session: profile picture update already in progress")
	ErrNoProfile        = errors.New("session: no profile loaded")
)

// NoticeError carries a message meant for the administrator. Err is the
// underlying cause.
type NoticeError struct {
	Message string
	Err     error
}

func (e *NoticeError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *NoticeError) Unwrap() error { return e.Err }

// RefreshPolicy decides when a persisted profile is re-fetched.
type RefreshPolicy string

const (
	// RefreshMissing fetches only when nothing is persisted.
	RefreshMissing RefreshPolicy = "missing"
	// RefreshAlways shows the persisted copy at once and refreshes it in the
	// background.
	RefreshAlways RefreshPolicy = "always"
)

func ParseRefreshPolicy(s string) (RefreshPolicy, error) {
	switch RefreshPolicy(s) {
	case RefreshMissing, RefreshAlways:
		return RefreshPolicy(s), nil
	case "":
		return RefreshMissing, nil
	}
	return "", fmt.Errorf("session: unknown refresh policy %q", s)
}

// Backend is the part of the remote gateway the cache needs.
type Backend interface {
	Admin(ctx context.Context, uid string) (*models.AdminProfile, error)
	UpdateAdmin(ctx context.Context, uid string, updates map[string]any) error
	SignUpload(ctx context.Context, folder string) (*models.UploadCredential, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, cred models.UploadCredential, filename string, image io.Reader) (string, error)
}

// Cache is the session profile cache. It stores unredacted profiles; views
// apply redaction.
type Cache struct {
	backend Backend
	images  ImageUploader
	store   Store
	policy  RefreshPolicy
	folder  string
	timeout time.Duration
	log     *zap.Logger

	mu       sync.Mutex
	profiles map[string]models.AdminProfile
	updating map[string]bool
	bg       sync.WaitGroup
}

type Option func(*Cache)

func WithPolicy(p RefreshPolicy) Option {
	return func(c *Cache) { c.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.log = logging.OrNop(l).Named("session") }
}

// WithFolder sets the image-host folder profile pictures go to.
func WithFolder(folder string) Option {
	return func(c *Cache) { c.folder = folder }
}

// WithRefreshTimeout bounds background refreshes.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = d }
}

func NewCache(backend Backend, images ImageUploader, store Store, opts ...Option) *Cache {
	c := &Cache{
		backend:  backend,
		images:   images,
		store:    store,
		policy:   RefreshMissing,
		folder:   "profilepictures",
		timeout:  30 * time.Second,
		log:      zap.NewNop(),
		profiles: make(map[string]models.AdminProfile),
		updating: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the profile to show for uid. A profile already in memory
// or persisted is returned without touching the network. With nothing
// persisted the profile is fetched; if that fails the failure is logged and
// nil is returned, meaning the profile is still loading.
func (c *Cache) Resolve(ctx context.Context, uid string) *models.AdminProfile {
	if p, ok := c.Current(uid); ok {
		return p
	}

	stored, err := c.store.LoadProfile(ctx, uid)
	switch {
	case err == nil:
		c.remember(*stored)
		if c.policy == RefreshAlways {
			c.refreshInBackground(uid)
		}
		return stored
	case !errors.Is(err, ErrNoState):
		c.log.Warn("load persisted profile", zap.String("uid", uid), zap.Error(err))
	}

	p, err := c.Refresh(ctx, uid)
	if err != nil {
		c.log.Error("fetch admin profile", zap.String("uid", uid), zap.Error(err))
		return nil
	}
	return p
}

// Current returns the in-memory profile without any I/O.
func (c *Cache) Current(uid string) (*models.AdminProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.profiles[uid]
	if !ok {
		return nil, false
	}
	return &p, true
}

// Refresh fetches the profile and, on success, overwrites both the memory
// and persisted copies. On failure nothing changes.
func (c *Cache) Refresh(ctx context.Context, uid string) (*models.AdminProfile, error) {
	p, err := c.backend.Admin(ctx, uid)
	if err != nil {
		return nil, err
	}
	c.remember(*p)
	c.persist(ctx, p)
	return p, nil
}

func (c *Cache) refreshInBackground(uid string) {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if _, err := c.Refresh(ctx, uid); err != nil {
			c.log.Warn("background profile refresh", zap.String("uid", uid), zap.Error(err))
		}
	}()
}

// Wait blocks until background refreshes have finished.
func (c *Cache) Wait() {
	c.bg.Wait()
}

// RevalidateAll refreshes every known profile and returns how many
// succeeded. Failures keep the existing copy.
func (c *Cache) RevalidateAll(ctx context.Context) (int, error) {
	uids, err := c.store.ProfileUIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list cached profiles: %w", err)
	}
	seen := make(map[string]bool, len(uids))
	for _, uid := range uids {
		seen[uid] = true
	}
	c.mu.Lock()
	for uid := range c.profiles {
		if !seen[uid] {
			uids = append(uids, uid)
			seen[uid] = true
		}
	}
	c.mu.Unlock()
	sort.Strings(uids)

	refreshed := 0
	for _, uid := range uids {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		if _, err := c.Refresh(ctx, uid); err != nil {
			c.log.Warn("revalidate profile", zap.String("uid", uid), zap.Error(err))
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// UpdateProfilePicture signs an upload, sends the image to the host, patches
// the backend record with the new URL and only then updates the cache. Any
// failing step stops the rest and yields a single *NoticeError; the cached
// profile is left untouched. A second call for the same uid while one is in
// flight fails with ErrUpdateInProgress.
func (c *Cache) UpdateProfilePicture(ctx context.Context, uid, filename string, image io.Reader) (*models.AdminProfile, error) {
	if !c.begin(uid) {
		return nil, &NoticeError{Message: PictureFailedNotice, Err: ErrUpdateInProgress}
	}
	defer c.end(uid)

	fail := func(step string, err error) (*models.AdminProfile, error) {
		c.log.Error("profile picture update", zap.String("uid", uid), zap.String("step", step), zap.Error(err))
		return nil, &NoticeError{Message: PictureFailedNotice, Err: fmt.Errorf("%s: %w", step, err)}
	}

	current := c.Resolve(ctx, uid)
	if current == nil {
		return fail("load profile", ErrNoProfile)
	}

	cred, err := c.backend.SignUpload(ctx, c.folder)
	if err != nil {
		return fail("sign upload", err)
	}
	url, err := c.images.Upload(ctx, *cred, filename, image)
	if err != nil {
		return fail("upload image", err)
	}
	if err := c.backend.UpdateAdmin(ctx, uid, map[string]any{"profilePicture": url}); err != nil {
		return fail("update admin", err)
	}

	updated := *current
	updated.ProfilePicture = url
	c.remember(updated)
	c.persist(ctx, &updated)
	return &updated, nil
}

// Forget drops every trace of uid, in memory and persisted.
func (c *Cache) Forget(ctx context.Context, uid string) error {
	c.mu.Lock()
	delete(c.profiles, uid)
	c.mu.Unlock()
	return c.store.Forget(ctx, uid)
}

func (c *Cache) remember(p models.AdminProfile) {
	c.mu.Lock()
	c.profiles[p.UID] = p
	c.mu.Unlock()
}

func (c *Cache) persist(ctx context.Context, p *models.AdminProfile) {
	if err := c.store.SaveProfile(ctx, p); err != nil {
		c.log.Warn("persist profile", zap.String("uid", p.UID), zap.Error(err))
	}
}

func (c *Cache) begin(uid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.updating[uid] {
		return false
	}
	c.updating[uid] = true
	return true
}

func (c *Cache) end(uid string) {
	c.mu.Lock()
	delete(c.updating, uid)
	c.mu.Unlock()
}
