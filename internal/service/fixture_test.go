package service

import (
	"context"
	"testing"
	"time"

	"github.com/maheshrc27/contentflow/internal/cache"
	"github.com/maheshrc27/contentflow/internal/identity"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/projector"
	"github.com/stretchr/testify/require"
)

const (
	testUser  = "8d1c3e4f-2a6b-4c8d-9e0f-1a2b3c4d5e6f"
	otherUser = "1f2e3d4c-5b6a-4978-8f7e-6d5c4b3a2910"
	hookURL   = "https://hooks.example.com/flow"
)

type fixture struct {
	mem       *memStore
	gw        *fakeGateway
	cache     *cache.EntryCache
	enq       *fakeEnqueuer
	objects   *fakeObjects
	now       time.Time
	entries   *entryService
	cards     *cardService
	callbacks *callbackService
	gallery   *galleryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		mem:     newMemStore(),
		gw:      &fakeGateway{},
		cache:   cache.NewEntryCache(5 * time.Minute),
		enq:     &fakeEnqueuer{},
		objects: &fakeObjects{},
		now:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	f.entries = NewEntryService(f.mem.store(), f.cache, f.gw).(*entryService)
	f.entries.now = clock
	f.cards = NewCardService(f.mem.store(), f.cache, f.gw, f.enq).(*cardService)
	f.cards.now = clock
	f.callbacks = NewCallbackService(f.mem.store(), f.cache, f.gw).(*callbackService)
	f.callbacks.now = clock
	f.gallery = NewGalleryService(f.mem.store(), f.cache, f.objects).(*galleryService)
	f.gallery.now = clock

	f.mem.profiles[testUser] = models.Profile{ID: testUser, WebhookURL: hookURL, SelectedPlatforms: []models.Platform{}}
	return f
}

// seed stores an entry for user with one rendering per given row.
func (f *fixture) seed(t *testing.T, user string, renderings ...models.PlatformRendering) (string, []string) {
	t.Helper()
	ctx := context.Background()
	store := f.mem.store()

	entryID, err := store.Entries.Create(ctx, nil, &models.ContentEntry{
		Topic: "X", Description: "Y", Type: models.ContentTypeSimplePost, CreatedDate: f.now, UserID: user,
	})
	require.NoError(t, err)

	var ids []string
	for _, r := range renderings {
		r.EntryID = entryID
		if r.Status == "" {
			r.Status = models.StatusGenerated
		}
		id, err := store.Renderings.Create(ctx, nil, &r)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	f.mem.writes = 0
	return entryID, ids
}

func cardID(t *testing.T, entryID string, p models.Platform) string {
	t.Helper()
	id, err := identity.New(entryID, p)
	require.NoError(t, err)
	return id.String()
}

func (f *fixture) view() projector.View {
	return projector.View{Now: f.now, Location: time.UTC, Locale: "es"}
}

func strPtr(s string) *string { return &s }
