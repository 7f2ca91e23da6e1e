package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/webhook"
)

// memStore is an in-memory content store. writes counts every mutating call.
type memStore struct {
	mu          sync.Mutex
	seq         int
	order       map[string]int
	entries     map[string]models.ContentEntry
	renderings  map[string]models.PlatformRendering
	slides      map[string][]models.SlideImage
	uploads     map[string][]models.UploadedImage
	wordpress   map[string]models.WordPressPost
	profiles    map[string]models.Profile
	credentials map[string]models.UserCredential
	writes      int
	listCalls   int
}

func newMemStore() *memStore {
	return &memStore{
		order:       make(map[string]int),
		entries:     make(map[string]models.ContentEntry),
		renderings:  make(map[string]models.PlatformRendering),
		slides:      make(map[string][]models.SlideImage),
		uploads:     make(map[string][]models.UploadedImage),
		wordpress:   make(map[string]models.WordPressPost),
		profiles:    make(map[string]models.Profile),
		credentials: make(map[string]models.UserCredential),
	}
}

func (m *memStore) store() Store {
	return Store{
		Entries:    memEntries{m},
		Renderings: memRenderings{m},
		Slides:     memSlides{m},
		Uploads:    memUploads{m},
		WordPress:  memWordPress{m},
		Profiles:   memProfiles{m},
		Tx:         memTx{},
	}
}

func (m *memStore) newID() string {
	m.seq++
	id := uuid.NewString()
	m.order[id] = m.seq
	return id
}

func (m *memStore) write() {
	m.writes++
}

func (m *memStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

type memTx struct{}

func (memTx) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

type memEntries struct{ m *memStore }

func (r memEntries) Create(ctx context.Context, tx *sql.Tx, e *models.ContentEntry) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	c := *e
	c.ID = r.m.newID()
	c.CreatedAt, c.UpdatedAt = e.CreatedDate, e.CreatedDate
	r.m.entries[c.ID] = c
	return c.ID, nil
}

func (r memEntries) GetByID(ctx context.Context, id string) (*models.ContentEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r memEntries) ListByUserID(ctx context.Context, userID string) ([]*models.ContentEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.listCalls++
	var out []*models.ContentEntry
	for _, e := range r.m.entries {
		if e.UserID == userID {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order[out[i].ID] > r.m.order[out[j].ID] })
	return out, nil
}

func (r memEntries) Update(ctx context.Context, e *models.ContentEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	stored, ok := r.m.entries[e.ID]
	if !ok || stored.UserID != e.UserID {
		return repository.ErrNoRowsAffected
	}
	stored.Topic, stored.Description, stored.Type = e.Topic, e.Description, e.Type
	r.m.entries[e.ID] = stored
	return nil
}

func (r memEntries) Remove(ctx context.Context, tx *sql.Tx, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	for rid, pr := range r.m.renderings {
		if pr.EntryID == id {
			r.m.removeRendering(rid)
		}
	}
	delete(r.m.entries, id)
	return nil
}

func (m *memStore) removeRendering(id string) {
	delete(m.slides, id)
	delete(m.uploads, id)
	delete(m.wordpress, id)
	delete(m.renderings, id)
}

type memRenderings struct{ m *memStore }

func (r memRenderings) Create(ctx context.Context, tx *sql.Tx, pr *models.PlatformRendering) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	c := *pr
	c.ID = r.m.newID()
	r.m.renderings[c.ID] = c
	return c.ID, nil
}

func (r memRenderings) GetByID(ctx context.Context, id string) (*models.PlatformRendering, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	pr, ok := r.m.renderings[id]
	if !ok {
		return nil, nil
	}
	return &pr, nil
}

func (r memRenderings) GetByEntryAndPlatform(ctx context.Context, entryID string, platform models.Platform) (*models.PlatformRendering, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, pr := range r.m.renderings {
		if pr.EntryID == entryID && pr.Platform == platform {
			return &pr, nil
		}
	}
	return nil, nil
}

func (r memRenderings) filter(keep func(models.PlatformRendering) bool) []*models.PlatformRendering {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.PlatformRendering
	for _, pr := range r.m.renderings {
		if keep(pr) {
			pr := pr
			out = append(out, &pr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order[out[i].ID] < r.m.order[out[j].ID] })
	return out
}

func (r memRenderings) ListByEntryID(ctx context.Context, entryID string) ([]*models.PlatformRendering, error) {
	return r.filter(func(pr models.PlatformRendering) bool { return pr.EntryID == entryID }), nil
}

func (r memRenderings) ListBySlidesURL(ctx context.Context, slidesURL string) ([]*models.PlatformRendering, error) {
	return r.filter(func(pr models.PlatformRendering) bool {
		return pr.SlidesURL != nil && *pr.SlidesURL == slidesURL
	}), nil
}

func (r memRenderings) update(id string, fn func(*models.PlatformRendering)) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	pr, ok := r.m.renderings[id]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	fn(&pr)
	r.m.renderings[id] = pr
	return nil
}

func (r memRenderings) UpdateText(ctx context.Context, tx *sql.Tx, id, text, status string) error {
	return r.update(id, func(pr *models.PlatformRendering) { pr.Text, pr.Status = text, status })
}

func (r memRenderings) UpdateImage(ctx context.Context, id, imageURL string) error {
	return r.update(id, func(pr *models.PlatformRendering) { pr.ImageURL = &imageURL })
}

func (r memRenderings) UpdateSchedule(ctx context.Context, id string, scheduledAt *time.Time, status string) error {
	return r.update(id, func(pr *models.PlatformRendering) {
		pr.ScheduledAt = scheduledAt
		if status != "" {
			pr.Status = status
		}
	})
}

func (r memRenderings) UpdatePublishStatus(ctx context.Context, id, status string, publishedURL *string, publishedAt *time.Time) error {
	return r.update(id, func(pr *models.PlatformRendering) {
		pr.Status = status
		if publishedURL != nil {
			pr.PublishedURL = publishedURL
		}
		if publishedAt != nil {
			pr.PublishedAt = publishedAt
		}
	})
}

func (r memRenderings) Remove(ctx context.Context, tx *sql.Tx, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	r.m.removeRendering(id)
	return nil
}

type memSlides struct{ m *memStore }

func (r memSlides) ListByPlatformID(ctx context.Context, platformID string) ([]models.SlideImage, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return append([]models.SlideImage(nil), r.m.slides[platformID]...), nil
}

func (r memSlides) ReplaceAll(ctx context.Context, tx *sql.Tx, platformID string, imageURLs []string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	var set []models.SlideImage
	for i, url := range imageURLs {
		set = append(set, models.SlideImage{ID: uuid.NewString(), PlatformID: platformID, ImageURL: url, Position: i})
	}
	r.m.slides[platformID] = set
	return nil
}

type memUploads struct{ m *memStore }

func (r memUploads) Create(ctx context.Context, img *models.UploadedImage) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	c := *img
	c.ID = uuid.NewString()
	r.m.uploads[c.PlatformID] = append(r.m.uploads[c.PlatformID], c)
	return c.ID, nil
}

func (r memUploads) ListByPlatformID(ctx context.Context, platformID string) ([]models.UploadedImage, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return append([]models.UploadedImage(nil), r.m.uploads[platformID]...), nil
}

type memWordPress struct{ m *memStore }

func (r memWordPress) GetByPlatformID(ctx context.Context, platformID string) (*models.WordPressPost, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	wp, ok := r.m.wordpress[platformID]
	if !ok {
		return nil, nil
	}
	return &wp, nil
}

func (r memWordPress) Create(ctx context.Context, tx *sql.Tx, wp *models.WordPressPost) (string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	c := *wp
	c.ID = uuid.NewString()
	r.m.wordpress[c.PlatformID] = c
	return c.ID, nil
}

func (r memWordPress) Update(ctx context.Context, tx *sql.Tx, wp *models.WordPressPost) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	if _, ok := r.m.wordpress[wp.PlatformID]; !ok {
		return repository.ErrNoRowsAffected
	}
	r.m.wordpress[wp.PlatformID] = *wp
	return nil
}

type memProfiles struct{ m *memStore }

func (r memProfiles) GetByID(ctx context.Context, userID string) (*models.Profile, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[userID]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (r memProfiles) Upsert(ctx context.Context, p *models.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	r.m.profiles[p.ID] = *p
	return nil
}

type memCredentials struct{ m *memStore }

func (r memCredentials) ListByUserID(ctx context.Context, userID string) ([]*models.UserCredential, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.UserCredential
	for _, c := range r.m.credentials {
		if c.UserID == userID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Service < out[j].Service })
	return out, nil
}

func (r memCredentials) GetByService(ctx context.Context, userID, service string) (*models.UserCredential, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.credentials[userID+"/"+service]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCredentials) Upsert(ctx context.Context, c *models.UserCredential) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	r.m.credentials[c.UserID+"/"+c.Service] = *c
	return nil
}

func (r memCredentials) Remove(ctx context.Context, userID, service string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.write()
	key := userID + "/" + service
	if _, ok := r.m.credentials[key]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(r.m.credentials, key)
	return nil
}

// fakeGateway records calls and answers with canned responses.
type fakeGateway struct {
	mu        sync.Mutex
	calls     []string
	content   *webhook.GeneratedContent
	image     *webhook.GeneratedImage
	slides    []webhook.SlideBatch
	outcome   webhook.PublishOutcome
	err       error
	published []models.Platform
}

func (g *fakeGateway) record(action string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, action)
}

func (g *fakeGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) GenerateContent(ctx context.Context, url string, req webhook.GenerateContentRequest) (*webhook.GeneratedContent, error) {
	g.record(webhook.ActionGenerateContent)
	if g.err != nil {
		return nil, g.err
	}
	return g.content, nil
}

func (g *fakeGateway) GenerateImage(ctx context.Context, url string, req webhook.GenerateImageRequest) (*webhook.GeneratedImage, error) {
	g.record(webhook.ActionGenerateImage)
	if g.err != nil {
		return nil, g.err
	}
	return g.image, nil
}

func (g *fakeGateway) DownloadSlides(ctx context.Context, url, slidesURL, topic string) ([]webhook.SlideBatch, error) {
	g.record(webhook.ActionDownloadSlides)
	if g.err != nil {
		return nil, g.err
	}
	return g.slides, nil
}

func (g *fakeGateway) Publish(ctx context.Context, url, entryID string, platform models.Platform) (webhook.PublishOutcome, error) {
	g.record(webhook.ActionPublish)
	if g.err != nil {
		return nil, g.err
	}
	g.published = append(g.published, platform)
	return g.outcome, nil
}

type fakeEnqueuer struct {
	enqueued []string
}

func (f *fakeEnqueuer) EnqueueSlideDownload(ctx context.Context, platformID string) error {
	f.enqueued = append(f.enqueued, platformID)
	return nil
}

type fakeObjects struct {
	keys []string
}

func (f *fakeObjects) Upload(ctx context.Context, key string, file []byte, contentType string) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}
