package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	// Create temp file for test database
	f, err := os.CreateTemp("", "webblog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	// Open database
	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	// Run migrations
	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "test@example.com",
		PasswordHash: "hashed-password",
		Role:         "editor",
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@example.com")
	}
	if user.Role != "editor" {
		t.Errorf("Role = %q, want %q", user.Role, "editor")
	}
}

func TestGetUserByEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	created, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "lookup@example.com",
		PasswordHash: "hash",
		Role:         "admin",
		Name:         "Lookup",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := q.GetUserByEmail(ctx, "lookup@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}

	_, err = q.GetUserByEmail(ctx, "missing@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for missing user, got %v", err)
	}
}

func TestBlogPostLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	post, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
		Slug:        "first-post",
		TitleKey:    "blog.first.title",
		ExcerptKey:  "blog.first.excerpt",
		CategoryKey: "blog.category.news",
		AuthorKey:   "blog.author.admin",
		Tags:        []string{"golang", "web"},
		Status:      model.PostStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("post.ID should not be 0")
	}
	if len(post.Tags) != 2 || post.Tags[0] != "golang" {
		t.Errorf("Tags = %v, want [golang web]", post.Tags)
	}

	bySlug, err := q.GetBlogPostBySlug(ctx, "first-post")
	if err != nil {
		t.Fatalf("GetBlogPostBySlug: %v", err)
	}
	if bySlug.ID != post.ID {
		t.Errorf("ID = %d, want %d", bySlug.ID, post.ID)
	}

	// Draft posts must not show up in a published-only listing.
	published, err := q.ListBlogPosts(ctx, ListBlogPostsParams{
		Status: model.PostStatusPublished, Limit: 10,
	})
	if err != nil {
		t.Fatalf("ListBlogPosts: %v", err)
	}
	if len(published) != 0 {
		t.Errorf("published list has %d posts, want 0", len(published))
	}

	if err := q.PublishBlogPost(ctx, post.ID, now); err != nil {
		t.Fatalf("PublishBlogPost: %v", err)
	}

	published, err = q.ListBlogPosts(ctx, ListBlogPostsParams{
		Status: model.PostStatusPublished, Limit: 10,
	})
	if err != nil {
		t.Fatalf("ListBlogPosts: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("published list has %d posts, want 1", len(published))
	}
	if !published[0].PublishedAt.Valid {
		t.Error("PublishedAt should be set after publishing")
	}

	count, err := q.CountBlogPosts(ctx, ListBlogPostsParams{Status: model.PostStatusPublished})
	if err != nil {
		t.Fatalf("CountBlogPosts: %v", err)
	}
	if count != 1 {
		t.Errorf("CountBlogPosts = %d, want 1", count)
	}

	if err := q.DeleteBlogPost(ctx, post.ID); err != nil {
		t.Fatalf("DeleteBlogPost: %v", err)
	}
	if _, err := q.GetBlogPostByID(ctx, post.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestBlogPostSlugUnique(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	_, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
		Slug: "dup", TitleKey: "a", Status: model.PostStatusDraft,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	_, err = q.CreateBlogPost(ctx, CreateBlogPostParams{
		Slug: "dup", TitleKey: "b", Status: model.PostStatusDraft,
		CreatedAt: now, UpdatedAt: now,
	})
	if err == nil {
		t.Fatal("expected unique constraint error for duplicate slug")
	}
}

func TestListBlogPostsFilters(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	seedPosts := []CreateBlogPostParams{
		{Slug: "go-intro", CategoryKey: "news", Tags: []string{"golang", "web"}},
		{Slug: "annual-report", CategoryKey: "news", Tags: []string{"report"}, PDFLink: "/uploads/report.pdf"},
		{Slug: "event-recap", CategoryKey: "events", Tags: []string{"golang"}},
	}
	for _, p := range seedPosts {
		p.TitleKey = p.Slug
		p.Status = model.PostStatusPublished
		p.CreatedAt = now
		p.UpdatedAt = now
		if _, err := q.CreateBlogPost(ctx, p); err != nil {
			t.Fatalf("CreateBlogPost(%s): %v", p.Slug, err)
		}
	}

	tests := []struct {
		name   string
		params ListBlogPostsParams
		want   []string
	}{
		{"by tag", ListBlogPostsParams{Tag: "golang", Limit: 10}, []string{"go-intro", "event-recap"}},
		{"by category", ListBlogPostsParams{Category: "events", Limit: 10}, []string{"event-recap"}},
		{"pdf only", ListBlogPostsParams{PDFOnly: true, Limit: 10}, []string{"annual-report"}},
		{"tag substring does not match", ListBlogPostsParams{Tag: "go", Limit: 10}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := q.ListBlogPosts(ctx, tt.params)
			if err != nil {
				t.Fatalf("ListBlogPosts: %v", err)
			}
			if len(posts) != len(tt.want) {
				t.Fatalf("got %d posts, want %d: %v", len(posts), len(tt.want), posts)
			}
			got := make(map[string]bool)
			for _, p := range posts {
				got[p.Slug] = true
			}
			for _, slug := range tt.want {
				if !got[slug] {
					t.Errorf("expected slug %q in results", slug)
				}
			}

			count, err := q.CountBlogPosts(ctx, tt.params)
			if err != nil {
				t.Fatalf("CountBlogPosts: %v", err)
			}
			if count != int64(len(tt.want)) {
				t.Errorf("count = %d, want %d", count, len(tt.want))
			}
		})
	}
}

func TestListScheduledBlogPosts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	due, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
		Slug: "due", TitleKey: "due", Status: model.PostStatusDraft,
		CreatedAt: now, UpdatedAt: now,
		ScheduledAt: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	_, err = q.CreateBlogPost(ctx, CreateBlogPostParams{
		Slug: "future", TitleKey: "future", Status: model.PostStatusDraft,
		CreatedAt: now, UpdatedAt: now,
		ScheduledAt: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	posts, err := q.ListScheduledBlogPosts(ctx, now)
	if err != nil {
		t.Fatalf("ListScheduledBlogPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != due.ID {
		t.Errorf("scheduled posts = %v, want only the due one", posts)
	}
}

func TestHeroImageOrdering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	var ids []int64
	for _, url := range []string{"/a.webp", "/b.webp", "/c.webp"} {
		h, err := q.CreateHeroImage(ctx, url, now)
		if err != nil {
			t.Fatalf("CreateHeroImage: %v", err)
		}
		ids = append(ids, h.ID)
	}

	images, err := q.ListHeroImages(ctx)
	if err != nil {
		t.Fatalf("ListHeroImages: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("got %d images, want 3", len(images))
	}
	if images[0].ImageURL != "/a.webp" || images[2].ImageURL != "/c.webp" {
		t.Errorf("unexpected insertion order: %v", images)
	}

	// Reverse the order.
	if err := q.ReorderHeroImages(ctx, []int64{ids[2], ids[1], ids[0]}); err != nil {
		t.Fatalf("ReorderHeroImages: %v", err)
	}
	images, err = q.ListHeroImages(ctx)
	if err != nil {
		t.Fatalf("ListHeroImages: %v", err)
	}
	if images[0].ImageURL != "/c.webp" || images[2].ImageURL != "/a.webp" {
		t.Errorf("unexpected order after reorder: %v", images)
	}

	// Deleting the middle slide keeps the rest in order.
	if err := q.DeleteHeroImage(ctx, ids[1]); err != nil {
		t.Fatalf("DeleteHeroImage: %v", err)
	}
	images, err = q.ListHeroImages(ctx)
	if err != nil {
		t.Fatalf("ListHeroImages: %v", err)
	}
	if len(images) != 2 || images[0].ImageURL != "/c.webp" || images[1].ImageURL != "/a.webp" {
		t.Errorf("unexpected order after delete: %v", images)
	}
}

func TestCalendarEventsRange(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	if _, err := q.CreateCalendarEvent(ctx, CreateCalendarEventParams{
		Title: "Workshop", Date: jan,
	}); err != nil {
		t.Fatalf("CreateCalendarEvent: %v", err)
	}
	if _, err := q.CreateCalendarEvent(ctx, CreateCalendarEventParams{
		Title: "Demo Day", Date: feb, IsHoliday: false,
	}); err != nil {
		t.Fatalf("CreateCalendarEvent: %v", err)
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	events, err := q.ListCalendarEvents(ctx, from, to)
	if err != nil {
		t.Fatalf("ListCalendarEvents: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Workshop" {
		t.Errorf("events in January = %v, want only Workshop", events)
	}
}

func TestDeleteImportedHolidays(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := q.CreateCalendarEvent(ctx, CreateCalendarEventParams{
		Title: "Imported Holiday", Date: day, IsHoliday: true, Imported: true,
	}); err != nil {
		t.Fatalf("CreateCalendarEvent: %v", err)
	}
	// An admin-flagged holiday is not imported and must survive the purge.
	if _, err := q.CreateCalendarEvent(ctx, CreateCalendarEventParams{
		Title: "Libur internal", Date: day, IsHoliday: true,
	}); err != nil {
		t.Fatalf("CreateCalendarEvent: %v", err)
	}
	if _, err := q.CreateCalendarEvent(ctx, CreateCalendarEventParams{
		Title: "Org Event", Date: day,
	}); err != nil {
		t.Fatalf("CreateCalendarEvent: %v", err)
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := q.DeleteImportedHolidays(ctx, from, to); err != nil {
		t.Fatalf("DeleteImportedHolidays: %v", err)
	}

	events, err := q.ListCalendarEvents(ctx, from, to)
	if err != nil {
		t.Fatalf("ListCalendarEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events after purge = %v, want the two authored entries", events)
	}
	for _, e := range events {
		if e.Title == "Imported Holiday" {
			t.Error("imported row should be gone after the purge")
		}
	}
}

func TestProgramChildren(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	prog, err := q.CreateProgram(ctx, CreateProgramParams{
		Slug:      "go-bootcamp",
		Kind:      model.ProgramKindCamp,
		TitleKey:  "program.go_bootcamp.title",
		StartTime: "09:00",
		EndTime:   "16:00",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	topics := []model.Topic{
		{TitleKey: "topic.basics"},
		{TitleKey: "topic.concurrency"},
		{TitleKey: "topic.web"},
	}
	if err := q.ReplaceProgramTopics(ctx, prog.ID, topics); err != nil {
		t.Fatalf("ReplaceProgramTopics: %v", err)
	}

	got, err := q.ListProgramTopics(ctx, prog.ID)
	if err != nil {
		t.Fatalf("ListProgramTopics: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d topics, want 3", len(got))
	}
	for i, topic := range got {
		if topic.OrderIndex != int64(i) {
			t.Errorf("topic %d OrderIndex = %d, want %d", i, topic.OrderIndex, i)
		}
	}

	// Replacing with a shorter list re-sequences from zero.
	if err := q.ReplaceProgramTopics(ctx, prog.ID, topics[1:]); err != nil {
		t.Fatalf("ReplaceProgramTopics: %v", err)
	}
	got, err = q.ListProgramTopics(ctx, prog.ID)
	if err != nil {
		t.Fatalf("ListProgramTopics: %v", err)
	}
	if len(got) != 2 || got[0].OrderIndex != 0 || got[1].OrderIndex != 1 {
		t.Errorf("topics after replace = %v, want dense order from 0", got)
	}

	// Deleting the program cascades to children.
	if err := q.DeleteProgram(ctx, prog.ID); err != nil {
		t.Fatalf("DeleteProgram: %v", err)
	}
	got, err = q.ListProgramTopics(ctx, prog.ID)
	if err != nil {
		t.Fatalf("ListProgramTopics: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("topics after program delete = %v, want none", got)
	}
}

func TestContentBlockUpsert(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	block, err := q.UpsertContentBlock(ctx, model.ContentAbout, "<p>Hi</p>", now)
	if err != nil {
		t.Fatalf("UpsertContentBlock: %v", err)
	}
	if block.HTMLContent != "<p>Hi</p>" {
		t.Errorf("HTMLContent = %q", block.HTMLContent)
	}

	block, err = q.UpsertContentBlock(ctx, model.ContentAbout, "<p>Updated</p>", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("UpsertContentBlock: %v", err)
	}
	if block.HTMLContent != "<p>Updated</p>" {
		t.Errorf("HTMLContent after upsert = %q", block.HTMLContent)
	}

	blocks, err := q.ListContentBlocks(ctx)
	if err != nil {
		t.Fatalf("ListContentBlocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Errorf("got %d blocks, want 1", len(blocks))
	}
}

func TestVideoUpsert(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	v1, err := q.UpsertVideo(ctx, UpsertVideoParams{
		Title:       "Intro",
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		PublishedAt: now,
		CreatedAt:   now,
	})
	if err != nil {
		t.Fatalf("UpsertVideo: %v", err)
	}

	v2, err := q.UpsertVideo(ctx, UpsertVideoParams{
		Title:       "Intro (updated)",
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		PublishedAt: now,
		CreatedAt:   now,
	})
	if err != nil {
		t.Fatalf("UpsertVideo: %v", err)
	}
	if v2.ID != v1.ID {
		t.Errorf("upsert created new row: %d != %d", v2.ID, v1.ID)
	}
	if v2.Title != "Intro (updated)" {
		t.Errorf("Title = %q", v2.Title)
	}

	count, err := q.CountVideos(ctx)
	if err != nil {
		t.Fatalf("CountVideos: %v", err)
	}
	if count != 1 {
		t.Errorf("CountVideos = %d, want 1", count)
	}
}

func TestEventLog(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	if err := q.CreateEvent(ctx, CreateEventParams{
		Level:     model.EventLevelWarning,
		Category:  model.EventCategoryAuth,
		Message:   "failed login",
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := q.CreateEvent(ctx, CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategorySystem,
		Message:   "startup",
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	warnings, err := q.ListEvents(ctx, ListEventsParams{
		Level: model.EventLevelWarning, Limit: 10,
	})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Message != "failed login" {
		t.Errorf("warnings = %v", warnings)
	}

	pruned, err := q.PruneEvents(ctx, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("PruneEvents: %v", err)
	}
	if pruned != 2 {
		t.Errorf("PruneEvents = %d, want 2", pruned)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	admin, err := q.GetUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("admin role = %q, want %q", admin.Role, model.RoleAdmin)
	}

	blocks, err := q.ListContentBlocks(ctx)
	if err != nil {
		t.Fatalf("ListContentBlocks: %v", err)
	}
	if len(blocks) != len(model.KnownContentIDs) {
		t.Errorf("got %d content blocks, want %d", len(blocks), len(model.KnownContentIDs))
	}

	// Seeding twice is a no-op.
	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
}

func TestSeedWithoutAdmin(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db, false); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	if _, err := q.GetUserByEmail(ctx, DefaultAdminEmail); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected no admin user, got err = %v", err)
	}

	blocks, err := q.ListContentBlocks(ctx)
	if err != nil {
		t.Fatalf("ListContentBlocks: %v", err)
	}
	if len(blocks) != len(model.KnownContentIDs) {
		t.Errorf("got %d content blocks, want %d", len(blocks), len(model.KnownContentIDs))
	}
}
