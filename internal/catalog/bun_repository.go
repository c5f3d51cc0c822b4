package catalog

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/uptrace/bun"
)

var errBunDatabaseRequired = errors.New("catalog: bun repository requires a database")

// BunRepository persists post summaries using a Bun-backed database.
type BunRepository struct {
	db          *bun.DB
	broadcaster *changeBroadcaster
}

// NewBunRepository constructs a Bun-backed repository. Call Migrate before
// first use on a fresh database.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		broadcaster: newChangeBroadcaster(),
	}
}

// Migrate creates the posts table when it does not exist.
func (r *BunRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*postModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Upsert creates or updates the summary stored under post.Slug.
func (r *BunRepository) Upsert(ctx context.Context, post PostSummary) (PostSummary, error) {
	if r.db == nil {
		return PostSummary{}, errBunDatabaseRequired
	}

	var existing postModel
	err := r.db.NewSelect().Model(&existing).Where("slug = ?", post.Slug).Scan(ctx)
	created := false
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return PostSummary{}, err
		}
		created = true
	}

	if !created && modelToSummary(&existing).equal(post) {
		return post, nil
	}

	model := modelFromSummary(post)
	model.IndexedAt = time.Now().UTC()

	if created {
		if _, err := r.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return PostSummary{}, err
		}
	} else {
		if _, err := r.db.NewUpdate().Model(&model).WherePK().Exec(ctx); err != nil {
			return PostSummary{}, err
		}
	}

	stored, err := r.Get(ctx, post.Slug)
	if err != nil {
		return PostSummary{}, err
	}

	eventType := ChangeUpdated
	if created {
		eventType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(eventType, stored.Slug))
	return stored, nil
}

// Get returns the summary stored for slug or ErrPostNotFound.
func (r *BunRepository) Get(ctx context.Context, slug string) (PostSummary, error) {
	if r.db == nil {
		return PostSummary{}, errBunDatabaseRequired
	}
	var model postModel
	if err := r.db.NewSelect().Model(&model).Where("slug = ?", slug).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PostSummary{}, ErrPostNotFound
		}
		return PostSummary{}, err
	}
	return modelToSummary(&model), nil
}

// List returns every stored summary, newest first.
func (r *BunRepository) List(ctx context.Context) ([]PostSummary, error) {
	if r.db == nil {
		return nil, errBunDatabaseRequired
	}
	var models []postModel
	if err := r.db.NewSelect().Model(&models).Order("published_at DESC", "slug ASC").Scan(ctx); err != nil {
		return nil, err
	}
	posts := make([]PostSummary, 0, len(models))
	for i := range models {
		posts = append(posts, modelToSummary(&models[i]))
	}
	return posts, nil
}

// Delete removes the summary stored for slug.
func (r *BunRepository) Delete(ctx context.Context, slug string) error {
	if r.db == nil {
		return errBunDatabaseRequired
	}
	result, err := r.db.NewDelete().Model((*postModel)(nil)).Where("slug = ?", slug).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrPostNotFound
	}
	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, slug))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

type postModel struct {
	bun.BaseModel `bun:"table:catalog_posts"`

	Slug         string    `bun:"slug,pk"`
	FilePath     string    `bun:"file_path"`
	Title        string    `bun:"title"`
	Excerpt      string    `bun:"excerpt"`
	Category     string    `bun:"category"`
	CategorySlug string    `bun:"category_slug"`
	Tags         []string  `bun:"tags,type:json"`
	PublishedAt  string    `bun:"published_at"`
	ReadingTime  int       `bun:"reading_time"`
	WordCount    int       `bun:"word_count"`
	CoverImage   string    `bun:"cover_image"`
	Featured     bool      `bun:"featured"`
	Draft        bool      `bun:"draft"`
	Checksum     string    `bun:"checksum"`
	IndexedAt    time.Time `bun:"indexed_at"`
}

func modelFromSummary(post PostSummary) postModel {
	return postModel{
		Slug:         post.Slug,
		FilePath:     post.FilePath,
		Title:        post.Title,
		Excerpt:      post.Excerpt,
		Category:     post.Category,
		CategorySlug: post.CategorySlug,
		Tags:         slices.Clone(post.Tags),
		PublishedAt:  post.PublishedAt,
		ReadingTime:  post.ReadingTime,
		WordCount:    post.WordCount,
		CoverImage:   post.CoverImage,
		Featured:     post.Featured,
		Draft:        post.Draft,
		Checksum:     post.Checksum,
	}
}

func modelToSummary(model *postModel) PostSummary {
	if model == nil {
		return PostSummary{}
	}
	tags := model.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostSummary{
		Slug:         model.Slug,
		FilePath:     model.FilePath,
		Title:        model.Title,
		Excerpt:      model.Excerpt,
		Category:     model.Category,
		CategorySlug: model.CategorySlug,
		Tags:         tags,
		PublishedAt:  model.PublishedAt,
		ReadingTime:  model.ReadingTime,
		WordCount:    model.WordCount,
		CoverImage:   model.CoverImage,
		Featured:     model.Featured,
		Draft:        model.Draft,
		Checksum:     model.Checksum,
	}
}
