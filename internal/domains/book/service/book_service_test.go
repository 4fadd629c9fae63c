package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository giữ books và hai bảng ref trong memory,
// validate refs giống semantics của bản Postgres.
type memoryRepository struct {
	items      map[uuid.UUID]book.Book
	categories map[uuid.UUID]book.CategoryRef
	authors    map[uuid.UUID]book.AuthorRef
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		items:      make(map[uuid.UUID]book.Book),
		categories: make(map[uuid.UUID]book.CategoryRef),
		authors:    make(map[uuid.UUID]book.AuthorRef),
	}
}

func (m *memoryRepository) addCategory(name string) uuid.UUID {
	id := uuid.New()
	m.categories[id] = book.CategoryRef{ID: id, Name: name}
	return id
}

func (m *memoryRepository) addAuthor(name, avatar string) uuid.UUID {
	id := uuid.New()
	m.authors[id] = book.AuthorRef{ID: id, Name: name, Avatar: avatar}
	return id
}

func (m *memoryRepository) validateRefs(entity *book.Book) error {
	for _, id := range entity.Categories {
		if _, ok := m.categories[id]; !ok {
			return book.ErrCategoryRefMissing
		}
	}
	for _, id := range entity.Authors {
		if _, ok := m.authors[id]; !ok {
			return book.ErrAuthorRefMissing
		}
	}
	return nil
}

func (m *memoryRepository) Create(_ context.Context, entity *book.Book) (*book.Book, error) {
	if err := m.validateRefs(entity); err != nil {
		return nil, err
	}
	m.items[entity.ID] = *entity
	stored := m.items[entity.ID]
	return &stored, nil
}

func (m *memoryRepository) GetAll(_ context.Context) ([]book.Book, error) {
	out := make([]book.Book, 0, len(m.items))
	for _, b := range m.items {
		out = append(out, b)
	}
	return out, nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*book.Book, error) {
	for _, b := range m.items {
		if b.Slug == slug {
			found := b
			return &found, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (m *memoryRepository) Update(_ context.Context, entity *book.Book) (*book.Book, error) {
	if err := m.validateRefs(entity); err != nil {
		return nil, err
	}
	if _, ok := m.items[entity.ID]; !ok {
		return nil, book.ErrBookNotFound
	}
	m.items[entity.ID] = *entity
	stored := m.items[entity.ID]
	return &stored, nil
}

func (m *memoryRepository) DeleteBySlug(_ context.Context, slug string) (*book.Book, error) {
	for id, b := range m.items {
		if b.Slug == slug {
			deleted := b
			delete(m.items, id)
			return &deleted, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (m *memoryRepository) CategoryRefs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]book.CategoryRef, error) {
	refs := make(map[uuid.UUID]book.CategoryRef)
	for _, id := range ids {
		if ref, ok := m.categories[id]; ok {
			refs[id] = ref
		}
	}
	return refs, nil
}

func (m *memoryRepository) AuthorRefs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]book.AuthorRef, error) {
	refs := make(map[uuid.UUID]book.AuthorRef)
	for _, id := range ids {
		if ref, ok := m.authors[id]; ok {
			refs[id] = ref
		}
	}
	return refs, nil
}

func (m *memoryRepository) NextAvailableSlug(_ context.Context, base string, excludeID uuid.UUID) (string, error) {
	var taken []string
	for id, b := range m.items {
		if id == excludeID {
			continue
		}
		if b.Slug == base || strings.HasPrefix(b.Slug, base+"-") {
			taken = append(taken, b.Slug)
		}
	}
	return utils.ResolveSlugCollision(base, taken), nil
}

type memoryStore struct {
	blobs   map[string][]byte
	failing bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{blobs: make(map[string][]byte)}
}

func (s *memoryStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.failing {
		return "", errors.New("store unavailable")
	}
	s.blobs[key] = data
	return "http://store.local/" + key, nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}

func (s *memoryStore) DeleteByPrefix(_ context.Context, prefix string) error {
	for key := range s.blobs {
		if strings.HasPrefix(key, prefix) {
			delete(s.blobs, key)
		}
	}
	return nil
}

func pngFile(t *testing.T, name string) *shared.UploadFile {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return &shared.UploadFile{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}

func TestBookCreate(t *testing.T) {
	repo := newMemoryRepository()
	catID := repo.addCategory("Tâm Lí")
	authID := repo.addAuthor("Dale Carnegie", "")
	svc := NewBookService(repo, newMemoryStore())

	created, err := svc.Create(context.Background(), &book.CreateBookReq{
		Name:        "Đắc Nhân Tâm",
		Categories:  []uuid.UUID{catID},
		Authors:     []uuid.UUID{authID},
		Description: "Kỹ năng sống",
	})
	require.NoError(t, err)

	assert.Equal(t, "Đắc Nhân Tâm", created.Name)
	assert.Equal(t, "dac-nhan-tam", created.Slug)
	assert.Equal(t, []uuid.UUID{catID}, created.Categories)
	assert.Equal(t, []uuid.UUID{authID}, created.Authors)
	assert.WithinDuration(t, time.Now(), created.Release, time.Minute)
}

func TestBookCreateMissingName(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())

	_, err := svc.Create(context.Background(), &book.CreateBookReq{Name: ""})
	assert.ErrorIs(t, err, book.ErrMissingName)
}

func TestBookCreateUnknownCategory(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewBookService(repo, newMemoryStore())

	_, err := svc.Create(context.Background(), &book.CreateBookReq{
		Name:       "Đắc Nhân Tâm",
		Categories: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, book.ErrCategoryRefMissing)
	assert.Empty(t, repo.items)
}

func TestBookCreateUnknownAuthorCleansUploadedImages(t *testing.T) {
	repo := newMemoryRepository()
	store := newMemoryStore()
	svc := NewBookService(repo, store)

	_, err := svc.Create(context.Background(), &book.CreateBookReq{
		Name:    "Đắc Nhân Tâm",
		Authors: []uuid.UUID{uuid.New()},
		Images:  []*shared.UploadFile{pngFile(t, "cover.png")},
	})
	assert.ErrorIs(t, err, book.ErrAuthorRefMissing)

	// blobs đã upload trước khi refs fail phải được dọn
	assert.Empty(t, store.blobs)
}

func TestBookCreateImagesKeepUploadOrder(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewBookService(repo, newMemoryStore())

	created, err := svc.Create(context.Background(), &book.CreateBookReq{
		Name: "Sách Ảnh",
		Images: []*shared.UploadFile{
			pngFile(t, "one.png"),
			pngFile(t, "two.png"),
			pngFile(t, "three.png"),
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Images, 3)

	// mỗi URL phải nằm dưới prefix của book
	for _, url := range created.Images {
		assert.Contains(t, url, "books/"+created.ID.String()+"/")
	}
}

func TestBookCreateExplicitRelease(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())

	release := time.Date(1936, 10, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), &book.CreateBookReq{
		Name:    "Đắc Nhân Tâm",
		Release: &release,
	})
	require.NoError(t, err)
	assert.True(t, created.Release.Equal(release))
}

func TestBookUpdatePartialMerge(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewBookService(repo, newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{
		Name:        "Đắc Nhân Tâm",
		Description: "Bản cũ",
	})
	require.NoError(t, err)

	desc := "Bản mới"
	updated, err := svc.UpdateBySlug(ctx, "dac-nhan-tam", &book.UpdateBookReq{Description: &desc})
	require.NoError(t, err)

	// chỉ description đổi, mọi thứ khác giữ nguyên
	assert.Equal(t, "Đắc Nhân Tâm", updated.Name)
	assert.Equal(t, "dac-nhan-tam", updated.Slug)
	assert.Equal(t, "Bản mới", updated.Description)
}

func TestBookUpdateRenameRegeneratesSlug(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{Name: "Đắc Nhân Tâm"})
	require.NoError(t, err)

	newName := "Quẳng Gánh Lo Đi"
	updated, err := svc.UpdateBySlug(ctx, "dac-nhan-tam", &book.UpdateBookReq{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "quang-ganh-lo-di", updated.Slug)
}

func TestBookUpdateExplicitSlugWins(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{Name: "Đắc Nhân Tâm"})
	require.NoError(t, err)

	newName := "Quẳng Gánh Lo Đi"
	slug := "custom-slug"
	updated, err := svc.UpdateBySlug(ctx, "dac-nhan-tam", &book.UpdateBookReq{Name: &newName, Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", updated.Slug)
}

func TestBookUpdateReplacesRefsWholesale(t *testing.T) {
	repo := newMemoryRepository()
	cat1 := repo.addCategory("Tâm Lí")
	cat2 := repo.addCategory("Kỹ Năng")
	svc := NewBookService(repo, newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{
		Name:       "Đắc Nhân Tâm",
		Categories: []uuid.UUID{cat1},
	})
	require.NoError(t, err)

	newCats := []uuid.UUID{cat2}
	updated, err := svc.UpdateBySlug(ctx, "dac-nhan-tam", &book.UpdateBookReq{Categories: &newCats})
	require.NoError(t, err)

	// replace nguyên mảng, cat1 không còn
	assert.Equal(t, []uuid.UUID{cat2}, updated.Categories)
}

func TestBookUpdateUnknownRefRejected(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewBookService(repo, newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{Name: "Đắc Nhân Tâm"})
	require.NoError(t, err)

	ghost := []uuid.UUID{uuid.New()}
	_, err = svc.UpdateBySlug(ctx, "dac-nhan-tam", &book.UpdateBookReq{Authors: &ghost})
	assert.ErrorIs(t, err, book.ErrAuthorRefMissing)
}

func TestBookUpdateImageReplacement(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewBookService(repo, newMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, &book.CreateBookReq{
		Name: "Sách Ảnh",
		Images: []*shared.UploadFile{
			pngFile(t, "one.png"),
			pngFile(t, "two.png"),
			pngFile(t, "three.png"),
		},
	})
	require.NoError(t, err)
	original := created.Images

	// thay ảnh vị trí 0 và 2, file thứ ba dư ra được append
	updated, err := svc.UpdateBySlug(ctx, "sach-anh", &book.UpdateBookReq{
		ReplaceIndexes: []int{0, 2},
		Images: []*shared.UploadFile{
			pngFile(t, "new-one.png"),
			pngFile(t, "new-three.png"),
			pngFile(t, "extra.png"),
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Images, 4)
	assert.NotEqual(t, original[0], updated.Images[0])
	assert.Equal(t, original[1], updated.Images[1])
	assert.NotEqual(t, original[2], updated.Images[2])
}

func TestBookUpdateFilesWithoutIndexesLeaveImagesUntouched(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, &book.CreateBookReq{
		Name:   "Sách Ảnh",
		Images: []*shared.UploadFile{pngFile(t, "one.png")},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBySlug(ctx, "sach-anh", &book.UpdateBookReq{
		Images: []*shared.UploadFile{pngFile(t, "ignored.png")},
	})
	require.NoError(t, err)

	// không có replaceIndexes thì protocol không chạy
	assert.Equal(t, created.Images, updated.Images)
}

func TestBookUpdateOutOfBoundsIndexIgnored(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, &book.CreateBookReq{
		Name:   "Sách Ảnh",
		Images: []*shared.UploadFile{pngFile(t, "one.png")},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBySlug(ctx, "sach-anh", &book.UpdateBookReq{
		ReplaceIndexes: []int{7},
		Images:         []*shared.UploadFile{pngFile(t, "new.png")},
	})
	require.NoError(t, err)

	assert.Equal(t, created.Images, updated.Images)
}

func TestBookUpdateNotFound(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())

	name := "Bất kỳ"
	_, err := svc.UpdateBySlug(context.Background(), "khong-ton-tai", &book.UpdateBookReq{Name: &name})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookDelete(t *testing.T) {
	repo := newMemoryRepository()
	store := newMemoryStore()
	svc := NewBookService(repo, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{
		Name:   "Đắc Nhân Tâm",
		Images: []*shared.UploadFile{pngFile(t, "cover.png")},
	})
	require.NoError(t, err)
	require.Len(t, store.blobs, 1)

	require.NoError(t, svc.DeleteBySlug(ctx, "dac-nhan-tam"))

	// document biến mất và blobs được dọn
	_, err = svc.GetBySlug(ctx, "dac-nhan-tam")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Empty(t, store.blobs)
}

func TestBookDeleteNotFound(t *testing.T) {
	svc := NewBookService(newMemoryRepository(), newMemoryStore())

	err := svc.DeleteBySlug(context.Background(), "khong-ton-tai")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookListPopulatesRefs(t *testing.T) {
	repo := newMemoryRepository()
	catID := repo.addCategory("Tâm Lí")
	authID := repo.addAuthor("Dale Carnegie", "http://store.local/avatar.png")
	svc := NewBookService(repo, newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{
		Name:       "Đắc Nhân Tâm",
		Categories: []uuid.UUID{catID},
		Authors:    []uuid.UUID{authID},
	})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Len(t, list[0].Categories, 1)
	assert.Equal(t, "Tâm Lí", list[0].Categories[0].Name)
	require.Len(t, list[0].Authors, 1)
	assert.Equal(t, "Dale Carnegie", list[0].Authors[0].Name)
}

func TestBookDetailIncludesAuthorAvatar(t *testing.T) {
	repo := newMemoryRepository()
	authID := repo.addAuthor("Dale Carnegie", "http://store.local/avatar.png")
	svc := NewBookService(repo, newMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &book.CreateBookReq{
		Name:    "Đắc Nhân Tâm",
		Authors: []uuid.UUID{authID},
	})
	require.NoError(t, err)

	detail, err := svc.GetBySlug(ctx, "dac-nhan-tam")
	require.NoError(t, err)
	require.Len(t, detail.Authors, 1)
	assert.Equal(t, "http://store.local/avatar.png", detail.Authors[0].Avatar)
}
