package closet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/renaqiu/stylematch/pkg/errors"
)

type stubRepository struct {
	items      []WardrobeItem
	listErr    error
	insertErr  error
	deleteErr  error
	similar    SimilarityMatch
	hasSimilar bool
	similarErr error
	inserted   []WardrobeItem
	deleted    []uuid.UUID
}

func (r *stubRepository) List(ctx context.Context) ([]WardrobeItem, error) {
	return r.items, r.listErr
}

func (r *stubRepository) Insert(ctx context.Context, item WardrobeItem) (WardrobeItem, error) {
	if r.insertErr != nil {
		return WardrobeItem{}, r.insertErr
	}
	r.inserted = append(r.inserted, item)
	return item, nil
}

func (r *stubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRepository) FindSimilar(ctx context.Context, vector []float32) (SimilarityMatch, bool, error) {
	return r.similar, r.hasSimilar, r.similarErr
}

type stubImageStore struct {
	putKeys     []string
	deletedKeys []string
	putErr      error
}

func (s *stubImageStore) Put(ctx context.Context, key string, data []byte, mimeType string) (StoredImage, error) {
	if s.putErr != nil {
		return StoredImage{}, s.putErr
	}
	s.putKeys = append(s.putKeys, key)
	return StoredImage{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (s *stubImageStore) Delete(ctx context.Context, key string) error {
	s.deletedKeys = append(s.deletedKeys, key)
	return nil
}

func newTestService(repo Repository, images ImageStore) Service {
	return NewService(Config{SimilarityThreshold: 0.3}, repo, images, newTestLogger())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAddItemStoresImageAndItem(t *testing.T) {
	repo := &stubRepository{}
	images := &stubImageStore{}
	svc := newTestService(repo, images)

	result, err := svc.AddItem(context.Background(), AddItemRequest{
		Category:  "tops",
		Colors:    []Color{{Hex: "#ffffff", Name: "white"}},
		StyleTags: []string{"casual"},
		ImageData: []byte("fake-jpeg"),
		ImageMime: "image/jpeg",
	})
	require.NoError(t, err)
	require.Equal(t, CategoryTops, result.Item.Category)
	require.NotEqual(t, uuid.Nil, result.Item.ID)
	require.NotEmpty(t, result.Item.ImageKey)
	require.Nil(t, result.SimilarOwned)
	require.Len(t, repo.inserted, 1)
	require.Len(t, images.putKeys, 1)
}

func TestAddItemFlagsSimilarOwned(t *testing.T) {
	owned := WardrobeItem{ID: uuid.New(), Category: CategoryTops, AddedAt: time.Now()}
	repo := &stubRepository{
		similar:    SimilarityMatch{Item: owned, Distance: 0.1},
		hasSimilar: true,
	}
	svc := newTestService(repo, &stubImageStore{})

	result, err := svc.AddItem(context.Background(), AddItemRequest{
		Category:    "tops",
		Colors:      []Color{{Hex: "#fefefe", Name: "white"}},
		ColorVector: []float32{0.1, 0.2, 0.3},
	})
	require.NoError(t, err)
	require.NotNil(t, result.SimilarOwned)
	require.Equal(t, owned.ID, result.SimilarOwned.ID)
	require.Equal(t, 0.1, result.Distance)
	// A likely duplicate is a warning, not a rejection.
	require.Len(t, repo.inserted, 1)
}

func TestAddItemIgnoresDistantSimilar(t *testing.T) {
	repo := &stubRepository{
		similar:    SimilarityMatch{Item: WardrobeItem{ID: uuid.New()}, Distance: 0.9},
		hasSimilar: true,
	}
	svc := newTestService(repo, &stubImageStore{})

	result, err := svc.AddItem(context.Background(), AddItemRequest{
		Category:    "shoes",
		Colors:      []Color{{Hex: "#000000", Name: "black"}},
		ColorVector: []float32{0.5, 0.5},
	})
	require.NoError(t, err)
	require.Nil(t, result.SimilarOwned)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	svc := newTestService(&stubRepository{}, &stubImageStore{})

	_, err := svc.AddItem(context.Background(), AddItemRequest{Category: "hats", Colors: []Color{{Hex: "#000000"}}})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.AddItem(context.Background(), AddItemRequest{Category: "tops"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestSnapshotWrapsRepositoryError(t *testing.T) {
	repo := &stubRepository{listErr: errors.New("connection refused")}
	svc := newTestService(repo, &stubImageStore{})

	_, err := svc.Snapshot(context.Background())
	require.True(t, apperrors.IsCode(err, "wardrobe_error"))
}

func TestRemoveItem(t *testing.T) {
	repo := &stubRepository{}
	svc := newTestService(repo, &stubImageStore{})

	id := uuid.New()
	require.NoError(t, svc.RemoveItem(context.Background(), id))
	require.Equal(t, []uuid.UUID{id}, repo.deleted)

	repo.deleteErr = errors.New("gone")
	err := svc.RemoveItem(context.Background(), uuid.New())
	require.True(t, apperrors.IsCode(err, "wardrobe_error"))
}

func TestRemoveItemCleansUpPhoto(t *testing.T) {
	id := uuid.New()
	repo := &stubRepository{items: []WardrobeItem{{ID: id, Category: CategoryTops, ImageKey: "closet/tops/" + id.String()}}}
	images := &stubImageStore{}
	svc := newTestService(repo, images)

	require.NoError(t, svc.RemoveItem(context.Background(), id))
	require.Equal(t, []string{"closet/tops/" + id.String()}, images.deletedKeys)
}
