package announcement

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/search"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

// MockAnnouncementRepo is a mock implementation of AnnouncementRepo.
type MockAnnouncementRepo struct {
	mock.Mock
}

func (m *MockAnnouncementRepo) Search(ctx context.Context, p search.Predicate, page search.Pageable) (search.Page[types.Announcement], error) {
	args := m.Called(ctx, p, page)
	return args.Get(0).(search.Page[types.Announcement]), args.Error(1)
}

func (m *MockAnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAnnouncementRepo) CreateReport(ctx context.Context, report types.Report) (*types.Report, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Report), args.Error(1)
}

func (m *MockAnnouncementRepo) AddImage(ctx context.Context, image types.Image) (*types.Image, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Image), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyReport(ctx context.Context, a *types.Announcement, report *types.Report) error {
	return m.Called(ctx, a, report).Error(0)
}

type serviceFixture struct {
	repo     *MockAnnouncementRepo
	images   *MockImageStore
	notifier *MockNotifier
	service  *AnnouncementServiceImpl
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:     new(MockAnnouncementRepo),
		images:   new(MockImageStore),
		notifier: new(MockNotifier),
	}
	f.service = NewAnnouncementService(f.repo, f.images, f.notifier, slog.Default())
	return f
}

func TestAnnouncementService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("PassesCompiledPredicate", func(t *testing.T) {
		f := newServiceFixture()
		page := search.DefaultPageable(search.FamilyAnnouncement)
		want := search.Page[types.Announcement]{Items: []types.Announcement{sampleAnnouncement()}, Total: 1}
		f.repo.On("Search", mock.Anything, mock.MatchedBy(func(p search.Predicate) bool {
			return p.Family() == search.FamilyAnnouncement && p.Len() == 3
		}), page).Return(want, nil).Once()

		got, err := f.service.Search(ctx, search.AnnouncementCriteria{
			StartPrice: search.Ptr(100.0),
			City:       search.Ptr("Porto"),
		}, page)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		f.repo.AssertExpectations(t)
	})

	t.Run("InvertedRangeNeverReachesRepo", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.service.Search(ctx, search.AnnouncementCriteria{
			StartArea: search.Ptr(90.0),
			EndArea:   search.Ptr(10.0),
		}, search.DefaultPageable(search.FamilyAnnouncement))

		var rangeErr *search.RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.ErrorIs(t, err, api.ErrValidation)
		f.repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RepoFailure", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.On("Search", mock.Anything, mock.Anything, mock.Anything).
			Return(search.Page[types.Announcement]{}, errors.New("pool closed")).Once()
		_, err := f.service.Search(ctx, search.AnnouncementCriteria{}, search.DefaultPageable(search.FamilyAnnouncement))
		require.Error(t, err)
		assert.Equal(t, 500, api.StatusFor(err))
	})
}

func TestAnnouncementService_Report(t *testing.T) {
	ctx := context.Background()
	a := sampleAnnouncement()
	reporter := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newServiceFixture()
		created := &types.Report{ID: uuid.New(), AnnouncementID: a.ID, ReporterID: reporter, Reason: "duplicate"}
		f.repo.On("GetByID", mock.Anything, a.ID).Return(&a, nil).Once()
		f.repo.On("CreateReport", mock.Anything, types.Report{AnnouncementID: a.ID, ReporterID: reporter, Reason: "duplicate"}).
			Return(created, nil).Once()
		f.notifier.On("NotifyReport", mock.Anything, &a, created).Return(nil).Once()

		got, err := f.service.Report(ctx, a.ID, reporter, "  duplicate ")
		require.NoError(t, err)
		assert.Equal(t, created, got)
		f.repo.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("MailFailureDoesNotFailReport", func(t *testing.T) {
		f := newServiceFixture()
		created := &types.Report{ID: uuid.New()}
		f.repo.On("GetByID", mock.Anything, a.ID).Return(&a, nil).Once()
		f.repo.On("CreateReport", mock.Anything, mock.Anything).Return(created, nil).Once()
		f.notifier.On("NotifyReport", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		_, err := f.service.Report(ctx, a.ID, reporter, "spam")
		assert.NoError(t, err)
	})

	t.Run("Validation", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.service.Report(ctx, a.ID, reporter, "   ")
		assert.ErrorIs(t, err, api.ErrValidation)
		_, err = f.service.Report(ctx, a.ID, reporter, strings.Repeat("x", maxReportReason+1))
		assert.ErrorIs(t, err, api.ErrValidation)
		f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("UnknownAnnouncement", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.On("GetByID", mock.Anything, a.ID).Return(nil, api.ErrNotFound).Once()
		_, err := f.service.Report(ctx, a.ID, reporter, "spam")
		assert.ErrorIs(t, err, api.ErrNotFound)
		f.repo.AssertNotCalled(t, "CreateReport", mock.Anything, mock.Anything)
	})
}

func TestAnnouncementService_UploadImage(t *testing.T) {
	ctx := context.Background()
	a := sampleAnnouncement()
	upload := func() ImageUpload {
		return ImageUpload{Filename: "Front.JPG", ContentType: "image/jpeg", Size: 3, Body: bytes.NewReader([]byte{1, 2, 3})}
	}
	keyPrefix := "announcements/" + a.ID.String() + "/"

	t.Run("AuthorUploads", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.On("GetByID", mock.Anything, a.ID).Return(&a, nil).Once()
		f.images.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, keyPrefix) && strings.HasSuffix(key, ".jpg")
		}), mock.Anything, int64(3), "image/jpeg").Return("http://minio/x.jpg", nil).Once()
		saved := &types.Image{ID: uuid.New(), AnnouncementID: a.ID, URL: "http://minio/x.jpg"}
		f.repo.On("AddImage", mock.Anything, mock.MatchedBy(func(img types.Image) bool {
			return img.AnnouncementID == a.ID && img.URL == "http://minio/x.jpg"
		})).Return(saved, nil).Once()

		got, err := f.service.UploadImage(ctx, a.ID, a.Author.ID, upload())
		require.NoError(t, err)
		assert.Equal(t, saved, got)
		f.images.AssertExpectations(t)
	})

	t.Run("OtherUserForbidden", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.On("GetByID", mock.Anything, a.ID).Return(&a, nil).Once()
		_, err := f.service.UploadImage(ctx, a.ID, uuid.New(), upload())
		assert.ErrorIs(t, err, api.ErrForbidden)
		f.images.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		f := newServiceFixture()
		u := upload()
		u.ContentType = "application/pdf"
		_, err := f.service.UploadImage(ctx, a.ID, a.Author.ID, u)
		assert.ErrorIs(t, err, api.ErrValidation)
	})

	t.Run("DatabaseFailureRemovesObject", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.On("GetByID", mock.Anything, a.ID).Return(&a, nil).Once()
		f.images.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("http://minio/x.jpg", nil).Once()
		f.repo.On("AddImage", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once()
		f.images.On("Remove", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, keyPrefix)
		})).Return(nil).Once()

		_, err := f.service.UploadImage(ctx, a.ID, a.Author.ID, upload())
		require.Error(t, err)
		f.images.AssertExpectations(t)
	})
}

func TestObjectKey(t *testing.T) {
	id := uuid.New()
	k1 := ObjectKey(id, "house.PNG")
	k2 := ObjectKey(id, "house.PNG")
	assert.True(t, strings.HasPrefix(k1, "announcements/"+id.String()+"/"))
	assert.True(t, strings.HasSuffix(k1, ".png"))
	assert.NotEqual(t, k1, k2)
}
