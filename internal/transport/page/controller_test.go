package page

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository/repositorytest"
	"github.com/abgdnv/productcatalog/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type repoMock = repositorytest.Mock[product.Product]

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

func desk() *product.Product {
	return &product.Product{ID: 2, Name: "Desk", Stock: 1, Color: "oak", Price: decimal.RequireFromString("149.00")}
}

func invalidState() *validation.ModelState {
	state := validation.NewModelState()
	state.AddError("name", "failed on rule: required")
	return state
}

func TestController_Index(t *testing.T) {
	// given
	repo := &repoMock{}
	repo.On("GetAll", mock.Anything).Return([]product.Product{*desk()}, nil).Once()
	c := NewController(repo, discardLogger())

	// when
	res, err := c.Index(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, KindView, res.Kind)
	assert.Equal(t, ViewIndex, res.View)
	assert.Len(t, res.Model, 1)
}

func TestController_Lookups(t *testing.T) {
	type op func(c *Controller, id *int64) (Result, error)
	details := func(c *Controller, id *int64) (Result, error) { return c.Details(context.Background(), id) }
	edit := func(c *Controller, id *int64) (Result, error) { return c.ShowEditForm(context.Background(), id) }
	del := func(c *Controller, id *int64) (Result, error) { return c.ShowDeleteConfirmation(context.Background(), id) }

	testCases := []struct {
		name      string
		call      op
		id        *int64
		setupMock func(m *repoMock)
		wantKind  Kind
		wantView  string
	}{
		{name: "details without id redirects", call: details, id: nil, wantKind: KindRedirect},
		{name: "edit without id redirects", call: edit, id: nil, wantKind: KindRedirect},
		{name: "delete without id is not found", call: del, id: nil, wantKind: KindNotFound},
		{
			name: "details of absent product", call: details, id: ptr(int64(9)),
			setupMock: func(m *repoMock) { m.On("GetByID", mock.Anything, int64(9)).Return(nil, perrors.ErrNotFound).Once() },
			wantKind:  KindNotFound,
		},
		{
			name: "edit of absent product", call: edit, id: ptr(int64(9)),
			setupMock: func(m *repoMock) { m.On("GetByID", mock.Anything, int64(9)).Return(nil, perrors.ErrNotFound).Once() },
			wantKind:  KindNotFound,
		},
		{
			name: "delete of absent product", call: del, id: ptr(int64(9)),
			setupMock: func(m *repoMock) { m.On("GetByID", mock.Anything, int64(9)).Return(nil, perrors.ErrNotFound).Once() },
			wantKind:  KindNotFound,
		},
		{
			name: "details of existing product", call: details, id: ptr(int64(2)),
			setupMock: func(m *repoMock) { m.On("GetByID", mock.Anything, int64(2)).Return(desk(), nil).Once() },
			wantKind:  KindView, wantView: ViewDetails,
		},
		{
			name: "edit of existing product", call: edit, id: ptr(int64(2)),
			setupMock: func(m *repoMock) { m.On("GetByID", mock.Anything, int64(2)).Return(desk(), nil).Once() },
			wantKind:  KindView, wantView: ViewEdit,
		},
		{
			name: "delete of existing product", call: del, id: ptr(int64(2)),
			setupMock: func(m *repoMock) { m.On("GetByID", mock.Anything, int64(2)).Return(desk(), nil).Once() },
			wantKind:  KindView, wantView: ViewDelete,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := &repoMock{}
			if tc.setupMock != nil {
				tc.setupMock(repo)
			}
			c := NewController(repo, discardLogger())

			// when
			res, err := tc.call(c, tc.id)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, res.Kind)
			assert.Equal(t, tc.wantView, res.View)
			if tc.wantKind == KindRedirect {
				assert.Equal(t, "Index", res.Action)
			}
			if tc.wantKind == KindView {
				assert.Equal(t, desk(), res.Model)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestController_Lookup_StorageFailure(t *testing.T) {
	// given
	errDB := errors.New("db down")
	repo := &repoMock{}
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, errDB).Once()
	c := NewController(repo, discardLogger())

	// when
	_, err := c.Details(context.Background(), ptr(int64(2)))

	// then
	require.ErrorIs(t, err, errDB)
}

func TestController_ShowCreateForm(t *testing.T) {
	// given
	c := NewController(&repoMock{}, discardLogger())

	// when
	res, err := c.ShowCreateForm(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, KindView, res.Kind)
	assert.Equal(t, ViewCreate, res.View)
	assert.Equal(t, &product.Product{}, res.Model)
	assert.True(t, res.State.IsValid())
}

func TestController_SubmitCreate(t *testing.T) {
	testCases := []struct {
		name        string
		state       *validation.ModelState
		wantKind    Kind
		wantCreates int
	}{
		{name: "invalid model shows the form again", state: invalidState(), wantKind: KindView, wantCreates: 0},
		{name: "valid model is stored", state: validation.NewModelState(), wantKind: KindRedirect, wantCreates: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := &repoMock{}
			submitted := &product.Product{Name: "Stool", Stock: 2}
			repo.On("Create", mock.Anything, submitted).Return(nil).Maybe()
			c := NewController(repo, discardLogger())

			// when
			res, err := c.SubmitCreate(context.Background(), submitted, tc.state)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, res.Kind)
			repo.AssertNumberOfCalls(t, "Create", tc.wantCreates)
			if tc.wantKind == KindView {
				assert.Equal(t, ViewCreate, res.View)
				assert.Same(t, submitted, res.Model)
				assert.Same(t, tc.state, res.State)
			} else {
				assert.Equal(t, ActionIndex, res.Action)
			}
		})
	}
}

func TestController_SubmitEdit(t *testing.T) {
	testCases := []struct {
		name        string
		routeID     int64
		body        *product.Product
		state       *validation.ModelState
		wantKind    Kind
		wantUpdates int
	}{
		{
			name:     "mismatched ids are not found",
			routeID:  3,
			body:     desk(),
			state:    validation.NewModelState(),
			wantKind: KindNotFound,
		},
		{
			name:     "invalid model shows the form again",
			routeID:  2,
			body:     desk(),
			state:    invalidState(),
			wantKind: KindView,
		},
		{
			name:        "valid model is updated",
			routeID:     2,
			body:        desk(),
			state:       validation.NewModelState(),
			wantKind:    KindRedirect,
			wantUpdates: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := &repoMock{}
			repo.On("Update", mock.Anything, tc.body).Return(nil).Maybe()
			c := NewController(repo, discardLogger())

			// when
			res, err := c.SubmitEdit(context.Background(), tc.routeID, tc.body, tc.state)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, res.Kind)
			repo.AssertNumberOfCalls(t, "Update", tc.wantUpdates)
			if tc.wantKind == KindView {
				assert.Equal(t, ViewEdit, res.View)
				assert.Same(t, tc.body, res.Model)
			}
		})
	}
}

func TestController_ConfirmDelete(t *testing.T) {
	testCases := []struct {
		name        string
		found       *product.Product
		wantDeletes int
	}{
		{name: "existing product is deleted", found: desk(), wantDeletes: 1},
		{name: "absent product still redirects", found: nil, wantDeletes: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := &repoMock{}
			if tc.found != nil {
				repo.On("GetByID", mock.Anything, int64(2)).Return(tc.found, nil).Once()
				repo.On("Delete", mock.Anything, tc.found).Return(nil).Once()
			} else {
				repo.On("GetByID", mock.Anything, int64(2)).Return(nil, perrors.ErrNotFound).Once()
			}
			c := NewController(repo, discardLogger())

			// when
			res, err := c.ConfirmDelete(context.Background(), 2)

			// then
			require.NoError(t, err)
			assert.Equal(t, KindRedirect, res.Kind)
			assert.Equal(t, "Index", res.Action)
			repo.AssertNumberOfCalls(t, "Delete", tc.wantDeletes)
			repo.AssertExpectations(t)
		})
	}
}
