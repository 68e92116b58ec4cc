package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain"
)

// Helper function to create a mock DB and PostgresSource for testing
func newMockDBAndSource(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresSource) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	source := NewPostgresSource(db)
	require.NotNil(t, source)

	return db, mock, source
}

var (
	categoryColumns = []string{"id", "slug", "name"}
	productColumns  = []string{"id", "category_id", "name", "price_cents", "description", "img_src"}
)

func TestPostgresSource_Load(t *testing.T) {
	db, mock, source := newMockDBAndSource(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(int64(1), "polos", "Polos").
			AddRow(int64(3), "mugs", "Mugs"))
	mock.ExpectQuery(regexp.QuoteMeta(listProductsQuery)).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(int64(10), int64(3), "Classic Mug", int64(500), "", "/static/images/mug.png").
			AddRow(int64(11), int64(1), "Logo Polo", int64(1200), "Cotton polo", ""))
	mock.ExpectCommit()

	c, err := source.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Category{
		{ID: 1, Slug: "polos", Name: "Polos"},
		{ID: 3, Slug: "mugs", Name: "Mugs"},
	}, c.Categories)
	require.Len(t, c.Products, 2)
	assert.Equal(t, domain.Product{ID: 10, CategoryID: 3, Name: "Classic Mug", Price: 500, ImgSrc: "/static/images/mug.png"}, c.Products[0])
	assert.Equal(t, "Cotton polo", c.Products[1].Description)

	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresSource_Load_Empty(t *testing.T) {
	db, mock, source := newMockDBAndSource(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).WillReturnRows(sqlmock.NewRows(categoryColumns))
	mock.ExpectQuery(regexp.QuoteMeta(listProductsQuery)).WillReturnRows(sqlmock.NewRows(productColumns))
	mock.ExpectCommit()

	c, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c.Categories)
	assert.NotNil(t, c.Products)
	assert.Empty(t, c.Products)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_CategoryQueryFails(t *testing.T) {
	db, mock, source := newMockDBAndSource(t)
	defer db.Close()

	dbErr := errors.New("connection refused")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).WillReturnError(dbErr)
	mock.ExpectRollback()

	c, err := source.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "store: failed to query categories")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_ProductScanFails(t *testing.T) {
	db, mock, source := newMockDBAndSource(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(int64(3), "mugs", "Mugs"))
	mock.ExpectQuery(regexp.QuoteMeta(listProductsQuery)).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow("not-a-number", int64(3), "Classic Mug", int64(500), "", ""))
	mock.ExpectRollback()

	_, err := source.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store: failed to scan product row")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_RowError(t *testing.T) {
	db, mock, source := newMockDBAndSource(t)
	defer db.Close()

	rowErr := errors.New("server closed the connection unexpectedly")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(int64(1), "polos", "Polos").
			AddRow(int64(3), "mugs", "Mugs").
			RowError(1, rowErr))
	mock.ExpectRollback()

	_, err := source.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, rowErr)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_BeginFails(t *testing.T) {
	db, mock, source := newMockDBAndSource(t)
	defer db.Close()

	beginErr := errors.New("too many connections")
	mock.ExpectBegin().WillReturnError(beginErr)

	c, err := source.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, beginErr)
	assert.Contains(t, err.Error(), "store: failed to begin snapshot transaction")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_CommitFails(t *testing.T) {
	db, mock, source := newMockDBAndSource(t)
	defer db.Close()

	commitErr := errors.New("could not serialize access")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(listCategoriesQuery)).WillReturnRows(sqlmock.NewRows(categoryColumns))
	mock.ExpectQuery(regexp.QuoteMeta(listProductsQuery)).WillReturnRows(sqlmock.NewRows(productColumns))
	mock.ExpectCommit().WillReturnError(commitErr)

	c, err := source.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, commitErr)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Close(t *testing.T) {
	_, mock, source := newMockDBAndSource(t)

	mock.ExpectClose()
	require.NoError(t, source.Close())
	require.NoError(t, mock.ExpectationsWereMet())

	assert.NoError(t, NewPostgresSource(nil).Close())
}
