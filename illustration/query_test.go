package illustration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/gallery/gallery"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name                 string
		page, limit, by, dir string
		want                 Query
		wantErr              bool
	}{
		{name: "defaults", want: Query{Page: 1, Limit: 10, SortBy: "created_at", SortDirection: "desc"}},
		{name: "explicit", page: "3", limit: "9", by: "title", dir: "asc", want: Query{Page: 3, Limit: 9, SortBy: "title", SortDirection: "asc"}},
		{name: "limit capped", limit: "1000", want: Query{Page: 1, Limit: 100, SortBy: "created_at", SortDirection: "desc"}},
		{name: "page not a number", page: "two", wantErr: true},
		{name: "page zero", page: "0", wantErr: true},
		{name: "negative limit", limit: "-5", wantErr: true},
		{name: "unknown sort column", by: "file_path", wantErr: true},
		{name: "unknown direction", dir: "sideways", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.page, tt.limit, tt.by, tt.dir)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryWindow(t *testing.T) {
	q := Query{Page: 3, Limit: 9}
	assert.Equal(t, 18, q.Offset())
	assert.Equal(t, 26, q.End())

	first := Query{Page: 1, Limit: 10}
	assert.Equal(t, 0, first.Offset())
	assert.Equal(t, 9, first.End())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 9))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 2, TotalPages(10, 9))
	assert.Equal(t, 2, TotalPages(12, 9))
	assert.Equal(t, 0, TotalPages(12, 0))
}

func TestFromPageRequest(t *testing.T) {
	q, err := FromPageRequest(gallery.PageRequest{Page: 2, Limit: 9, SortBy: "created_at", SortDirection: "desc"})
	require.NoError(t, err)
	assert.Equal(t, Query{Page: 2, Limit: 9, SortBy: "created_at", SortDirection: "desc"}, q)

	q, err = FromPageRequest(gallery.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)

	_, err = FromPageRequest(gallery.PageRequest{Page: -1})
	require.Error(t, err)
}

func TestPostgresSQL(t *testing.T) {
	q := Query{Page: 2, Limit: 9, SortBy: "created_at", SortDirection: "desc"}
	sql := listSQL("image_uploads", q)
	assert.Contains(t, sql, `FROM "image_uploads" ORDER BY "created_at" DESC LIMIT $1 OFFSET $2`)
	assert.Contains(t, sql, "coalesce(file_path, '') AS file_path")

	q.SortDirection = "asc"
	q.SortBy = "title"
	assert.Contains(t, listSQL("image_uploads", q), `ORDER BY "title" ASC`)

	assert.Equal(t, `SELECT count(*) FROM "image_uploads"`, countSQL("image_uploads"))
	assert.Contains(t, getSQL("image_uploads"), `WHERE id::text = $1 LIMIT 1`)
	assert.Contains(t, countSQL(`odd"name`), `"odd""name"`)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, BackendREST, cfg.Backend)
	assert.Equal(t, DefaultTable, cfg.Table)
	require.Error(t, cfg.Validate())

	cfg.REST = RESTConfig{URL: "https://project.example/rest/v1", Key: "k"}
	require.NoError(t, cfg.Validate())

	cfg.Backend = BackendPostgres
	require.Error(t, cfg.Validate())
	cfg.Postgres.DSN = "postgres://localhost/gallery"
	require.NoError(t, cfg.Validate())

	cfg.Backend = "sqlite"
	require.Error(t, cfg.Validate())
}
