package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct{ ID string }

func rowID(r row) string { return r.ID }

func rows(n int) []row {
	out := make([]row, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, row{ID: fmt.Sprintf("r%02d", i)})
	}
	return out
}

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "r07"})
	assert.NoError(t, err)

	cursor, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.Equal(t, "r07", cursor.ID)

	_, err = DecodeCursor("not base64!!")
	assert.Error(t, err)
}

func TestPage_WalksCollection(t *testing.T) {
	items := rows(7)

	first, info, err := Page(items, Pagination{PageSize: 3}, rowID)
	assert.NoError(t, err)
	assert.Equal(t, []row{{ID: "r01"}, {ID: "r02"}, {ID: "r03"}}, first)
	assert.True(t, info.HasMore)
	assert.NotEmpty(t, info.NextPageToken)

	second, info, err := Page(items, Pagination{PageSize: 3, PageToken: info.NextPageToken}, rowID)
	assert.NoError(t, err)
	assert.Equal(t, []row{{ID: "r04"}, {ID: "r05"}, {ID: "r06"}}, second)
	assert.True(t, info.HasMore)

	last, info, err := Page(items, Pagination{PageSize: 3, PageToken: info.NextPageToken}, rowID)
	assert.NoError(t, err)
	assert.Equal(t, []row{{ID: "r07"}}, last)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)
}

func TestPage_Defaults(t *testing.T) {
	items := rows(30)

	page, info, err := Page(items, Pagination{}, rowID)
	assert.NoError(t, err)
	assert.Len(t, page, 25)
	assert.True(t, info.HasMore)
}

func TestPage_ExhaustedCursor(t *testing.T) {
	items := rows(2)

	token, err := EncodeCursor(Cursor{ID: "r02"})
	assert.NoError(t, err)

	page, info, err := Page(items, Pagination{PageSize: 10, PageToken: token}, rowID)
	assert.NoError(t, err)
	assert.Empty(t, page)
	assert.False(t, info.HasMore)
}

func TestPage_BadToken(t *testing.T) {
	_, _, err := Page(rows(3), Pagination{PageToken: "garbage"}, rowID)
	assert.Error(t, err)
}
