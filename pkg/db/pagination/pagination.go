package pagination

import (
	"encoding/base64"
	"encoding/json"
)

// Pagination is the request-side page selection.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size,default=25" validate:"gte=1,lte=250"` // Min 1, Max 250
}

type Cursor struct {
	ID string `json:"id,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, err
	}

	return &cursor, nil
}

// Page slices an already-filtered, already-ordered collection according to
// the request. The cursor identifies the last record of the previous page;
// relative order of the input is preserved.
func Page[T any](items []T, req Pagination, id func(T) string) ([]T, PageInfo, error) {
	size := req.PageSize
	if size <= 0 {
		size = 25
	}

	start := 0
	if req.PageToken != "" {
		cursor, err := DecodeCursor(req.PageToken)
		if err != nil {
			return nil, PageInfo{}, err
		}
		for i, item := range items {
			if id(item) == cursor.ID {
				start = i + 1
				break
			}
		}
	}

	if start >= len(items) {
		return []T{}, PageInfo{}, nil
	}

	end := start + size
	hasMore := end < len(items)
	if !hasMore {
		end = len(items)
	}

	page := items[start:end]
	info := PageInfo{HasMore: hasMore}
	if hasMore && len(page) > 0 {
		token, err := EncodeCursor(Cursor{ID: id(page[len(page)-1])})
		if err != nil {
			return nil, PageInfo{}, err
		}
		info.NextPageToken = token
	}

	return page, info, nil
}
