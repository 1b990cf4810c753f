package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the position of the last item of a page in (sort date, created at, id) order.
type Cursor struct {
	SortDate  time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeToken creates an opaque, URL-safe token for the cursor.
func EncodeToken(c Cursor) string {
	tokenStr := strings.Join([]string{
		c.SortDate.UTC().Format(timeFormat),
		c.CreatedAt.UTC().Format(timeFormat),
		c.ID,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(decoded), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	sortDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (sort date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return Cursor{SortDate: sortDate, CreatedAt: createdAt, ID: parts[2]}, nil
}
