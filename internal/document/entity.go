// AngelaMos | 2026
// entity.go

package document

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Document struct {
	ID           string    `db:"id"            json:"id"`
	Name         string    `db:"name"          json:"name"`
	FilePath     string    `db:"file_path"     json:"filePath"`
	FileSize     int64     `db:"file_size"     json:"fileSize"`
	MimeType     string    `db:"mime_type"     json:"mimeType"`
	DocumentType string    `db:"document_type" json:"documentType"`
	Version      int       `db:"version"       json:"version"`
	Tags         Tags      `db:"tags"          json:"tags"`
	CaseID       *string   `db:"case_id"       json:"caseId"`
	ClientID     *string   `db:"client_id"     json:"clientId"`
	UploadedBy   *string   `db:"uploaded_by"   json:"uploadedBy"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}

// Tags is stored as a JSONB array.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan tags: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan tags: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}
