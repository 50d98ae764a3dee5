// AngelaMos | 2026
// dto.go

package document

type CreateDocumentRequest struct {
	Name         string   `json:"name"         validate:"required,min=1,max=255"`
	FilePath     string   `json:"filePath"     validate:"required,min=1,max=1024"`
	FileSize     int64    `json:"fileSize"     validate:"gte=0"`
	MimeType     string   `json:"mimeType"     validate:"required,max=255"`
	DocumentType string   `json:"documentType" validate:"omitempty,max=100"`
	Tags         []string `json:"tags"         validate:"omitempty,max=50,dive,min=1,max=50"`
	CaseID       *string  `json:"caseId"       validate:"omitempty,uuid"`
	ClientID     *string  `json:"clientId"     validate:"omitempty,uuid"`
}

type UpdateDocumentRequest struct {
	Name         *string   `json:"name"         validate:"omitempty,min=1,max=255"`
	FilePath     *string   `json:"filePath"     validate:"omitempty,min=1,max=1024"`
	FileSize     *int64    `json:"fileSize"     validate:"omitempty,gte=0"`
	MimeType     *string   `json:"mimeType"     validate:"omitempty,max=255"`
	DocumentType *string   `json:"documentType" validate:"omitempty,max=100"`
	Tags         *[]string `json:"tags"         validate:"omitempty,max=50,dive,min=1,max=50"`
	CaseID       *string   `json:"caseId"       validate:"omitempty,uuid"`
	ClientID     *string   `json:"clientId"     validate:"omitempty,uuid"`
}

type ListParams struct {
	CaseID       string
	ClientID     string
	DocumentType string
	Tag          string
	Search       string
}
