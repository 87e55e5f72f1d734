package dtos

type ImportUploadRequest struct {
	Table     string `form:"table" json:"table" validate:"omitempty,max=128"`
	Database  string `form:"database" json:"database" validate:"omitempty,max=64"`
	Sheet     string `form:"sheet" json:"sheet" validate:"omitempty,max=31"`
	Truncate  string `form:"truncate" json:"truncate" validate:"omitempty,oneof=true false 1 0"`
	HasHeader string `form:"has_header" json:"has_header" validate:"omitempty,oneof=true false 1 0"`
}

type RowFailureResponse struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResponse struct {
	Success  bool                 `json:"success"`
	Message  string               `json:"message"`
	ImportId string               `json:"import_id,omitempty"`
	Imported int                  `json:"imported"`
	Total    int                  `json:"total"`
	Failed   int                  `json:"failed"`
	Table    string               `json:"table,omitempty"`
	Database string               `json:"database,omitempty"`
	Failures []RowFailureResponse `json:"failures,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}
