package model

// CodeInfo is the code a user wants fixed.
type CodeInfo struct {
	Code         string            `json:"code"`
	Language     string            `json:"language,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	FileName     string            `json:"file_name,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
}
