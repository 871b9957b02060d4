// Package password translates the settings API's password style documents.
package password

// ConfigDTO is the password style document.
type ConfigDTO struct {
	PasswordType string `json:"passwordType"`
}

// ListResponseDTO wraps the document returned by
// ExecPasswordConfig?list=true.
type ListResponseDTO struct {
	Results ConfigDTO `json:"Results"`
}
