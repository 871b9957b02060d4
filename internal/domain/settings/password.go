package settings

import (
	"fmt"
	"slices"

	"github.com/jsamuelsen11/console-settings/internal/domain"
)

// PasswordStyle identifies a password generation resolver.
type PasswordStyle string

// Supported password styles.
const (
	StyleClassic             PasswordStyle = "Classic"
	StyleCorrectBatteryHorse PasswordStyle = "Correct-Battery-Horse"
)

// PasswordStyles returns the selectable styles in display order.
func PasswordStyles() []PasswordStyle {
	return []PasswordStyle{StyleClassic, StyleCorrectBatteryHorse}
}

// IsValid reports whether s is one of the supported styles.
func (s PasswordStyle) IsValid() bool {
	return slices.Contains(PasswordStyles(), s)
}

func (s PasswordStyle) String() string { return string(s) }

// PasswordConfig is the persisted password generation document.
type PasswordConfig struct {
	PasswordType PasswordStyle
}

// Validate rejects styles outside the supported set.
func (c PasswordConfig) Validate() error {
	if c.PasswordType == "" {
		return &domain.ValidationError{Fields: map[string]string{"passwordType": domain.MsgRequired}}
	}
	if !c.PasswordType.IsValid() {
		return &domain.ValidationError{Fields: map[string]string{
			"passwordType": fmt.Sprintf("invalid: %q", c.PasswordType),
		}}
	}
	return nil
}

// Result is the human-readable outcome the backend reports for a write.
type Result struct {
	Message string
}
