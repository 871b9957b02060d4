// Package notification translates the settings API's notification
// configuration documents.
package notification

import (
	"encoding/json"
	"strings"
)

// ConfigDTO matches the document returned by ListNotificationConfig and
// accepted by ExecNotificationConfig. The mixed key casing is the API's.
type ConfigDTO struct {
	Email             string     `json:"email"`
	Webhook           string     `json:"webhook"`
	LogsToInclude     StringList `json:"logsToInclude"`
	Severity          StringList `json:"Severity"`
	OnePerTenant      bool       `json:"onePerTenant"`
	SendToIntegration bool       `json:"sendtoIntegration"`
	IncludeTenantID   bool       `json:"includeTenantId"`
}

// StringList decodes either a JSON array of strings or a single
// comma-separated string, which older API versions return for multi-select
// fields. It always encodes as an array.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = splitList(joined)
	return nil
}

func splitList(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return []string{}
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
