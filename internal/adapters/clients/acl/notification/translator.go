package notification

import "github.com/jsamuelsen11/console-settings/internal/domain/settings"

// ToDomainConfig converts the API document to the domain document.
func ToDomainConfig(dto ConfigDTO) settings.NotificationConfig {
	return settings.NotificationConfig{
		Email:             dto.Email,
		Webhook:           dto.Webhook,
		LogsToInclude:     []string(dto.LogsToInclude),
		Severity:          []string(dto.Severity),
		OnePerTenant:      dto.OnePerTenant,
		SendToIntegration: dto.SendToIntegration,
		IncludeTenantID:   dto.IncludeTenantID,
	}
}

// ToConfigDTO converts the domain document to the write payload. Nil
// multi-selects are sent as empty arrays.
func ToConfigDTO(cfg settings.NotificationConfig) ConfigDTO {
	return ConfigDTO{
		Email:             cfg.Email,
		Webhook:           cfg.Webhook,
		LogsToInclude:     nonNil(cfg.LogsToInclude),
		Severity:          nonNil(cfg.Severity),
		OnePerTenant:      cfg.OnePerTenant,
		SendToIntegration: cfg.SendToIntegration,
		IncludeTenantID:   cfg.IncludeTenantID,
	}
}

func nonNil(values []string) StringList {
	if values == nil {
		return StringList{}
	}
	return StringList(values)
}
