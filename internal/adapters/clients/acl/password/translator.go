package password

import "github.com/jsamuelsen11/console-settings/internal/domain/settings"

// ToDomainConfig unwraps the list response. The style is passed through
// unchanged; an unknown style simply matches no option.
func ToDomainConfig(dto ListResponseDTO) settings.PasswordConfig {
	return settings.PasswordConfig{PasswordType: settings.PasswordStyle(dto.Results.PasswordType)}
}

// ToConfigDTO converts the domain document to the write payload.
func ToConfigDTO(cfg settings.PasswordConfig) ConfigDTO {
	return ConfigDTO{PasswordType: cfg.PasswordType.String()}
}
