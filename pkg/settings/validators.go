package settings

type UpdateCapabilityPayload struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type UpdateAPIKeyPayload struct {
	APIKey string `json:"api_key" mod:"trim" validate:"max=512"`
}

type SettingsResponse struct {
	CapabilityEnabled bool         `json:"tmdb_enabled"`
	APIKeyMasked      string       `json:"tmdb_api_key"`
	APIKeySource      APIKeySource `json:"tmdb_api_key_source"`
	EnabledMediaTypes []string     `json:"enabled_media_types"`
}
