package constants

// viper keys
const (
	ViperKeySourceURL     = "source.url"
	ViperKeyFetchTimeout  = "source.timeout"
	ViperKeyCachePath     = "cache.path"
	ViperKeyListenAddr    = "server.addr"
	ViperKeyCORSOrigin    = "server.cors_origin"
	ViperKeyWindowDays    = "metrics.window_days"
	ViperKeyReloadRetries = "source.reload_retries"
	ViperSecretKey        = "admin.secret"
	ViperSigningKey       = "admin.signing_key"
)

const (
	CookieKeySecretToken = "secret_token"

	HeaderRequestID = "X-Request-Id"
)
