package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveString(t *testing.T) {
	lookup := mapLookup(map[string]string{"APP_A": "alpha", "APP_EMPTY": ""})

	out, missing := ResolveString("x=#{APP_A}#;y=#{APP_B}#;z=#{APP_EMPTY}#", lookup)
	assert.Equal(t, "x=alpha;y=#{APP_B}#;z=#{APP_EMPTY}#", out)
	assert.Equal(t, []string{"APP_B", "APP_EMPTY"}, missing)

	out, missing = ResolveString("plain", lookup)
	assert.Equal(t, "plain", out)
	assert.Empty(t, missing)
}

func TestResolvePlaceholdersWalksNested(t *testing.T) {
	cfg := Config{MapboxToken: "#{APP_MAPBOX_TOKEN}#"}
	cfg.Cognito.ClientID = "#{APP_COGNITO_USER_POOL_CLIENT_ID}#"
	cfg.Media.Bucket = "#{APP_S3_MEDIA_BUCKET_NAME}#"

	missing := ResolvePlaceholders(&cfg, mapLookup(map[string]string{"APP_MAPBOX_TOKEN": "pk.123"}))

	assert.Equal(t, "pk.123", cfg.MapboxToken)
	assert.Equal(t, []string{"APP_COGNITO_USER_POOL_CLIENT_ID", "APP_S3_MEDIA_BUCKET_NAME"}, missing)
}
