package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "tmms_test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_CODE", "TMMS-ADMIN-TEST")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
}

func TestLoadSucceedsWithRequiredVars(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tmms_test", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port, "default port")
	assert.Equal(t, "uploads", cfg.UploadDir, "default upload dir")
}

func TestLoadReportsAllMissingVars(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "RAZORPAY_KEY_SECRET")
	assert.NotContains(t, err.Error(), "MONGO_URI")
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_DIR", "/var/tmms/uploads")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/var/tmms/uploads", cfg.UploadDir)
}
