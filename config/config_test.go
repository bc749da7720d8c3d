package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	setDefaults(viper.GetViper())
}

func TestDefaults(t *testing.T) {
	resetViper(t)

	require.NoError(t, InitConfigurations(""))
	assert.Equal(t, "8080", GetString("serve.public.port"))
	assert.Equal(t, "/login", GetString("loginui.public.endpoints.login"))
	assert.Equal(t, "/login", GetString("loginui.redirect"))
	assert.Equal(t, 0, GetInt("log.debug"))
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	resetViper(t)

	dir, err := ioutil.TempDir("", "loginui")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("log:\n  debug: 1\n  format: json\nserve:\n  public:\n    port: \"9443\"\nloginui:\n  redirect: /welcome\n")
	require.NoError(t, ioutil.WriteFile(path, yaml, 0600))

	require.NoError(t, InitConfigurations(path))
	assert.Equal(t, 1, GetInt("log.debug"))
	assert.Equal(t, "json", GetString("log.format"))
	assert.Equal(t, "9443", GetString("serve.public.port"))
	assert.Equal(t, "/welcome", GetString("loginui.redirect"))
	assert.Equal(t, "#", GetString("loginui.public.endpoints.recover"))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	resetViper(t)

	os.Setenv("LOGINUI_SERVE_PUBLIC_PORT", "7000")
	defer os.Unsetenv("LOGINUI_SERVE_PUBLIC_PORT")

	require.NoError(t, InitConfigurations(""))
	assert.Equal(t, "7000", GetString("serve.public.port"))
}

func TestMissingConfigFile(t *testing.T) {
	resetViper(t)

	err := InitConfigurations(filepath.Join(os.TempDir(), "loginui-does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestSecureFollowsTLS(t *testing.T) {
	resetViper(t)
	require.NoError(t, InitConfigurations(""))

	assert.False(t, Secure("session.secure"))
	assert.False(t, Secure("csrf.secure"))

	Set("serve.tls.cert.path", "/srv/certs/loginui.crt")
	assert.True(t, Secure("session.secure"))
	assert.True(t, Secure("csrf.secure"))
}

func TestSecureExplicitSettingWins(t *testing.T) {
	resetViper(t)
	require.NoError(t, InitConfigurations(""))

	Set("serve.tls.cert.path", "/srv/certs/loginui.crt")
	Set("csrf.secure", false)
	assert.False(t, Secure("csrf.secure"))

	os.Setenv("LOGINUI_SESSION_SECURE", "true")
	defer os.Unsetenv("LOGINUI_SESSION_SECURE")
	Set("serve.tls.cert.path", "")
	assert.True(t, Secure("session.secure"))
}
