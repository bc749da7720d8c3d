package config

import (
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "LOGINUI"

func init() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.debug", 0)
	v.SetDefault("log.format", "")

	v.SetDefault("serve.public.port", "8080")
	v.SetDefault("serve.tls.cert.path", "")
	v.SetDefault("serve.tls.key.path", "")

	// session.secure and csrf.secure have no default, see Secure.
	v.SetDefault("session.authKey", "")
	v.SetDefault("csrf.authKey", "")

	v.SetDefault("loginui.public.endpoints.login", "/login")
	v.SetDefault("loginui.public.endpoints.validate", "/login/validate")
	v.SetDefault("loginui.public.endpoints.recover", "#")
	v.SetDefault("loginui.public.endpoints.help", "#")
	v.SetDefault("loginui.public.endpoints.company", "#")
	v.SetDefault("loginui.redirect", "/login")
}

// InitConfigurations reads the config file at path, if any, and lets
// LOGINUI_ prefixed environment variables override every key. Eg.
// LOGINUI_SERVE_PUBLIC_PORT overrides serve.public.port.
func InitConfigurations(path string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	return viper.ReadInConfig()
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}

// Secure reports if the cookie configured under key must be marked Secure.
// Left unset it follows serve.tls.cert.path, since browsers drop Secure
// cookies sent over plain http.
func Secure(key string) bool {
	if viper.Get(key) != nil {
		return viper.GetBool(key)
	}
	return GetString("serve.tls.cert.path") != ""
}

func Set(key string, value interface{}) {
	viper.Set(key, value)
}
