package main

import (
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/gwatts/gin-adapter"
	"github.com/pborman/getopt"
	"github.com/sirupsen/logrus"

	"github.com/opensentry/loginui/app"
	"github.com/opensentry/loginui/config"
	"github.com/opensentry/loginui/controllers/credentials"
)

const appName = "loginui"

var (
	logDebug  int    // Set to 1 to enable debug
	logFormat string // Current only supports default and json

	log *logrus.Logger

	appFields logrus.Fields
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Path to config file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	log = logrus.New()

	err := config.InitConfigurations(*optConfig)
	if err != nil {
		log.Panic(err.Error())
		return
	}

	logDebug = config.GetInt("log.debug")
	logFormat = config.GetString("log.format")

	// We only have 2 log levels. Things developers care about (debug) and things the user of the app cares about (info)
	if logDebug == 1 {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	if logFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	appFields = logrus.Fields{
		"appname":    appName,
		"log.debug":  logDebug,
		"log.format": logFormat,
	}

	// 32 byte long auth keys. When you change these user sessions will break.
	for _, key := range []string{"session.authKey", "csrf.authKey"} {
		if config.GetString(key) == "" {
			log.WithFields(appFields).Panic("Missing config: " + key)
			return
		}
	}

	env := app.NewEnvironment(log)

	serve(env)
}

func serve(env *app.Environment) {
	r := newRouter(env, appFields)

	addr := ":" + config.GetString("serve.public.port")
	cert := config.GetString("serve.tls.cert.path")
	key := config.GetString("serve.tls.key.path")

	log.WithFields(appFields).WithFields(logrus.Fields{"addr": addr, "tls": cert != ""}).Info("Serving")

	if cert != "" && key != "" {
		err := r.RunTLS(addr, cert, key)
		log.WithFields(appFields).Fatal(err)
		return
	}
	err := r.Run(addr)
	log.WithFields(appFields).Fatal(err)
}

// newRouter sets up middlewares, assets and the csrf protected login routes.
// Views and public files are read relative to the working directory.
func newRouter(env *app.Environment, appFields logrus.Fields) *gin.Engine {
	r := gin.New() // Clean gin to take control with logging.
	r.Use(gin.Recovery())

	r.Use(app.RequestId(env))
	r.Use(app.RequestLogger(env, appFields))

	store := cookie.NewStore([]byte(config.GetString("session.authKey")))
	// Ref: https://godoc.org/github.com/gin-gonic/contrib/sessions#Options
	store.Options(sessions.Options{
		MaxAge:   86400,
		Path:     "/",
		Secure:   config.Secure("session.secure"),
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(env.Constants.SessionStoreKey, store))

	// Use CSRF on the forms only, public files does not need tokens.
	adapterCSRF := adapter.Wrap(csrf.Protect([]byte(config.GetString("csrf.authKey")), csrf.Secure(config.Secure("csrf.secure"))))

	r.Static("/public", "public")
	r.LoadHTMLGlob("views/*")

	loginUrl := config.GetString("loginui.public.endpoints.login")

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, loginUrl)
	})

	ep := r.Group("/")
	ep.Use(adapterCSRF)
	{
		ep.GET(loginUrl, credentials.ShowLogin(env))
		ep.POST(loginUrl, credentials.SubmitLogin(env))
		ep.POST(config.GetString("loginui.public.endpoints.validate"), credentials.ValidateLogin(env))
	}

	return r
}
