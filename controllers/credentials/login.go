package credentials

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"

	"github.com/opensentry/loginui/app"
	"github.com/opensentry/loginui/config"
	"github.com/opensentry/loginui/loginform"
)

func init() {
	gob.Register(loginform.State{}) // Flashed through the cookie session
}

type loginForm struct {
	Identifier   string `form:"identifier"`
	Secret       string `form:"secret"`
	Remember     *bool  `form:"remember"`
	ShowPassword bool   `form:"show_password"`
	Action       string `form:"action"`
}

type validateRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

func ShowLogin(env *app.Environment) gin.HandlerFunc {
	fn := func(c *gin.Context) {

		log := app.RequestLog(env, c)
		log = log.WithFields(logrus.Fields{
			"func": "ShowLogin",
		})

		session := sessions.Default(c)

		state := loginform.DefaultState()
		flashes := session.Flashes(env.Constants.SessionFormStateKey)
		err := session.Save() // Remove flashes read
		if err != nil {
			log.Debug(err.Error())
		}
		if len(flashes) > 0 {
			if s, ok := flashes[len(flashes)-1].(loginform.State); ok {
				state = s
			}
		}

		c.HTML(http.StatusOK, "login.html", gin.H{
			"links": []map[string]string{
				{"href": "/public/css/login.css"},
			},
			"scripts": []map[string]string{
				{"src": "/public/js/login.js"},
			},
			"title":           "Sign In",
			csrf.TemplateTag:  csrf.TemplateField(c.Request),
			"identifier":      state.Identifier,
			"remember":        state.Remember,
			"showPassword":    state.ShowPassword,
			"errorIdentifier": state.Errors[loginform.FieldIdentifier],
			"errorSecret":     state.Errors[loginform.FieldSecret],
			"errorForm":       state.Errors[loginform.FieldForm],
			"loginUrl":        config.GetString("loginui.public.endpoints.login"),
			"validateUrl":     config.GetString("loginui.public.endpoints.validate"),
			"recoverUrl":      config.GetString("loginui.public.endpoints.recover"),
			"helpUrl":         config.GetString("loginui.public.endpoints.help"),
			"companyUrl":      config.GetString("loginui.public.endpoints.company"),
		})
	}
	return gin.HandlerFunc(fn)
}

func SubmitLogin(env *app.Environment) gin.HandlerFunc {
	fn := func(c *gin.Context) {

		log := app.RequestLog(env, c)
		log = log.WithFields(logrus.Fields{
			"func": "SubmitLogin",
		})

		var form loginForm
		err := c.ShouldBind(&form)
		if err != nil {
			log.Debug(err.Error())
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Retain the values that was submitted, except passwords!
		state := loginform.State{
			Identifier:   form.Identifier,
			Remember:     loginform.RememberOrDefault(form.Remember),
			ShowPassword: form.ShowPassword,
		}

		loginUrl := config.GetString("loginui.public.endpoints.login")

		switch form.Action {
		case "", ACTION_SIGNIN:
			// Validate below
		case ACTION_TOGGLE_PASSWORD:
			// Only reached without login.js. The secret is dropped like on any other redirect.
			state.ShowPassword = loginform.TogglePasswordVisibility(state.ShowPassword)
			redirectWithState(env, c, log, state, loginUrl)
			return
		case ACTION_CLEAR_IDENTIFIER:
			state = loginform.ClearIdentifier(state)
			redirectWithState(env, c, log, state, loginUrl)
			return
		default:
			log.WithFields(logrus.Fields{"action": form.Action}).Debug("Unknown action")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown action " + form.Action})
			return
		}

		result := loginform.Validate(loginform.Input{
			Identifier: form.Identifier,
			Secret:     form.Secret,
			Remember:   form.Remember,
		})
		if !result.Valid() {
			state.Errors = result.Errors
			redirectWithState(env, c, log, state, loginUrl)
			return
		}

		authResult, err := loginform.Submit(c.Request.Context(), env.Authenticator, result.Credentials)
		if err != nil {
			log.WithFields(logrus.Fields{"identifier": result.Credentials.Identifier}).Debug(err.Error())
			state.Errors = map[string]string{loginform.FieldForm: LOGIN_FAILED}
			redirectWithState(env, c, log, state, loginUrl)
			return
		}

		redirectTo := authResult.RedirectTo
		if redirectTo == "" {
			redirectTo = config.GetString("loginui.redirect")
		}

		log.WithFields(logrus.Fields{
			"identifier":    authResult.Identifier,
			"authenticated": authResult.Authenticated,
			"redirect_to":   redirectTo,
		}).Debug("Redirecting")
		c.Redirect(http.StatusFound, redirectTo)
		c.Abort()
	}
	return gin.HandlerFunc(fn)
}

// ValidateLogin answers field validation for pages validating on change or
// blur. It always responds 200; validity is in the body. With a field query
// parameter, valid only speaks for that field.
func ValidateLogin(env *app.Environment) gin.HandlerFunc {
	fn := func(c *gin.Context) {

		log := app.RequestLog(env, c)
		log = log.WithFields(logrus.Fields{
			"func": "ValidateLogin",
		})

		var request validateRequest
		err := c.ShouldBindJSON(&request)
		if err != nil {
			log.Debug(err.Error())
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		input := loginform.Input{Identifier: request.Identifier, Secret: request.Secret}

		var errors map[string]string
		if field := c.Query(VALIDATE_FIELD_KEY); field != "" {
			errors = loginform.ValidateField(field, input)
		} else {
			errors = loginform.Validate(input).Errors
		}
		if errors == nil {
			errors = map[string]string{}
		}
		c.JSON(http.StatusOK, gin.H{"valid": len(errors) == 0, "errors": errors})
	}
	return gin.HandlerFunc(fn)
}

func redirectWithState(env *app.Environment, c *gin.Context, log *logrus.Entry, state loginform.State, redirectTo string) {
	session := sessions.Default(c)
	session.AddFlash(state, env.Constants.SessionFormStateKey)
	err := session.Save()
	if err != nil {
		log.Debug(err.Error())
	}
	log.WithFields(logrus.Fields{"redirect_to": redirectTo}).Debug("Redirecting")
	c.Redirect(http.StatusFound, redirectTo)
	c.Abort()
}
