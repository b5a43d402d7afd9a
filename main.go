package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"hawx.me/code/portal-gate/internal/auth"
	"hawx.me/code/portal-gate/internal/config"
	"hawx.me/code/portal-gate/internal/data"
	"hawx.me/code/portal-gate/internal/random"
	"hawx.me/code/portal-gate/internal/server"
	"hawx.me/code/portal-gate/internal/token"
	"hawx.me/code/portal-gate/internal/views"
	"hawx.me/code/serve"
)

func main() {
	var (
		port       = flag.String("port", "8080", "Port to run on")
		socket     = flag.String("socket", "", "Socket to run on")
		configPath = flag.String("config", "./config.toml", "Path to config file")
	)
	flag.Parse()

	conf, err := config.Read(*configPath)
	if err != nil {
		log.Fatalln("could not read config:", err)
	}

	secrets, err := config.ReadEnv()
	if err != nil {
		log.Fatalln(err)
	}

	validator, err := token.NewValidator(secrets.JWTSecret, token.WithLeeway(conf.Token.Leeway()))
	if err != nil {
		log.Fatalln(err)
	}

	sessionKey := []byte(conf.Session.Secret)
	if secrets.SessionSecret != "" {
		sessionKey = []byte(secrets.SessionSecret)
	}
	if len(sessionKey) == 0 {
		log.Println("no session secret configured, sessions will not survive a restart")
		if sessionKey, err = random.Bytes(32); err != nil {
			log.Fatalln("could not generate session secret:", err)
		}
	}

	options := &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   conf.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	var store sessions.Store
	switch conf.Session.Store {
	case "cookie":
		cookies := sessions.NewCookieStore(sessionKey)
		cookies.Options = options
		cookies.MaxAge(conf.Session.MaxAge)
		store = cookies

	case "sqlite":
		db, err := data.Open(conf.Session.Path)
		if err != nil {
			log.Fatalln("could not open session database:", err)
		}
		defer db.Close()

		dbStore := db.SessionStore(sessionKey)
		dbStore.Options = options
		dbStore.MaxAge(conf.Session.MaxAge)
		store = dbStore
	}

	templates, err := views.Parse()
	if err != nil {
		log.Fatalln("could not parse templates:", err)
	}

	serve.Serve(*port, *socket, server.New(
		conf,
		data.NewSessions(store, conf.Session.Name),
		auth.NewGate(validator),
		templates,
	))
}
