package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	gormdb "gorm.io/gorm"

	"github.com/personahq/persona/pkg/config"
	"github.com/personahq/persona/pkg/resolver"
	"github.com/personahq/persona/pkg/server/middleware"
	"github.com/personahq/persona/pkg/server/store"
	storegorm "github.com/personahq/persona/pkg/server/store/gorm"
	"github.com/personahq/persona/pkg/token"
)

type Server struct {
	Router *mux.Router
	DB     *gormdb.DB
	Config *config.PersonaConfig
	Signer *token.Signer
	Auth   *middleware.Authenticator

	IdentitiesStore  store.IdentitiesStore
	UsersStore       store.UsersStore
	PermissionsStore store.PermissionsStore
	PrioritiesStore  store.PrioritiesStore
	OAuthStore       store.OAuthStore
	AccessLogsStore  store.AccessLogsStore
	HealthStore      store.HealthStore

	Resolver *resolver.Resolver

	srv *http.Server
}

func NewServer(
	db *gormdb.DB,
	cfg *config.PersonaConfig,
	signingKey []byte,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	signer := token.NewSigner(signingKey, cfg.AccessTokenTTL())

	identities := storegorm.NewIdentitiesStore(db)
	users := storegorm.NewUsersStore(db)
	priorities := storegorm.NewPrioritiesStore(db)

	return &Server{
		Router: router,
		DB:     db,
		Config: cfg,
		Signer: signer,
		Auth:   middleware.NewAuthenticator(signer, cfg),

		IdentitiesStore:  identities,
		UsersStore:       users,
		PermissionsStore: storegorm.NewPermissionsStore(db),
		PrioritiesStore:  priorities,
		OAuthStore:       storegorm.NewOAuthStore(db),
		AccessLogsStore:  storegorm.NewAccessLogsStore(db),
		HealthStore:      storegorm.NewHealthStore(db),

		Resolver: resolver.New(identities, priorities, users),

		srv: srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
