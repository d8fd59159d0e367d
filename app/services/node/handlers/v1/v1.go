// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/journal-labs/journalchain/app/services/node/handlers/v1/private"
	"github.com/journal-labs/journalchain/app/services/node/handlers/v1/public"
	"github.com/journal-labs/journalchain/business/web/v1/mid"
	"github.com/journal-labs/journalchain/foundation/events"
	"github.com/journal-labs/journalchain/foundation/journal/state"
	"github.com/journal-labs/journalchain/foundation/nameservice"
	"github.com/journal-labs/journalchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *zap.SugaredLogger
	State      *state.State
	NS         *nameservice.NameService
	Evts       *events.Events
	AuthSecret string
	SubmitRPS  float64
	SubmitBst  int
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/accounts/list", pbl.Accounts)
	app.Handle(http.MethodGet, version, "/accounts/list/:account", pbl.Account)
	app.Handle(http.MethodGet, version, "/entries/list", pbl.AllEntries)
	app.Handle(http.MethodGet, version, "/entries/list/:owner", pbl.EntriesByOwner)
	app.Handle(http.MethodGet, version, "/entries/entry/:owner/:title", pbl.EntryByOwnerTitle)
	app.Handle(http.MethodGet, version, "/tx/pending/list", pbl.Pending)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitWalletTransaction, mid.RateLimit(cfg.SubmitRPS, cfg.SubmitBst))
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
	}

	auth := mid.Auth(cfg.AuthSecret)

	app.Handle(http.MethodGet, version, "/node/status", prv.Status, auth)
	app.Handle(http.MethodGet, version, "/node/slots/list/:from/:to", prv.SlotsByNumber, auth)
	app.Handle(http.MethodPost, version, "/node/slots/seal", prv.SealSlot, auth)
	app.Handle(http.MethodPost, version, "/node/tx/submit", prv.SubmitNodeTransaction, auth)
}
