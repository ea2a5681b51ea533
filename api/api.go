// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/adysingh5711/VeriFund/api/accounts"
	"github.com/adysingh5711/VeriFund/api/events"
	"github.com/adysingh5711/VeriFund/api/funding"
	"github.com/adysingh5711/VeriFund/api/subscriptions"
	"github.com/adysingh5711/VeriFund/api/transactions"
	"github.com/adysingh5711/VeriFund/api/utils"
	"github.com/adysingh5711/VeriFund/api/voting"
	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/sequencer"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
}

// New returns the api handler and a func closing open subscriptions.
func New(seq *sequencer.Sequencer, eventDB *eventdb.EventDB, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.Path("/head").Methods(http.MethodGet).Name("GET /head").HandlerFunc(
		utils.WrapHandlerFunc(func(w http.ResponseWriter, req *http.Request) error {
			head := seq.Head()
			return utils.WriteJSON(w, utils.M{"seq": head.Seq, "time": head.Time, "now": seq.Now()})
		}))

	voting.New(seq).
		Mount(router, "/voting")
	funding.New(seq).
		Mount(router, "/funding")
	accounts.New(seq).
		Mount(router, "/access", "/ledger", "/nonces")
	transactions.New(seq).
		Mount(router, "/transactions")
	events.New(eventDB, opts.LogsLimit).
		Mount(router, "/logs")
	subs := subscriptions.New(seq, eventDB, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close
}
