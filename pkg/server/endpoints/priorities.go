package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/store"
)

// RegisterPrioritiesEndpoints registers the owner context-priority endpoints
func RegisterPrioritiesEndpoints(srv *server.Server, api *mux.Router) {
	priorities := srv.PrioritiesStore

	// GET /context-priorities
	api.HandleFunc("/context-priorities", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		list, err := priorities.ListByUser(p.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list priorities")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"priorities": list,
			"count":      len(list),
		})
	}).Methods("GET")

	// POST /context-priorities
	api.HandleFunc("/context-priorities", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}

		var priority model.ContextPriority
		if err := json.NewDecoder(r.Body).Decode(&priority); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if !priority.Context.IsAContext() {
			respondWithError(w, http.StatusBadRequest, "unknown context")
			return
		}
		priority.ID = 0
		priority.UserID = p.UserID

		if err := priorities.Set(&priority); err != nil {
			if errors.Is(err, store.ErrDuplicatePriority) {
				respondWithError(w, http.StatusConflict, "priority already set for this context")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to set priority")
			return
		}
		respondWithJSON(w, http.StatusCreated, priority)
	}).Methods("POST")

	// DELETE /context-priorities/{context}
	api.HandleFunc("/context-priorities/{context}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}

		context, err := model.ContextString(mux.Vars(r)["context"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "unknown context")
			return
		}

		if err := priorities.Delete(p.UserID, context); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to delete priority")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")
}
