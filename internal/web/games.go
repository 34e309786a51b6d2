package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/dbgx/internal/game"
	dbgxnet "github.com/peterkuimelis/dbgx/internal/net"
)

// hostedGame is one browser-hosted hotseat game: every seat is driven from the
// same browser, so commands carry their own seat number.
type hostedGame struct {
	mu    sync.Mutex
	id    string
	game  *game.Game
	names []string
}

type gameRegistry struct {
	mu    sync.Mutex
	games map[string]*hostedGame
}

func newGameRegistry() *gameRegistry {
	return &gameRegistry{games: make(map[string]*hostedGame)}
}

func (r *gameRegistry) add(hg *hostedGame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[hg.id] = hg
}

func (r *gameRegistry) get(id string) (*hostedGame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hg, ok := r.games[id]
	return hg, ok
}

// createGameRequest is the POST /api/games body.
type createGameRequest struct {
	Players []string `json:"players"`
	Kingdom []string `json:"kingdom,omitempty"`
	Setup   string   `json:"setup,omitempty"`
	Seed    int64    `json:"seed,omitempty"`
}

// commandRequest is the POST /api/games/{id}/commands body.
type commandRequest struct {
	Seat    int          `json:"seat"`
	Command game.Command `json:"command"`
}

type commandResponse struct {
	Events []dbgxnet.EventView `json:"events"`
	State  *dbgxnet.StateView  `json:"state"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	kingdom := req.Kingdom
	if req.Setup != "" {
		setups, err := game.LoadSetups(s.setupsFile)
		if err != nil {
			http.Error(w, "could not load setups file", http.StatusInternalServerError)
			return
		}
		setup, ok := game.FindSetup(setups, req.Setup)
		if !ok {
			http.Error(w, "no such setup", http.StatusBadRequest)
			return
		}
		kingdom = setup.Cards
	}

	g := game.NewGame()
	if err := g.StartGame(req.Players, kingdom, req.Seed); err != nil {
		writeRuleError(w, err)
		return
	}
	hg := &hostedGame{id: uuid.NewString(), game: g, names: req.Players}
	s.games.add(hg)

	writeJSON(w, map[string]any{
		"id":    hg.id,
		"state": dbgxnet.BuildStateView(g.State, 0),
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	hg, ok := s.games.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	seat := querySeat(r)
	hg.mu.Lock()
	defer hg.mu.Unlock()
	writeJSON(w, dbgxnet.BuildStateView(hg.game.State, seat))
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	hg, ok := s.games.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	seat := querySeat(r)
	hg.mu.Lock()
	defer hg.mu.Unlock()
	writeJSON(w, dbgxnet.RedactEvents(hg.game.Events, seat, hg.names))
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	hg, ok := s.games.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	cmd := req.Command
	cmd.Player = req.Seat

	hg.mu.Lock()
	defer hg.mu.Unlock()
	events, err := hg.game.Dispatch(cmd)
	if err != nil {
		writeRuleError(w, err)
		return
	}
	writeJSON(w, commandResponse{
		Events: dbgxnet.RedactEvents(events, req.Seat, hg.names),
		State:  dbgxnet.BuildStateView(hg.game.State, req.Seat),
	})
}

func querySeat(r *http.Request) int {
	seat, err := strconv.Atoi(r.URL.Query().Get("seat"))
	if err != nil {
		return 0
	}
	return seat
}

func writeRuleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]string{
		"code":  game.CodeOf(err).String(),
		"error": err.Error(),
	})
}
