package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/dbgx/internal/game"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Cost     int    `json:"cost"`
	Types    string `json:"types"`
	Treasure int    `json:"treasure,omitempty"`
	VP       int    `json:"vp,omitempty"`
}

// Server is the dbgx web gateway: card and setup APIs, browser-hosted hotseat
// games, and a WebSocket proxy onto a running TCP game server.
type Server struct {
	setupsFile string
	mux        *http.ServeMux
	games      *gameRegistry
}

// NewServer creates a new web server.
func NewServer(setupsFile string) (*Server, error) {
	s := &Server{
		setupsFile: setupsFile,
		mux:        http.NewServeMux(),
		games:      newGameRegistry(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/setups", s.handleSetups)

	s.mux.HandleFunc("POST /api/games", s.handleCreateGame)
	s.mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	s.mux.HandleFunc("GET /api/games/{id}/log", s.handleGetLog)
	s.mux.HandleFunc("POST /api/games/{id}/commands", s.handleCommand)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, name := range game.CatalogOrder {
		def := game.MustCard(name)
		cards = append(cards, CardInfo{
			Name:     def.Name,
			Text:     def.Text,
			Cost:     def.Cost,
			Types:    def.Types.String(),
			Treasure: def.Treasure,
			VP:       def.VP,
		})
	}
	writeJSON(w, cards)
}

func (s *Server) handleSetups(w http.ResponseWriter, r *http.Request) {
	setups, err := game.LoadSetups(s.setupsFile)
	if err != nil {
		http.Error(w, "could not load setups file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, setups)
}

// handleWebSocket bridges a browser to a TCP game server: the browser speaks
// the same JSON protocol as the terminal client, framed over WebSocket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // browser may be served from a different origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read connect: %v", err)
		return
	}
	var connectMsg struct {
		Type string `json:"type"`
		Addr string `json:"addr"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	tcpConn, err := net.Dial("tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":  "error",
			"error": fmt.Sprintf("could not connect to game server at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	joinMsg, _ := json.Marshal(map[string]string{"type": "join", "name": connectMsg.Name})
	joinMsg = append(joinMsg, '\n')
	if _, err := tcpConn.Write(joinMsg); err != nil {
		log.Printf("TCP write join: %v", err)
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					log.Printf("TCP read error: %v", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		}
	}()

	// WebSocket → TCP (browser commands to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				log.Printf("TCP write error: %v", err)
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
