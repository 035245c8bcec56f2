package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/teleconf/signaling-server/room"
	"github.com/teleconf/signaling-server/transport/websocket"
)

// guestName is shown for participants that joined without a display name.
const guestName = "Misafir"

// Server exposes the relay's administrative endpoints and the WebSocket
// upgrade path.
type Server struct {
	directory *room.Directory
	registry  *room.Registry
	handler   websocket.Handler
	monitor   *websocket.Monitor
	router    *mux.Router
	started   time.Time
}

// NewServer creates the HTTP server over the given relay state. handler
// receives upgraded connections' traffic; monitor tracks their liveness.
func NewServer(directory *room.Directory, registry *room.Registry, handler websocket.Handler, monitor *websocket.Monitor) *Server {
	s := &Server{
		directory: directory,
		registry:  registry,
		handler:   handler,
		monitor:   monitor,
		router:    mux.NewRouter(),
		started:   time.Now(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")
	s.router.HandleFunc("/create-room", s.handleCreateRoom).Methods("POST")
	s.router.HandleFunc("/room/{roomId}", s.handleRoomInfo).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Web client assets
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// participant is one entry of a room-info response.
type participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// roomInfoResponse is the payload of GET /room/{roomId}.
type roomInfoResponse struct {
	RoomID       string        `json:"roomId"`
	Participants []participant `json:"participants"`
	Created      bool          `json:"created"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "online",
		"room_count":       s.directory.RoomCount(),
		"connection_count": s.registry.Count(),
		"uptime":           time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomID string `json:"roomId,omitempty"`
	}

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	roomID := req.RoomID
	if roomID == "" {
		roomID = uuid.NewString()[:8]
	}

	s.directory.Ensure(roomID)

	respondJSON(w, http.StatusOK, map[string]string{"roomId": roomID})
}

func (s *Server) handleRoomInfo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["roomId"]

	if !s.directory.Exists(roomID) {
		respondJSON(w, http.StatusOK, roomInfoResponse{
			RoomID:       roomID,
			Participants: []participant{},
			Created:      false,
		})
		return
	}

	members := s.directory.Members(roomID)
	participants := make([]participant, 0, len(members))
	for _, m := range members {
		name := m.Name
		if name == "" {
			name = guestName
		}
		participants = append(participants, participant{ID: m.UserID, Name: name})
	}

	respondJSON(w, http.StatusOK, roomInfoResponse{
		RoomID:       roomID,
		Participants: participants,
		Created:      true,
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Serve(w, r, s.handler, s.monitor)
}
