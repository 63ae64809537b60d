package server

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/mway1/chess"
)

var errSessionNotFound = errors.New("session not found")

// Session is one board driven by one controller. All access to the
// controller goes through the session mutex.
type Session struct {
	ID string

	mu          sync.Mutex
	controller  *chess.Controller
	subscribers map[*websocket.Conn]struct{}
}

// Do runs f with exclusive access to the controller and pushes the
// resulting view to every websocket subscriber.
func (s *Session) Do(f func(c *chess.Controller) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := f(s.controller)
	view := newView(s.ID, s.controller)
	if err == nil {
		s.broadcast(view)
	}
	return view, err
}

// Read runs f with exclusive access to the controller without notifying
// subscribers.
func (s *Session) Read(f func(c *chess.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.controller)
}

// View returns the current view of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newView(s.ID, s.controller)
}

// subscribe registers the connection and sends it the current view.
// Writes to subscribers only happen with s.mu held.
func (s *Session) subscribe(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, err := newMessage(MessageTypeView, newView(s.ID, s.controller))
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}
	s.subscribers[conn] = struct{}{}
	return nil
}

func (s *Session) unsubscribe(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, conn)
}

// broadcast must be called with s.mu held.
func (s *Session) broadcast(view View) {
	msg, err := newMessage(MessageTypeView, view)
	if err != nil {
		log.Printf("session %s: encode view: %v", s.ID, err)
		return
	}
	for conn := range s.subscribers {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("session %s: write: %v", s.ID, err)
			delete(s.subscribers, conn)
		}
	}
}

// Store keeps the sessions of the server keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create starts a session with the named preset, or the standard position
// when presetName is empty.
func (st *Store) Create(presetName string) (*Session, error) {
	var preset chess.Preset = chess.StandardPreset{}
	if presetName != "" {
		p, err := chess.PresetByName(presetName)
		if err != nil {
			return nil, err
		}
		preset = p
	}
	controller, err := chess.NewController(nil, nil, preset)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:          uuid.New().String(),
		controller:  controller,
		subscribers: make(map[*websocket.Conn]struct{}),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s, nil
}

// Get returns the session with the given id.
func (st *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errSessionNotFound
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return s, nil
}

// Delete removes the session with the given id.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
