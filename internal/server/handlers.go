package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/riskflow/pkg/buildinfo"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/httputil"
	pkgio "github.com/matzehuels/riskflow/pkg/io"
	"github.com/matzehuels/riskflow/pkg/observability"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
	"github.com/matzehuels/riskflow/pkg/session"
)

const (
	contentTypeJSON = "application/json"
	contentTypeSVG  = "image/svg+xml"

	// maxEventBody bounds an events request.
	maxEventBody = 1 << 20
)

// SessionResponse is returned by the session endpoints.
type SessionResponse struct {
	Session   *session.Session `json:"session"`
	Selection []Selection      `json:"selection,omitempty"`
	Scene     json.RawMessage  `json:"scene"`
}

// Selection is one selection change produced while applying events. A nil
// ID means the selection was cleared.
type Selection struct {
	ID *int `json:"id"`
}

type healthResponse struct {
	Status  string         `json:"status"`
	Build   buildinfo.Info `json:"build"`
	Nodes   int            `json:"nodes"`
	Links   int            `json:"links"`
	Dataset string         `json:"dataset"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.base.Dataset()
	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Build:   buildinfo.Get(),
		Nodes:   ds.NodeCount(),
		Links:   ds.LinkCount(),
		Dataset: s.hash,
	})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(s.base.Dataset(), &buf); err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteBytes(w, contentTypeJSON, buf.Bytes())
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	eng, err := s.engineFromQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := s.sceneJSON(eng.Scene())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteBytes(w, contentTypeJSON, data)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	eng, err := s.engineFromQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteBytes(w, contentTypeSVG, s.svg(r, eng.Scene()))
}

// engineFromQuery forks the base engine and applies ?hover= and
// ?selected= as events, so unknown ids are rejected the same way events
// are.
func (s *Server) engineFromQuery(r *http.Request) (*flow.Engine, error) {
	hover, err := httputil.IntParam(r, "hover")
	if err != nil {
		return nil, err
	}
	selected, err := httputil.IntParam(r, "selected")
	if err != nil {
		return nil, err
	}
	eng := s.base.Fork(interact.State{})
	if hover != nil {
		if err := eng.Dispatch(interact.EnterNode(*hover)); err != nil {
			return nil, fmt.Errorf("hover: %w", err)
		}
	}
	if selected != nil {
		if err := eng.Dispatch(interact.Select(*selected)); err != nil {
			return nil, fmt.Errorf("selected: %w", err)
		}
	}
	return eng, nil
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	eng, err := s.engineFromQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sess := session.New(s.hash, s.cfg.SessionTTL)
	sess.State = eng.State()
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.fail(w, r, err)
		return
	}
	observability.Interaction().OnSessionOpen(r.Context())
	s.logger.Debug("session created", "id", sess.ID)
	s.writeSession(w, r, http.StatusCreated, sess, eng, nil)
}

// handleGetSession returns the session and its scene. Reads count as
// activity: the expiry is extended without touching UpdatedAt.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.loadSession(r, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.keepAlive(r, sess)
	s.writeSession(w, r, http.StatusOK, sess, s.base.Fork(sess.State), nil)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.loadSession(r, id); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	observability.Interaction().OnSessionClose(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents applies one event or an array of events. The batch is
// atomic: if any event is rejected the stored state is left unchanged.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.loadSession(r, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	events, err := decodeEvents(http.MaxBytesReader(w, r.Body, maxEventBody))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	eng := s.base.Fork(sess.State)
	var changes []Selection
	eng.OnSelect(func(id int, ok bool) {
		observability.Interaction().OnSelect(r.Context(), ok)
		if ok {
			changes = append(changes, Selection{ID: &id})
		} else {
			changes = append(changes, Selection{})
		}
	})
	hooks := observability.Interaction()
	for i, ev := range events {
		err := eng.Dispatch(ev)
		hooks.OnEvent(r.Context(), string(ev.Type), err)
		if err != nil {
			s.fail(w, r, fmt.Errorf("event %d: %w", i, err))
			return
		}
	}

	sess.State = eng.State()
	sess.Touch(s.cfg.SessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeSession(w, r, http.StatusOK, sess, eng, changes)
}

// handleSessionDiagram renders the session's current state. Like
// handleGetSession it extends the session's expiry.
func (s *Server) handleSessionDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.locks.Lock(id)
	sess, err := s.loadSession(r, id)
	if err == nil {
		s.keepAlive(r, sess)
	}
	unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteBytes(w, contentTypeSVG, s.svg(r, s.base.Fork(sess.State).Scene()))
}

// keepAlive extends the expiry of a session that was read and stores it.
// The caller holds the session lock. A failed write is logged and the read
// still succeeds; the session then expires on its previous deadline.
func (s *Server) keepAlive(r *http.Request, sess *session.Session) {
	if s.cfg.SessionTTL <= 0 {
		return
	}
	sess.Extend(s.cfg.SessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.logger.Warn("extend session", "id", sess.ID, "err", err)
	}
}

// loadSession returns SESSION_NOT_FOUND for missing and expired sessions.
func (s *Server) loadSession(r *http.Request, id string) (*session.Session, error) {
	if err := errors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load session %s", id)
	}
	if sess == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return sess, nil
}

func decodeEvents(body io.Reader) ([]interact.Event, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "read events")
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var events []interact.Event
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode events")
		}
		for i, ev := range events {
			if err := ev.Validate(); err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
		}
		return events, nil
	}
	ev, err := interact.ParseEvent(data)
	if err != nil {
		return nil, err
	}
	return []interact.Event{ev}, nil
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, status int, sess *session.Session, eng *flow.Engine, changes []Selection) {
	scene, err := s.sceneJSON(eng.Scene())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, status, SessionResponse{Session: sess, Selection: changes, Scene: scene})
}

func (s *Server) sceneJSON(scene flow.Scene) ([]byte, error) {
	return sink.RenderJSON(scene, sink.WithJSONStyle(s.opts.Style))
}

// svg renders scene with the configured options; ?interactive=1 embeds
// the browser script even when the server default is static.
func (s *Server) svg(r *http.Request, scene flow.Scene) []byte {
	opts := s.svgOpts
	if httputil.BoolParam(r, "interactive") {
		opts = append(opts[:len(opts):len(opts)], sink.WithInteractive())
	}
	return sink.RenderSVG(scene, opts...)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		return
	}
	s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
}
