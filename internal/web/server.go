// Package web exposes the campaign service as a JSON HTTP API. Handlers
// stay thin: decode, call the service, map errors to status codes. All
// mutation and search semantics live below the service interface.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/search"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
	"github.com/KeeghanM/arc-aide-sub000/internal/validate"
)

// Server routes HTTP requests to a campaign service.
type Server struct {
	svc service.Service
}

// NewServer returns a Server over svc.
func NewServer(svc service.Service) *Server {
	return &Server{svc: svc}
}

// Handler returns the full route table wrapped in request-id middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/campaigns", s.handleListCampaigns)
	mux.HandleFunc("POST /api/campaigns", s.handleCreateCampaign)
	mux.HandleFunc("GET /api/campaigns/{campaign}", s.handleGetCampaign)
	mux.HandleFunc("DELETE /api/campaigns/{campaign}", s.handleDeleteCampaign)

	mux.HandleFunc("GET /api/campaigns/{campaign}/search", s.handleSearch)

	mux.HandleFunc("GET /api/campaigns/{campaign}/arcs", s.handleListArcs)
	mux.HandleFunc("POST /api/campaigns/{campaign}/arcs", s.handleCreateArc)
	mux.HandleFunc("GET /api/campaigns/{campaign}/arcs/{slug}", s.handleGetArc)
	mux.HandleFunc("PATCH /api/campaigns/{campaign}/arcs/{slug}", s.handleRenameArc)
	mux.HandleFunc("DELETE /api/campaigns/{campaign}/arcs/{slug}", s.handleDeleteArc)
	mux.HandleFunc("PUT /api/campaigns/{campaign}/arcs/{slug}/fields/{field}", s.handleUpdateArcField)
	mux.HandleFunc("GET /api/campaigns/{campaign}/arcs/{slug}/links", s.handleArcLinks)
	mux.HandleFunc("GET /api/campaigns/{campaign}/arcs/{slug}/things", s.handleThingsForArc)
	mux.HandleFunc("PUT /api/campaigns/{campaign}/arcs/{slug}/things/{thing}", s.handleAttachThing)
	mux.HandleFunc("DELETE /api/campaigns/{campaign}/arcs/{slug}/things/{thing}", s.handleDetachThing)

	mux.HandleFunc("GET /api/campaigns/{campaign}/things", s.handleListThings)
	mux.HandleFunc("POST /api/campaigns/{campaign}/things", s.handleCreateThing)
	mux.HandleFunc("GET /api/campaigns/{campaign}/things/{slug}", s.handleGetThing)
	mux.HandleFunc("PATCH /api/campaigns/{campaign}/things/{slug}", s.handleRenameThing)
	mux.HandleFunc("DELETE /api/campaigns/{campaign}/things/{slug}", s.handleDeleteThing)
	mux.HandleFunc("PUT /api/campaigns/{campaign}/things/{slug}/description", s.handleUpdateThingDescription)
	mux.HandleFunc("GET /api/campaigns/{campaign}/things/{slug}/links", s.handleThingLinks)

	mux.HandleFunc("GET /api/campaigns/{campaign}/types", s.handleListTypes)
	mux.HandleFunc("POST /api/campaigns/{campaign}/types", s.handleCreateType)

	return requestID(mux)
}

// requestID tags every request with an X-Request-Id so log lines and client
// reports can be correlated. Incoming ids are passed through.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP status codes. Unknown errors are
// reported as 500 without leaking internals beyond the message.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, store.ErrUnknownField),
		errors.Is(err, validate.ErrInvalidName),
		errors.Is(err, validate.ErrNameTooLong),
		errors.Is(err, validate.ErrInvalidSlug),
		errors.Is(err, validate.ErrInvalidKind),
		errors.Is(err, validate.ErrContentTooLarge):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	var campaigns int
	err := s.svc.DB().QueryRowContext(r.Context(), `SELECT COUNT(*) FROM campaigns`).Scan(&campaigns)
	status := "ok"
	if err != nil {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"campaigns": campaigns,
	})
}

// --- Campaigns ---

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.svc.Campaigns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]store.CampaignJSON, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, campaigns[i].ToJSON())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c, err := s.svc.CreateCampaign(r.Context(), req.Name)
	log.Event("web:campaigns", "create").Detail("name", req.Name).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c.ToJSON())
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Campaign(r.Context(), r.PathValue("campaign"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.ToJSON())
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := r.PathValue("campaign")
	err := s.svc.DeleteCampaign(r.Context(), campaign)
	log.Event("web:campaigns", "delete").Campaign(campaign).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Search ---

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	campaign := r.PathValue("campaign")
	q := r.URL.Query()

	opts := service.SearchOptions{Kind: q.Get("type")}
	if v := q.Get("fuzzy"); v != "" {
		fuzzy := v == "true" || v == "1"
		opts.Fuzzy = &fuzzy
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Limit = n
		}
	}

	resp, err := s.svc.Search(r.Context(), campaign, q.Get("q"), opts)
	ev := log.Event("web:search", "search").Campaign(campaign).
		Detail("query", q.Get("q")).Detail("count", len(resp.Results))
	if resp.Degraded {
		ev.Detail("degraded", fmt.Sprint(resp.DegradedErr))
	}
	ev.Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	if resp.Results == nil {
		resp.Results = []search.Hit{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Arcs ---

func (s *Server) handleListArcs(w http.ResponseWriter, r *http.Request) {
	arcs, err := s.svc.Arcs(r.Context(), r.PathValue("campaign"), r.URL.Query().Get("parent"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]store.ArcJSON, 0, len(arcs))
	for i := range arcs {
		out = append(out, arcs[i].ToJSON(false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateArc(w http.ResponseWriter, r *http.Request) {
	campaign := r.PathValue("campaign")
	var req struct {
		Name   string `json:"name"`
		Parent string `json:"parent,omitempty"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	arc, err := s.svc.CreateArc(r.Context(), campaign, req.Name, req.Parent)
	log.Event("web:arcs", "create").Campaign(campaign).Detail("name", req.Name).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, arc.ToJSON(true))
}

func (s *Server) handleGetArc(w http.ResponseWriter, r *http.Request) {
	arc, err := s.svc.Arc(r.Context(), r.PathValue("campaign"), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	content := r.URL.Query().Get("content") != "false"
	writeJSON(w, http.StatusOK, arc.ToJSON(content))
}

func (s *Server) handleRenameArc(w http.ResponseWriter, r *http.Request) {
	campaign, slug := r.PathValue("campaign"), r.PathValue("slug")
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	res, err := s.svc.RenameArc(r.Context(), campaign, slug, req.Name)
	log.Event("web:arcs", "rename").Campaign(campaign).
		Entity(store.KindArc, slug).Resolved(res.NewSlug).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteArc(w http.ResponseWriter, r *http.Request) {
	campaign, slug := r.PathValue("campaign"), r.PathValue("slug")
	err := s.svc.DeleteArc(r.Context(), campaign, slug)
	log.Event("web:arcs", "delete").Campaign(campaign).Entity(store.KindArc, slug).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateArcField(w http.ResponseWriter, r *http.Request) {
	campaign, slug, field := r.PathValue("campaign"), r.PathValue("slug"), r.PathValue("field")
	var req struct {
		Document json.RawMessage `json:"document"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	err := s.svc.UpdateArcField(r.Context(), campaign, slug, field, string(req.Document))
	log.Event("web:arcs", "update").Campaign(campaign).
		Entity(store.KindArc, slug).Detail("field", field).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArcLinks(w http.ResponseWriter, r *http.Request) {
	s.handleLinks(w, r, store.KindArc)
}

func (s *Server) handleThingLinks(w http.ResponseWriter, r *http.Request) {
	s.handleLinks(w, r, store.KindThing)
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request, kind string) {
	links, err := s.svc.Links(r.Context(), r.PathValue("campaign"), kind, r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if links == nil {
		links = []service.ResolvedLink{}
	}
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) handleThingsForArc(w http.ResponseWriter, r *http.Request) {
	things, err := s.svc.ThingsForArc(r.Context(), r.PathValue("campaign"), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]store.ThingJSON, 0, len(things))
	for i := range things {
		out = append(out, things[i].ToJSON(false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAttachThing(w http.ResponseWriter, r *http.Request) {
	campaign := r.PathValue("campaign")
	err := s.svc.AttachThing(r.Context(), campaign, r.PathValue("slug"), r.PathValue("thing"))
	log.Event("web:arcs", "attach").Campaign(campaign).
		Entity(store.KindArc, r.PathValue("slug")).Detail("thing", r.PathValue("thing")).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDetachThing(w http.ResponseWriter, r *http.Request) {
	campaign := r.PathValue("campaign")
	err := s.svc.DetachThing(r.Context(), campaign, r.PathValue("slug"), r.PathValue("thing"))
	log.Event("web:arcs", "detach").Campaign(campaign).
		Entity(store.KindArc, r.PathValue("slug")).Detail("thing", r.PathValue("thing")).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Things ---

func (s *Server) handleListThings(w http.ResponseWriter, r *http.Request) {
	things, err := s.svc.Things(r.Context(), r.PathValue("campaign"), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]store.ThingJSON, 0, len(things))
	for i := range things {
		out = append(out, things[i].ToJSON(false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateThing(w http.ResponseWriter, r *http.Request) {
	campaign := r.PathValue("campaign")
	var req struct {
		Name string `json:"name"`
		Type string `json:"type,omitempty"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	th, err := s.svc.CreateThing(r.Context(), campaign, req.Name, req.Type)
	log.Event("web:things", "create").Campaign(campaign).Detail("name", req.Name).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, th.ToJSON(true))
}

func (s *Server) handleGetThing(w http.ResponseWriter, r *http.Request) {
	th, err := s.svc.Thing(r.Context(), r.PathValue("campaign"), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	content := r.URL.Query().Get("content") != "false"
	writeJSON(w, http.StatusOK, th.ToJSON(content))
}

func (s *Server) handleRenameThing(w http.ResponseWriter, r *http.Request) {
	campaign, slug := r.PathValue("campaign"), r.PathValue("slug")
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	res, err := s.svc.RenameThing(r.Context(), campaign, slug, req.Name)
	log.Event("web:things", "rename").Campaign(campaign).
		Entity(store.KindThing, slug).Resolved(res.NewSlug).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteThing(w http.ResponseWriter, r *http.Request) {
	campaign, slug := r.PathValue("campaign"), r.PathValue("slug")
	err := s.svc.DeleteThing(r.Context(), campaign, slug)
	log.Event("web:things", "delete").Campaign(campaign).Entity(store.KindThing, slug).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateThingDescription(w http.ResponseWriter, r *http.Request) {
	campaign, slug := r.PathValue("campaign"), r.PathValue("slug")
	var req struct {
		Document json.RawMessage `json:"document"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	err := s.svc.UpdateThingDescription(r.Context(), campaign, slug, string(req.Document))
	log.Event("web:things", "update").Campaign(campaign).Entity(store.KindThing, slug).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Thing types ---

func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.svc.ThingTypes(r.Context(), r.PathValue("campaign"))
	if err != nil {
		writeError(w, err)
		return
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleCreateType(w http.ResponseWriter, r *http.Request) {
	campaign := r.PathValue("campaign")
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	tt, err := s.svc.CreateThingType(r.Context(), campaign, req.Name)
	log.Event("web:types", "create").Campaign(campaign).Detail("name", req.Name).Write(err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": tt.Name})
}
