package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"glampd/internal/catalog"
	"glampd/internal/grid"
	"glampd/internal/identity"
	"glampd/internal/profile"
	"glampd/internal/session"
	"glampd/pkg/types"
)

// Catalog defines the listing-source methods required by the HTTP API layer.
type Catalog interface {
	Segments() []types.Segment
	Records(seg types.Segment) []types.ListingRecord
	Find(seg types.Segment, id int) (types.ListingRecord, bool)
}

// Auth defines the session-adapter methods required by the HTTP API layer.
type Auth interface {
	SignInWithEmail(ctx context.Context, email, password string) (identity.AuthUser, error)
	SignUpWithEmail(ctx context.Context, email, password, displayName string) (identity.AuthUser, error)
	SignInWithGoogle(ctx context.Context, email, displayName string) (identity.AuthUser, error)
	SignOut(ctx context.Context) error
	UpdateUserProfile(ctx context.Context, uid string, u profile.Updates) error
	Current() session.State
}

// Server wires the catalog, per-segment grid controllers, and the session
// adapter behind one mux.
type Server struct {
	catalog Catalog
	auth    Auth
	seed    int
	step    int

	mu    sync.Mutex
	grids map[string]*grid.Controller
}

// NewServer constructs the API server. Grid controllers are created lazily,
// one per segment, seeded from the catalog.
func NewServer(c Catalog, a Auth, seed, step int) *Server {
	return &Server{
		catalog: c,
		auth:    a,
		seed:    seed,
		step:    step,
		grids:   make(map[string]*grid.Controller),
	}
}

// NewMux builds the chi router for the server.
func NewMux(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(RequestLogger)
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/segments", s.handleSegments)
	r.Get("/listings/{brand}/{market}", s.handleListings)
	r.Get("/listings/{brand}/{market}/{id}", s.handleListing)

	r.Get("/grid/{brand}/{market}", s.handleGridState)
	r.Post("/grid/{brand}/{market}/sentinel", s.handleGridSentinel)
	r.Post("/grid/{brand}/{market}/reset", s.handleGridReset)

	r.Post("/auth/signin", s.handleSignIn)
	r.Post("/auth/signup", s.handleSignUp)
	r.Post("/auth/oauth", s.handleOAuth)
	r.Post("/auth/signout", s.handleSignOut)
	r.Get("/auth/me", s.handleMe)
	r.Patch("/profiles/{uid}", s.handleUpdateProfile)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.Current().Loading {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.SegmentsResponse{Segments: s.catalog.Segments()})
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	seg, ok := s.segmentParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, types.ListingsResponse{Segment: seg, Listings: s.catalog.Records(seg)})
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	seg, ok := s.segmentParam(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "listing id must be an integer")
		return
	}
	rec, found := s.catalog.Find(seg, id)
	if !found {
		writeJSONError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeJSON(w, rec)
}

func (s *Server) handleGridState(w http.ResponseWriter, r *http.Request) {
	seg, ok := s.segmentParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.gridResponse(seg, s.gridFor(seg)))
}

func (s *Server) handleGridSentinel(w http.ResponseWriter, r *http.Request) {
	seg, ok := s.segmentParam(w, r)
	if !ok {
		return
	}
	c := s.gridFor(seg)
	c.OnSentinelVisible()
	IncrementGridReveal(seg.String())
	writeJSON(w, s.gridResponse(seg, c))
}

func (s *Server) handleGridReset(w http.ResponseWriter, r *http.Request) {
	seg, ok := s.segmentParam(w, r)
	if !ok {
		return
	}
	c := s.gridFor(seg)
	c.Initialize(s.catalog.Records(seg))
	writeJSON(w, s.gridResponse(seg, c))
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req types.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if _, err := s.auth.SignInWithEmail(r.Context(), req.Email, req.Password); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, sessionResponse(s.auth.Current()))
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req types.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if _, err := s.auth.SignUpWithEmail(r.Context(), req.Email, req.Password, req.DisplayName); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, sessionResponse(s.auth.Current()))
}

func (s *Server) handleOAuth(w http.ResponseWriter, r *http.Request) {
	var req types.OAuthSignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeJSONError(w, http.StatusBadRequest, "email is required")
		return
	}
	if _, err := s.auth.SignInWithGoogle(r.Context(), req.Email, req.DisplayName); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, sessionResponse(s.auth.Current()))
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.SignOut(r.Context()); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, sessionResponse(s.auth.Current()))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, sessionResponse(s.auth.Current()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	state := s.auth.Current()
	if state.User == nil {
		writeJSONError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if state.User.UID != uid && (state.Profile == nil || state.Profile.Role != types.RoleAdmin) {
		writeJSONError(w, http.StatusForbidden, "cannot update another user's profile")
		return
	}
	var req types.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.auth.UpdateUserProfile(r.Context(), uid, profile.Updates{DisplayName: req.DisplayName}); err != nil {
		if err == profile.ErrNotFound {
			writeJSONError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeAuthError(w, err)
		return
	}
	writeJSON(w, sessionResponse(s.auth.Current()))
}

// gridFor returns the segment's controller, creating and seeding it on
// first use.
func (s *Server) gridFor(seg types.Segment) *grid.Controller {
	key := seg.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.grids[key]
	if !ok {
		c = grid.New(s.seed, s.step)
		c.Initialize(s.catalog.Records(seg))
		s.grids[key] = c
	}
	return c
}

func (s *Server) gridResponse(seg types.Segment, c *grid.Controller) types.GridStateResponse {
	snap := c.Snapshot()
	return types.GridStateResponse{
		Segment:      seg,
		VisibleCount: snap.VisibleCount,
		TotalRecords: snap.TotalRecords,
		Exhausted:    snap.Exhausted,
		Slots:        c.Slots(),
	}
}

func (s *Server) segmentParam(w http.ResponseWriter, r *http.Request) (types.Segment, bool) {
	raw := chi.URLParam(r, "brand") + "/" + chi.URLParam(r, "market")
	seg, err := catalog.ParseSegment(raw)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return types.Segment{}, false
	}
	return seg, true
}

func sessionResponse(st session.State) types.SessionResponse {
	resp := types.SessionResponse{Authenticated: st.User != nil, Profile: st.Profile}
	if st.User != nil {
		resp.Token = st.User.Token
	}
	return resp
}

// decodeJSON enforces content type and body limits, then decodes into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
