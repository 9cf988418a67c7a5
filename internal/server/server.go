package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"courseops/internal/store"
)

const (
	apiTokenEnvKey    = "COURSEOPS_API_TOKEN"
	adminTokenEnvKey  = "COURSEOPS_ADMIN_TOKEN"
	allowRemoteEnvKey = "COURSEOPS_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server wraps HTTP handlers for the courseops tracker API.
type Server struct {
	addr       string
	dbPath     string
	store      store.ItemStore
	prefix     string
	service    *ItemService
	milestones store.MilestoneStore
	boards     store.BoardStore
	labelDefs  store.LabelDefStore
	tokens     store.TokenStore
	logger     *slog.Logger
	apiToken   string
	adminToken string
}

// New creates a new server instance. Optional store capabilities are
// discovered by type assertion; routes for a missing capability answer
// 501.
func New(addr, dbPath string, itemStore store.ItemStore, prefix string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:       addr,
		dbPath:     dbPath,
		store:      itemStore,
		prefix:     prefix,
		service:    NewItemService(itemStore, prefix),
		logger:     logger,
		apiToken:   strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
		adminToken: strings.TrimSpace(os.Getenv(adminTokenEnvKey)),
	}

	if milestones, ok := any(itemStore).(store.MilestoneStore); ok {
		s.milestones = milestones
	}
	if boards, ok := any(itemStore).(store.BoardStore); ok {
		s.boards = boards
	}
	if labelDefs, ok := any(itemStore).(store.LabelDefStore); ok {
		s.labelDefs = labelDefs
	}
	if tokens, ok := any(itemStore).(store.TokenStore); ok {
		s.tokens = tokens
	}

	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
