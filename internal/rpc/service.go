package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Service groups the procedures of one Connect service under "/<name>/".
type Service struct {
	name       string
	mux        *http.ServeMux
	opts       []connect.HandlerOption
	procedures []string
}

// NewService creates an empty service. The JSON codec is always registered.
func NewService(name string, opts ...connect.HandlerOption) *Service {
	return &Service{
		name: name,
		mux:  http.NewServeMux(),
		opts: append([]connect.HandlerOption{WithJSON()}, opts...),
	}
}

// Procedure returns the full procedure path for a method of the named service.
func Procedure(service, method string) string {
	return "/" + service + "/" + method
}

// Handle registers a unary method on s.
func Handle[Req, Res any](s *Service, method string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	procedure := Procedure(s.name, method)
	s.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, s.opts...))
	s.procedures = append(s.procedures, procedure)
}

// Name returns the service name.
func (s *Service) Name() string { return s.name }

// Path is the mux pattern that routes to this service.
func (s *Service) Path() string { return "/" + s.name + "/" }

// Procedures lists the registered procedure paths in registration order.
func (s *Service) Procedures() []string {
	return append([]string(nil), s.procedures...)
}

// Handler returns the service's HTTP handler.
func (s *Service) Handler() http.Handler { return s.mux }

// Mount registers the service on mux, mirroring generated handler constructors.
func (s *Service) Mount(mux *http.ServeMux) {
	mux.Handle(s.Path(), s.mux)
}

// IsProcedurePath reports whether an HTTP path targets one of the packages
// under prefix (for example "/apartmanager.v1.").
func IsProcedurePath(path, prefix string) bool {
	return strings.HasPrefix(path, prefix)
}

// NewClient creates a client for one procedure using the JSON codec.
func NewClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts ...connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
