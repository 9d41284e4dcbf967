// Package router implements the handler registry: a per-method table
// of exact and regex URL matchers with an optional default handler,
// plus ordered pre/post interceptor chains, dispatching to the
// handlers defined in package fsutil or supplied by callers.
package router

import (
	"regexp"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/logging"
)

// Handler processes a request, mutating it (status, response headers,
// body) and driving its respond* lifecycle. Handlers are shared across
// worker goroutines and must be safe to call concurrently.
type Handler func(req *httpmsg.Request) error

// Interceptor observes or mutates a request and returns nothing. Like
// Handler, it must be concurrency-safe.
type Interceptor func(req *httpmsg.Request)

// Matcher selects which requests a handler applies to: either an
// exact literal path, or a compiled regular expression tested against
// the full URL.
type Matcher struct {
	literal string
	regex   *regexp.Regexp
}

// Literal matches a URL by exact string equality.
func Literal(url string) Matcher {
	return Matcher{literal: url}
}

// Regex compiles src and matches any URL the whole pattern matches.
func Regex(src string) (Matcher, error) {
	re, err := regexp.Compile(`^(?:` + src + `)$`)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{regex: re}, nil
}

// MustRegex is like Regex but panics on a compile error, for use with
// patterns known at init time.
func MustRegex(src string) Matcher {
	m, err := Regex(src)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Matcher) isRegex() bool { return m.regex != nil }

type methodRegistry struct {
	exact   map[string]Handler
	regex   []regexEntry
	def     Handler
}

type regexEntry struct {
	re      *regexp.Regexp
	handler Handler
}

// Router dispatches requests to handlers registered per method and
// URL matcher, running pre- and post-interceptor chains around each
// dispatch.
type Router struct {
	handlers          map[httpmsg.Method]*methodRegistry
	preInterceptors   []Interceptor
	postInterceptors  []Interceptor
}

// New returns an empty Router.
func New() *Router {
	return &Router{
		handlers: make(map[httpmsg.Method]*methodRegistry),
	}
}

func (rt *Router) registryFor(method httpmsg.Method) *methodRegistry {
	reg, ok := rt.handlers[method]
	if !ok {
		reg = &methodRegistry{exact: make(map[string]Handler)}
		rt.handlers[method] = reg
	}
	return reg
}

// Add registers h for method, matched by m.
func (rt *Router) Add(method httpmsg.Method, m Matcher, h Handler) {
	reg := rt.registryFor(method)
	if m.isRegex() {
		reg.regex = append(reg.regex, regexEntry{re: m.regex, handler: h})
		return
	}
	reg.exact[m.literal] = h
}

// Get is a shortcut for Add(MethodGET, ...).
func (rt *Router) Get(m Matcher, h Handler) { rt.Add(httpmsg.MethodGET, m, h) }

// Post is a shortcut for Add(MethodPOST, ...).
func (rt *Router) Post(m Matcher, h Handler) { rt.Add(httpmsg.MethodPOST, m, h) }

// Delete is a shortcut for Add(MethodDELETE, ...).
func (rt *Router) Delete(m Matcher, h Handler) { rt.Add(httpmsg.MethodDELETE, m, h) }

// Head is a shortcut for Add(MethodHEAD, ...).
func (rt *Router) Head(m Matcher, h Handler) { rt.Add(httpmsg.MethodHEAD, m, h) }

// AddDefault registers h as the fallback handler for method, used when
// no exact or regex matcher applies.
func (rt *Router) AddDefault(method httpmsg.Method, h Handler) {
	rt.registryFor(method).def = h
}

// PreInterceptor appends f to the chain run before dispatch, in
// insertion order.
func (rt *Router) PreInterceptor(f Interceptor) {
	rt.preInterceptors = append(rt.preInterceptors, f)
}

// PostInterceptor appends f to the chain run after dispatch, in
// insertion order.
func (rt *Router) PostInterceptor(f Interceptor) {
	rt.postInterceptors = append(rt.postInterceptors, f)
}

// GetHandler returns the handler that would serve (method, url): an
// exact match first, then the first matching regex in insertion
// order, then the method's default. Returns nil if none apply.
func (rt *Router) GetHandler(method httpmsg.Method, url string) Handler {
	reg, ok := rt.handlers[method]
	if !ok {
		return nil
	}
	if h, ok := reg.exact[url]; ok {
		return h
	}
	for _, e := range reg.regex {
		if e.re.MatchString(url) {
			return e.handler
		}
	}
	return reg.def
}

// Handle dispatches req: runs pre-interceptors, selects and executes a
// handler (responding 403 Forbidden if none match, 500 Internal Server
// Error if the handler returns an error), then runs post-interceptors.
func (rt *Router) Handle(req *httpmsg.Request) error {
	for _, f := range rt.preInterceptors {
		f(req)
	}

	var result error
	if h := rt.GetHandler(req.Method(), req.URL()); h != nil {
		if err := h(req); err != nil {
			logging.Errorf("handler failed: %v", err)
			result = req.ServerError()
		}
	} else {
		result = req.Forbidden()
	}

	for _, f := range rt.postInterceptors {
		f(req)
	}
	return result
}
