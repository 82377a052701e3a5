package providers

import (
	"grailhunter/internal/structures"
	"net/http"
)

type RouterProviderInterface interface {
	Use(mw ...Middleware)
	Get(url string, handler http.HandlerFunc)
	Post(url string, handler http.HandlerFunc)
	GetRoutes() []structures.Route
	Handler() http.Handler
}

// RouterProvider collects API routes. Middlewares registered with Use wrap
// every route added afterwards, first registered outermost; the method check
// always runs before them.
type RouterProvider struct {
	routes      []structures.Route
	middlewares []Middleware
}

func (rp *RouterProvider) Use(mw ...Middleware) {
	rp.middlewares = append(rp.middlewares, mw...)
}

func (rp *RouterProvider) Get(url string, handler http.HandlerFunc) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.HandlerFunc) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	for i := len(rp.middlewares) - 1; i >= 0; i-- {
		handler = rp.middlewares[i](handler)
	}
	rp.routes = append(rp.routes, structures.Route{
		Method:  method,
		Url:     url,
		Handler: methodHandler(method, handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Handler mounts the routes on exact paths. Anything else is a JSON 404.
func (rp *RouterProvider) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range rp.routes {
		mux.Handle(route.Url, route.Handler)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})
	return mux
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		handler.ServeHTTP(w, r)
	})
}
