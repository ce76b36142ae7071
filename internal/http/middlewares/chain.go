package middlewares

import "net/http"

// Middleware es un decorador de http.Handler
type Middleware func(http.Handler) http.Handler

// Chain envuelve un handler con la lista de middlewares: el primero de la
// lista queda más afuera (intercepta primero el request, ve último la
// respuesta). El router la usa para aplicar la cadena global sobre el mux.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
