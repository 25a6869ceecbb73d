package contracts

import "github.com/julienschmidt/httprouter"

// Handler registers a feature's routes on the shared router.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
