package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that mount routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts the versioned API surface on a gin engine
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
	system     RouteRegistrar
}

// New creates a Router. System routes (probes) are mounted at the root,
// everything else under /v1.
func New(engine *gin.Engine, system RouteRegistrar, registrars ...RouteRegistrar) *Router {
	return &Router{
		engine:     engine,
		registrars: registrars,
		system:     system,
	}
}

// Setup registers all routes
func (r *Router) Setup() {
	if r.system != nil {
		r.system.RegisterRoutes(r.engine.Group(""))
	}

	v1 := r.engine.Group("/v1")
	for _, reg := range r.registrars {
		reg.RegisterRoutes(v1)
	}
}
