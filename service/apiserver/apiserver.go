package apiserver

import (
	"net/http"
	"sync"

	"github.com/labstack/echo"

	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/core/types"
)

var log = rlog.New("apiserver")

const workerCount = 50

// APIServer provides json rpc over http and websocket for the pool views
type APIServer struct {
	sync.Mutex
	e         *echo.Echo
	subMap    map[string]*JRPCSub
	reqCh     chan *reqData
	hub       *eventHub
	startOnce sync.Once
}

// NewAPIServer returns a APIServer
func NewAPIServer() *APIServer {
	s := &APIServer{
		e:      echo.New(),
		subMap: map[string]*JRPCSub{},
		reqCh:  make(chan *reqData),
		hub:    newEventHub(),
	}
	s.e.HideBanner = true
	s.routes()
	return s
}

// SetMetrics serves the handler on GET /metrics
func (s *APIServer) SetMetrics(h http.Handler) {
	s.e.GET("/metrics", echo.WrapHandler(h))
}

// Broadcast pushes the events to every websocket subscriber
func (s *APIServer) Broadcast(evs []*types.Event) {
	for _, ev := range evs {
		s.hub.publish(ev)
	}
}

// Handler starts the request workers and returns the http handler of the server
func (s *APIServer) Handler() http.Handler {
	s.startOnce.Do(func() {
		for i := 0; i < workerCount; i++ {
			go func() {
				for r := range s.reqCh {
					r.resCh <- s.handleJRPC(r.req)
				}
			}()
		}
	})
	return s.e
}

// Run starts web service of the apiserver
func (s *APIServer) Run(BindAddress string) error {
	s.Handler()
	log.Info("Run", "bind", BindAddress)
	return s.e.Start(BindAddress)
}

// Close stops the web service and drops the subscribers
func (s *APIServer) Close() error {
	s.hub.close()
	return s.e.Close()
}
