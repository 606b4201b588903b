package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 10 * time.Second

type reqData struct {
	req   *JRPCRequest
	resCh chan *JRPCResponse
}

func (s *APIServer) routes() {
	s.e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	s.e.POST("/api/endpoints/http", func(c echo.Context) error {
		defer c.Request().Body.Close()
		dec := json.NewDecoder(c.Request().Body)
		dec.UseNumber()

		var req JRPCRequest
		if err := dec.Decode(&req); err != nil {
			return c.JSON(http.StatusBadRequest, &JRPCResponse{
				JSONRPC: "2.0",
				Error:   err.Error(),
			})
		}
		res := s.dispatch(&req)
		if res == nil {
			return c.NoContent(http.StatusOK)
		}
		return c.JSON(http.StatusOK, res)
	})
	s.e.GET("/api/endpoints/websocket", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		Type := strings.ToLower(c.QueryParam("type"))
		switch Type {
		case "events":
			return s.serveEvents(conn)
		default:
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					return nil
				}
				dec := json.NewDecoder(bytes.NewReader(data))
				dec.UseNumber()

				var req JRPCRequest
				if err := dec.Decode(&req); err != nil {
					return err
				}
				res := s.dispatch(&req)
				if res != nil {
					if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
						return err
					}
					if err := conn.WriteJSON(res); err != nil {
						return err
					}
				}
			}
		}
	})
}

func (s *APIServer) dispatch(req *JRPCRequest) *JRPCResponse {
	resCh := make(chan *JRPCResponse, 1)
	s.reqCh <- &reqData{
		req:   req,
		resCh: resCh,
	}
	return <-resCh
}

// serveEvents writes every broadcast event to the connection until it fails
func (s *APIServer) serveEvents(conn *websocket.Conn) error {
	sub := s.hub.subscribe()
	defer s.hub.unsubscribe(sub)

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.unsubscribe(sub)
				return
			}
		}
	}()
	for ev := range sub {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := conn.WriteJSON(&JRPCNotification{
			JSONRPC: "2.0",
			Method:  "event",
			Params:  ev,
		}); err != nil {
			return nil
		}
	}
	return nil
}

// JRPC provides the json rpc feature as a SubName.FunctionName methods
func (s *APIServer) JRPC(SubName string) (*JRPCSub, error) {
	s.Lock()
	defer s.Unlock()

	if _, has := s.subMap[SubName]; has {
		return nil, ErrExistSubName
	}
	js := NewJRPCSub()
	s.subMap[SubName] = js
	return js, nil
}

func (s *APIServer) handleJRPC(req *JRPCRequest) *JRPCResponse {
	ls := strings.SplitN(req.Method, ".", 2)
	if len(ls) != 2 {
		return errorResponse(req, ErrInvalidMethod)
	}

	s.Lock()
	sub, has := s.subMap[ls[0]]
	s.Unlock()
	if !has {
		return errorResponse(req, ErrInvalidMethod)
	}

	fn, has := sub.get(ls[1])
	if !has {
		if req.ID == nil {
			return nil
		}
		return errorResponse(req, ErrInvalidMethod)
	}

	ret, err := fn(req.ID, NewArgument(req.Params))
	if req.ID == nil {
		return nil
	}
	res := &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
	}
	if err != nil {
		log.Debug("handleJRPC", "method", req.Method, "err", err)
		res.Error = err.Error()
	} else {
		res.Result = ret
	}
	return res
}

func errorResponse(req *JRPCRequest, err error) *JRPCResponse {
	return &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
		Error:   err.Error(),
	}
}
