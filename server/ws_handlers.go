package server

import (
	"net/http"
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/gorilla/websocket"
)

// WS connection with serialized writes.
type wsConn struct {
	sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v interface{}) error {
	c.Lock()
	defer c.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *wsConn) writeMessage(mt int, data []byte) error {
	c.Lock()
	defer c.Unlock()
	return c.conn.WriteMessage(mt, data)
}

// Handles WS upgrade request.
func (s *SIPBridgeServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogSystemToken, logSystem)
		return
	}

	go s.processWSConnection(&wsConn{conn: c})
}

// Streams accessory updates into WS connection.
func (s *SIPBridgeServer) processWSConnection(conn *wsConn) {
	stop := make(chan bool, 1)
	go s.processIncomingWSMessages(conn, stop)

	subID, updates := s.Settings.FanOut().SubscribeAccessoryUpdates()
	defer s.Settings.FanOut().UnSubscribeAccessoryUpdates(subID)

	for {
		select {
		case <-stop:
			return
		case msg, ok := <-updates:
			if !ok {
				conn.conn.Close() // nolint: gosec, errcheck
				return
			}

			if err := conn.writeJSON(msg); err != nil {
				s.Logger.Debug("Failed to write WS message", common.LogSystemToken, logSystem,
					common.LogErrorToken, err.Error())
			}
		}
	}
}

// Processes incoming WS messages.
func (s *SIPBridgeServer) processIncomingWSMessages(conn *wsConn, stop chan bool) {
	defer conn.conn.Close() // nolint: errcheck
	for {
		mt, message, err := conn.conn.ReadMessage()
		if err != nil {
			s.Logger.Debug("Closing WS connection", common.LogSystemToken, logSystem)
			stop <- true
			return
		}

		// Ping request comes as a un-wrapped string
		if "ping" == string(message) {
			conn.writeMessage(mt, []byte("pong")) // nolint: gosec, errcheck
		}
	}
}
