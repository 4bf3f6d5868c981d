package server

import (
	"net/http"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/plugins/platform"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Accessory API representation.
type accessoryView struct {
	UUID      string                       `json:"uuid"`
	AID       uint64                       `json:"aid"`
	Name      string                       `json:"name"`
	Category  byte                         `json:"category"`
	Plugin    string                       `json:"plugin"`
	Platform  string                       `json:"platform"`
	Published bool                         `json:"published"`
	State     []*common.MsgAccessoryUpdate `json:"state"`
}

// Returns all known accessories.
func (s *SIPBridgeServer) getAccessories(writer http.ResponseWriter, _ *http.Request) {
	all := s.api.Accessories()
	out := make([]*accessoryView, 0, len(all))
	for _, v := range all {
		out = append(out, s.view(v))
	}

	respond(writer, out)
}

// Returns single accessory.
func (s *SIPBridgeServer) getAccessory(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	raw := vars[string(urlAccessoryID)]
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(writer, http.StatusBadRequest, &ErrBadRequest{})
		return
	}

	a, ok := s.api.Accessory(id)
	if !ok {
		respondError(writer, http.StatusNotFound, &ErrUnknownAccessory{ID: raw})
		return
	}

	respond(writer, s.view(a))
}

func (s *SIPBridgeServer) view(a *platform.PlatformAccessory) *accessoryView {
	return &accessoryView{
		UUID:      a.UUID.String(),
		AID:       a.AID,
		Name:      a.DisplayName,
		Category:  a.Category,
		Plugin:    a.PluginName,
		Platform:  a.PlatformName,
		Published: s.isPublished(a),
		State:     s.state.GetAccessory(a.UUID.String()),
	}
}
