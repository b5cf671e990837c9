package runner

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/network"
	"boscoin.io/congress/lib/network/httputils"
	"boscoin.io/congress/lib/node"
)

const (
	NodeInfoHandlerPattern string = "/"
	ConnectHandlerPattern  string = "/connect"
	MessageHandlerPattern  string = "/message"
)

// NetworkHandlerNode serves the node router. Unlike the public API it
// speaks the raw wire shapes: commands go in as signed JSON envelopes
// and come back as the bare campaign record they produced.
type NetworkHandlerNode struct {
	localNode *node.LocalNode
	network   network.Network
	ledger    *campaign.Ledger
	urlPrefix string
	conf      common.Config
}

func NewNetworkHandlerNode(
	localNode *node.LocalNode,
	network network.Network,
	ledger *campaign.Ledger,
	urlPrefix string,
	conf common.Config,
) *NetworkHandlerNode {
	return &NetworkHandlerNode{
		localNode: localNode,
		network:   network,
		ledger:    ledger,
		urlPrefix: urlPrefix,
		conf:      conf,
	}
}

func (api NetworkHandlerNode) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s%s", api.urlPrefix, pattern)
}

func (api NetworkHandlerNode) NodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	endpoint := api.localNode.PublishEndpoint()
	if endpoint == nil {
		// no publish endpoint, so the requested URL is the endpoint
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		endpoint, _ = common.NewEndpointFromString(fmt.Sprintf("%s://%s", scheme, r.Host))
	}

	o, err := json.Marshal(map[string]interface{}{
		"address":  api.localNode.Address(),
		"alias":    api.localNode.Alias(),
		"endpoint": endpoint.String(),
		"state":    api.localNode.State(),
	})
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	api.network.MessageBroker().Response(w, o)
}

func (api NetworkHandlerNode) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if r.Method != "POST" {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}

	api.network.MessageBroker().Receive(common.NetworkMessage{Type: common.ConnectMessage, Data: body})
	o, _ := api.localNode.Serialize()
	api.network.MessageBroker().Response(w, o)
}

// MessageHandler applies a posted command to the campaign ledger. The
// command is applied before the response is written, so a `200` means
// the state change took effect. A rejected command answers with the
// `errors.Error` serialization and the status code mapped from its
// code.
func (api NetworkHandlerNode) MessageHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if r.Method != "POST" {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if ct := r.Header.Get("Content-Type"); strings.ToLower(ct) != "application/json" {
		httputils.WriteJSONError(w, errors.ContentTypeNotJSON)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}

	checker := &CommandChecker{
		DefaultChecker: common.DefaultChecker{Funcs: HandleCommandCheckerFuncs},
		LocalNode:      api.localNode,
		Ledger:         api.ledger,
		NetworkID:      api.conf.NetworkID,
		Conf:           api.conf,
		Message:        common.NetworkMessage{Type: common.CommandMessage, Data: body},
		Log:            log.New("handler", "message"),
	}
	if err := common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		e, ok := err.(*errors.Error)
		if !ok {
			e = errors.InvalidMessage.Clone().SetData("error", err.Error())
		}

		b, _ := e.Serialize()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httputils.StatusCode(e))
		w.Write(b)
		return
	}

	o, err := checker.Result.Serialize()
	if err != nil {
		http.Error(w, "Error writing response", http.StatusInternalServerError)
		return
	}

	api.network.MessageBroker().Response(w, o)
}
