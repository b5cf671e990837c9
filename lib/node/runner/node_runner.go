//
// Struct that bridges together components of a node
//
// NodeRunner bridges together the network, the storage and the campaign
// ledger of `LocalNode`. In this regard, it can be seen as a single node,
// and is used as such in unit tests.
//
package runner

import (
	"net/http"
	"net/http/pprof"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/network"
	"boscoin.io/congress/lib/network/httpcache"
	"boscoin.io/congress/lib/node"
	"boscoin.io/congress/lib/node/runner/api"
	"boscoin.io/congress/lib/storage"
)

var HandleCommandCheckerFuncs = []common.CheckerFunc{
	CommandUnmarshal,
	CommandVerifyWellFormed,
	CommandDispatch,
}

type NodeRunner struct {
	localNode *node.LocalNode
	network   network.Network
	ledger    *campaign.Ledger
	storage   *storage.LevelDBBackend

	handleCommandCheckerFuncs []common.CheckerFunc

	log logging.Logger

	Conf     common.Config
	nodeInfo node.NodeInfo
}

func NewNodeRunner(
	localNode *node.LocalNode,
	n network.Network,
	ledger *campaign.Ledger,
	conf common.Config,
) (nr *NodeRunner, err error) {
	nr = &NodeRunner{
		localNode: localNode,
		network:   n,
		ledger:    ledger,
		storage:   ledger.Storage(),
		log:       log.New(logging.Ctx{"node": localNode.Alias()}),
		Conf:      conf,
	}
	nr.localNode.SetBooting()

	nr.SetHandleCommandCheckerFuncs(HandleCommandCheckerFuncs...)

	{
		// the campaign record must exist before the node serves anything
		var c *campaign.Campaign
		if c, err = nr.ledger.Campaign(); err != nil {
			return
		}
		nr.log.Debug("campaign found", "admin", c.Admin, "phase", c.Phase, "generation", c.Generation)
	}

	nr.nodeInfo = NewNodeInfo(nr)

	return
}

func (nr *NodeRunner) Ready() {
	rateLimitMiddlewareAPI := network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleAPI)
	if err := nr.network.AddMiddleware(network.RouterNameAPI, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameAPI` has an error", "err", err)
		return
	}
	rateLimitMiddlewareNode := network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleNode)
	if err := nr.network.AddMiddleware(network.RouterNameNode, rateLimitMiddlewareNode); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameNode` has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameMetric, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameMetric` router has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameDebug, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameDebug` router has an error", "err", err)
		return
	}

	// BaseRouter's middlewares impact all sub routers.
	if err := nr.network.AddMiddleware("", network.RecoverMiddleware(nr.log)); err != nil {
		nr.log.Error("Middleware has an error", "err", err)
		return
	}

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
		err := nr.network.AddMiddleware(network.RouterNameAPI, cors)
		if err != nil {
			nr.log.Error("Middleware has an error", "err", err)
			return
		}
	}

	// node handlers
	nodeHandler := NewNetworkHandlerNode(
		nr.localNode,
		nr.network,
		nr.ledger,
		network.UrlPathPrefixNode,
		nr.Conf,
	)

	nr.network.AddHandler(nodeHandler.HandlerURLPattern(NodeInfoHandlerPattern), nodeHandler.NodeInfoHandler)
	nr.network.AddHandler(nodeHandler.HandlerURLPattern(ConnectHandlerPattern), nodeHandler.ConnectHandler).
		Methods("POST").
		Headers("Content-Type", "application/json")
	nr.network.AddHandler(nodeHandler.HandlerURLPattern(MessageHandlerPattern), nodeHandler.MessageHandler).
		Methods("POST").
		Headers("Content-Type", "application/json")

	nr.network.AddHandler(network.UrlPathPrefixMetric, promhttp.Handler().ServeHTTP)

	// cached variants for the read-mostly endpoints
	cached := func(handler http.HandlerFunc) http.HandlerFunc { return handler }
	if adapter, err := httpcache.NewAdapter(nr.Conf); err != nil {
		nr.log.Error("http cache is disabled", "err", err)
	} else {
		client, err := httpcache.NewClient(
			httpcache.WithAdapter(adapter),
			httpcache.WithExpire(HTTPCacheTimeout),
			httpcache.WithLogger(nr.log),
		)
		if err != nil {
			nr.log.Error("http cache client has an error", "err", err)
			return
		}
		cached = client.WrapHandlerFunc
	}

	// api handlers
	apiHandler := api.NewNetworkHandlerAPI(
		nr.localNode,
		nr.network,
		nr.ledger,
		network.UrlPathPrefixAPI,
		nr.nodeInfo,
	)

	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetCampaignHandlerPattern),
		apiHandler.GetCampaignHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetVotersHandlerPattern),
		apiHandler.GetVotersHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetVoterHandlerPattern),
		apiHandler.GetVoterHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetVoterChoiceHandlerPattern),
		apiHandler.GetVoterChoiceHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetProposalsHandlerPattern),
		apiHandler.GetProposalsHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetProposalHandlerPattern),
		apiHandler.GetProposalHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetWinnerHandlerPattern),
		cached(apiHandler.GetWinnerHandler),
	).Methods("GET", "OPTIONS")

	CommandsHandler := func(w http.ResponseWriter, r *http.Request) {
		apiHandler.PostCommandsHandler(w, r, nodeHandler.MessageHandler)
		return
	}

	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostCommandsPattern),
		CommandsHandler,
	).Methods("POST", "OPTIONS").MatcherFunc(common.PostAndJSONMatcher)

	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostSubscribePattern),
		apiHandler.PostSubscribeHandler,
	).Methods("POST", "OPTIONS").MatcherFunc(common.PostAndJSONMatcher)

	// pprof
	if DebugPProf == true {
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/cmdline", pprof.Cmdline)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/profile", pprof.Profile)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/symbol", pprof.Symbol)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/trace", pprof.Trace)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/*", pprof.Index)
	}

	nr.network.AddHandler(api.GetNodeInfoPattern, cached(apiHandler.GetNodeInfoHandler)).Methods("GET")

	nr.network.Ready()
}

func (nr *NodeRunner) Start() (err error) {
	nr.log.Debug("NodeRunner started")
	nr.Ready()

	go nr.handleMessages()

	nr.localNode.SetRunning()

	if err = nr.network.Start(); err != nil {
		return
	}

	return
}

func (nr *NodeRunner) Stop() {
	nr.localNode.SetTerminating()
	nr.network.Stop()
}

func (nr *NodeRunner) Node() *node.LocalNode {
	return nr.localNode
}

func (nr *NodeRunner) NetworkID() []byte {
	return nr.Conf.NetworkID
}

func (nr *NodeRunner) Network() network.Network {
	return nr.network
}

func (nr *NodeRunner) Ledger() *campaign.Ledger {
	return nr.ledger
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) Log() logging.Logger {
	return nr.log
}

func (nr *NodeRunner) SetHandleCommandCheckerFuncs(f ...common.CheckerFunc) {
	nr.handleCommandCheckerFuncs = f
}

// Read from the network channel and forwards to `handleMessage`
func (nr *NodeRunner) handleMessages() {
	for message := range nr.network.ReceiveMessage() {
		nr.handleMessage(message)
	}
}

// Handles a single message received from a client
func (nr *NodeRunner) handleMessage(message common.NetworkMessage) {
	var err error

	if message.IsEmpty() {
		nr.log.Error("got empty message")
		return
	}
	switch message.Type {
	case common.ConnectMessage:
		nr.log.Debug("got connect message", "message", message.Head(50))
	case common.CommandMessage:
		_, err = nr.handleCommandMessage(message)
	default:
		err = errors.New("got unknown message")
	}

	if err != nil {
		nr.log.Debug("failed to handle message", "message", string(message.Data), "error", err)
	}
}

func (nr *NodeRunner) handleCommandMessage(message common.NetworkMessage) (result common.Serializable, err error) {
	nr.log.Debug("got command", "message", message.Head(50))

	checker := &CommandChecker{
		DefaultChecker: common.DefaultChecker{Funcs: nr.handleCommandCheckerFuncs},
		LocalNode:      nr.localNode,
		Ledger:         nr.ledger,
		NetworkID:      nr.NetworkID(),
		Conf:           nr.Conf,
		Message:        message,
		Log:            nr.Log(),
	}
	if err = common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		nr.log.Debug("failed to handle command", "error", err, "message", string(message.Data))
		return
	}

	result = checker.Result

	return
}

func (nr *NodeRunner) NodeInfo() node.NodeInfo {
	return nr.nodeInfo
}
