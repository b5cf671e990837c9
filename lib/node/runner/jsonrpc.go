package runner

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/storage"
)

const MaxLimitListOptions uint64 = 10000

type EchoArgs string
type EchoResult string

type jsonrpcMainApp struct{}

func (j *jsonrpcMainApp) Echo(r *http.Request, args *EchoArgs, result *EchoResult) error {
	*result = EchoResult(string(*args))
	return nil
}

type DBHasArgs string
type DBHasResult bool

type DBGetArgs string
type DBGetResult storage.IterItem

type GetIteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}

type DBGetIteratorArgs struct {
	Prefix  string
	Options GetIteratorOptions
}

type DBGetIteratorResult struct {
	Limit uint64
	Items []storage.IterItem
}

// jsonrpcDBApp exposes the raw storage for inspection; it is only served
// on the separate jsonrpc endpoint, never on the public routers.
type jsonrpcDBApp struct {
	st *storage.LevelDBBackend
}

func (j *jsonrpcDBApp) Has(r *http.Request, args *DBHasArgs, result *DBHasResult) error {
	o, err := j.st.Has(string(*args))
	if err != nil {
		return err
	}

	*result = DBHasResult(o)
	return nil
}

func (j *jsonrpcDBApp) Get(r *http.Request, args *DBGetArgs, result *DBGetResult) error {
	o, err := j.st.GetRaw(string(*args))
	if err != nil {
		return err
	}

	*result = DBGetResult{Key: []byte(*args), Value: o}
	return nil
}

func (j *jsonrpcDBApp) GetIterator(r *http.Request, args *DBGetIteratorArgs, result *DBGetIteratorResult) error {
	limit := args.Options.Limit
	if limit > MaxLimitListOptions {
		limit = MaxLimitListOptions
	}

	options := storage.NewDefaultListOptions(
		args.Options.Reverse,
		args.Options.Cursor,
		limit,
	)

	it, closeFunc := j.st.GetIterator(args.Prefix, options)
	defer closeFunc()

	collected := []storage.IterItem{}
	for {
		v, hasNext := it()
		if !hasNext {
			break
		}

		collected = append(collected, v.Clone())
	}

	result.Items = collected
	result.Limit = limit

	return nil
}

type CampaignStateArgs struct{}

type CampaignStateResult struct {
	Admin         string `json:"admin"`
	Phase         string `json:"phase"`
	Generation    uint64 `json:"generation"`
	Voters        uint64 `json:"voters"`
	Proposals     uint64 `json:"proposals"`
	Votes         uint64 `json:"votes"`
	WinnerElected bool   `json:"winner-elected"`
}

type jsonrpcCampaignApp struct {
	ledger *campaign.Ledger
}

func (j *jsonrpcCampaignApp) State(r *http.Request, args *CampaignStateArgs, result *CampaignStateResult) error {
	c, err := j.ledger.Campaign()
	if err != nil {
		return err
	}

	*result = CampaignStateResult{
		Admin:         c.Admin,
		Phase:         c.Phase.String(),
		Generation:    c.Generation,
		Voters:        c.TotalVoters,
		Proposals:     c.TotalProposals,
		Votes:         c.TotalVotes,
		WinnerElected: c.WinnerElected,
	}

	return nil
}

type JSONRPCServer struct {
	endpoint *common.Endpoint
	st       *storage.LevelDBBackend
	ledger   *campaign.Ledger
	server   *http.Server
}

func NewJSONRPCServer(endpoint *common.Endpoint, st *storage.LevelDBBackend, ledger *campaign.Ledger) *JSONRPCServer {
	return &JSONRPCServer{
		endpoint: endpoint,
		st:       st,
		ledger:   ledger,
	}
}

type jsonrpcInternalServer struct {
	*rpc.Server
}

func (s *jsonrpcInternalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization",
	)

	if r.Method == "OPTIONS" {
		return
	}

	s.Server.ServeHTTP(w, r)
}

func (j *JSONRPCServer) Ready() *mux.Router {
	s := &jsonrpcInternalServer{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	mainApp := &jsonrpcMainApp{}
	s.RegisterService(mainApp, "Main")

	dbApp := &jsonrpcDBApp{st: j.st}
	s.RegisterService(dbApp, "DB")

	campaignApp := &jsonrpcCampaignApp{ledger: j.ledger}
	s.RegisterService(campaignApp, "Campaign")

	router := mux.NewRouter()

	path := j.endpoint.Path
	if len(path) < 1 {
		path = "/"
	}
	router.Handle(path, s)

	return router
}

func (j *JSONRPCServer) Start() error {
	router := j.Ready()
	j.server = &http.Server{Addr: j.endpoint.Host, Handler: router}

	err := func() error {
		if strings.ToLower(j.endpoint.Scheme) == "http" {
			return j.server.ListenAndServe()
		}

		tlsCertFile := j.endpoint.Query().Get("TLSCertFile")
		tlsKeyFile := j.endpoint.Query().Get("TLSKeyFile")

		return j.server.ListenAndServeTLS(tlsCertFile, tlsKeyFile)
	}()

	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (j *JSONRPCServer) Stop() {
	if j.server == nil {
		return
	}
	j.server.Close()
}
