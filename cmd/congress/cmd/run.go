package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/http2"

	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"
	"github.com/ulule/limiter"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/network"
	"boscoin.io/congress/lib/node"
	"boscoin.io/congress/lib/node/runner"
	"boscoin.io/congress/lib/storage"

	cmdcommon "boscoin.io/congress/cmd/congress/common"
)

const defaultBindURL string = "https://0.0.0.0:12345"
const defaultJSONRPCBindURL string = "http://127.0.0.1:54420"
const defaultLogLevel logging.Lvl = logging.LvlInfo
const defaultLogFormat string = "terminal"

var (
	flagKPSecretSeed        string = common.GetENVValue("CONGRESS_SECRET_SEED", "")
	flagNetworkID           string = common.GetENVValue("CONGRESS_NETWORK_ID", "")
	flagLogLevel            string = common.GetENVValue("CONGRESS_LOG_LEVEL", defaultLogLevel.String())
	flagLogFormat           string = common.GetENVValue("CONGRESS_LOG_FORMAT", defaultLogFormat)
	flagLogOutput           string = common.GetENVValue("CONGRESS_LOG_OUTPUT", "")
	flagVerbose             bool   = common.GetENVValue("CONGRESS_VERBOSE", "0") == "1"
	flagDebugPProf          bool   = common.GetENVValue("CONGRESS_DEBUG_PPROF", "0") == "1"
	flagBindURL             string = common.GetENVValue("CONGRESS_BIND", defaultBindURL)
	flagPublishURL          string = common.GetENVValue("CONGRESS_PUBLISH", "")
	flagJSONRPCBindURL      string = common.GetENVValue("CONGRESS_JSONRPC_BIND", defaultJSONRPCBindURL)
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("CONGRESS_TLS_CERT", "congress.crt")
	flagTLSKeyFile          string = common.GetENVValue("CONGRESS_TLS_KEY", "congress.key")
	flagProposalsLimit      string = common.GetENVValue("CONGRESS_PROPOSALS_LIMIT", strconv.Itoa(common.DefaultProposalsLimit))
	flagNTPServer           string = common.GetENVValue("CONGRESS_NTP_SERVER", "")
	flagHTTPCacheAdapter    string = common.GetENVValue("CONGRESS_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   string = common.GetENVValue("CONGRESS_HTTP_CACHE_POOL_SIZE", strconv.Itoa(common.HTTPCachePoolSize))
	flagHTTPCacheRedisAddrs string = common.GetENVValue("CONGRESS_HTTP_CACHE_REDIS_ADDRS", "")
	flagRateLimitAPI        cmdcommon.ListFlags
	flagRateLimitNode       cmdcommon.ListFlags
)

var (
	nodeCmd *cobra.Command

	kp              *keypair.Full
	bindEndpoint    *common.Endpoint
	publishEndpoint *common.Endpoint
	jsonrpcEndpoint *common.Endpoint
	storageConfig   *storage.Config
	proposalsLimit  int
	logLevel        logging.Lvl
	log             logging.Logger

	localNode *node.LocalNode

	rateLimitRuleAPI  common.RateLimitRule
	rateLimitRuleNode common.RateLimitRule

	httpCachePoolSize   int
	httpCacheRedisAddrs map[string]string
)

func init() {
	var err error
	var flagGenesis string

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run congress node",
		Run: func(c *cobra.Command, args []string) {
			// If `--genesis` was provided, perform `congress genesis` before
			// starting the node. This allows one-step startup from scratch,
			// quite useful for testing.
			if len(flagGenesis) != 0 {
				flagName, err := MakeCampaignGenesis(flagGenesis, flagStorageConfigString)
				if len(flagName) != 0 || err != nil {
					cmdcommon.PrintFlagsError(c, flagName, err)
				}
			}

			parseFlagsNode()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("CONGRESS_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagGenesis, "genesis", flagGenesis, "performs the 'genesis' command before running node. Syntax: <admin public key>")
	nodeCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed of this node")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "url to listen on")
	nodeCmd.Flags().StringVar(&flagPublishURL, "publish", flagPublishURL, "url for clients to connect to; shown in the node info")
	nodeCmd.Flags().StringVar(&flagJSONRPCBindURL, "jsonrpc-bind", flagJSONRPCBindURL, "url to bind the jsonrpc service; empty disables it")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogFormat, "log-format", flagLogFormat, "log format, {terminal, json}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().BoolVar(&flagDebugPProf, "debug-pprof", flagDebugPProf, "set debug pprof")
	nodeCmd.Flags().StringVar(&flagProposalsLimit, "proposals-limit", flagProposalsLimit, "number of proposals accepted in one campaign; 0 means unlimited")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp-server", flagNTPServer, "ntp server to check the local clock against before starting; empty skips the check")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: {mem, redis}")
	nodeCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size")
	nodeCmd.Flags().StringVar(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", flagHTTPCacheRedisAddrs, "http cache redis addresses: [<name>=]<host>:<port> [ <addr>...]")
	nodeCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", fmt.Sprintf("rate limit for api: [<ip>=]<limit>-<period>, ex) '10-S' '3.3.3.3=1000-M' (default %s)", runner.FormatRate(common.RateLimitAPI)))
	nodeCmd.Flags().Var(&flagRateLimitNode, "rate-limit-node", fmt.Sprintf("rate limit for node interface: [<ip>=]<limit>-<period>, ex) '10-S' '3.3.3.3=1000-M' (default %s)", runner.FormatRate(common.RateLimitNode)))

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagRateLimit(l cmdcommon.ListFlags, defaultRate limiter.Rate) (rule common.RateLimitRule, err error) {
	if len(l) < 1 {
		rule = common.NewRateLimitRule(defaultRate)
		return
	}

	var givenRate limiter.Rate

	byIPAddress := map[string]limiter.Rate{}
	for _, s := range l {
		var ip, r string
		parsed := strings.SplitN(s, "=", 2)
		if len(parsed) == 2 {
			ip = parsed[0]
			r = parsed[1]

			if strings.Count(ip, "/") > 0 {
				if _, _, err = net.ParseCIDR(ip); err != nil {
					return
				}
			} else if net.ParseIP(ip) == nil {
				err = fmt.Errorf("invalid ip address")
				return
			}
		} else {
			r = parsed[0]
		}

		var rate limiter.Rate
		if rate, err = limiter.NewRateFromFormatted(strings.ToUpper(r)); err != nil {
			return
		}

		if len(ip) > 0 {
			byIPAddress[ip] = rate
		} else {
			givenRate = rate
		}
	}

	if givenRate.Limit < 1 && givenRate.Period < 1 {
		givenRate = defaultRate
	}

	rule = common.NewRateLimitRule(givenRate)
	rule.ByIPAddress = byIPAddress

	return
}

func parseFlagsNode() {
	var err error

	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--network-id", errors.New("--network-id must be given"))
	}
	if len(flagKPSecretSeed) < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--secret-seed", errors.New("must be given"))
	}

	var parsedKP keypair.KP
	parsedKP, err = keypair.Parse(flagKPSecretSeed)
	if err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--secret-seed", err)
	} else {
		kp = parsedKP.(*keypair.Full)
	}

	if p, err := common.ParseEndpoint(flagBindURL); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--bind", err)
	} else {
		bindEndpoint = p
		flagBindURL = bindEndpoint.String()
	}

	if strings.ToLower(bindEndpoint.Scheme) == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-key", err)
		}

		queries := bindEndpoint.Query()
		queries.Add("TLSCertFile", flagTLSCertFile)
		queries.Add("TLSKeyFile", flagTLSKeyFile)
		queries.Add("IdleTimeout", "3s")
		bindEndpoint.RawQuery = queries.Encode()
	}

	if len(flagPublishURL) > 0 {
		if p, err := common.ParseEndpoint(flagPublishURL); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--publish", err)
		} else {
			publishEndpoint = p
			flagPublishURL = publishEndpoint.String()
		}
	}

	if len(flagJSONRPCBindURL) > 0 {
		if p, err := common.ParseEndpoint(flagJSONRPCBindURL); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--jsonrpc-bind", err)
		} else {
			jsonrpcEndpoint = p
			flagJSONRPCBindURL = jsonrpcEndpoint.String()
		}
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}

	if proposalsLimit, err = strconv.Atoi(flagProposalsLimit); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--proposals-limit", err)
	} else if proposalsLimit < 0 {
		cmdcommon.PrintFlagsError(nodeCmd, "--proposals-limit", errors.New("must not be negative"))
	}

	if httpCachePoolSize, err = strconv.Atoi(flagHTTPCachePoolSize); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--http-cache-pool-size", err)
	}

	switch flagHTTPCacheAdapter {
	case "":
	case common.HTTPCacheMemoryAdapterName:
	case common.HTTPCacheRedisAdapterName:
		if len(flagHTTPCacheRedisAddrs) < 1 {
			cmdcommon.PrintFlagsError(nodeCmd, "--http-cache-redis-addrs", errors.New("must be given for the redis adapter"))
		}
	default:
		cmdcommon.PrintFlagsError(nodeCmd, "--http-cache-adapter", fmt.Errorf("unknown adapter, '%s'", flagHTTPCacheAdapter))
	}

	if len(flagHTTPCacheRedisAddrs) > 0 {
		httpCacheRedisAddrs = map[string]string{}
		for i, s := range strings.Fields(flagHTTPCacheRedisAddrs) {
			name := fmt.Sprintf("server%d", i)
			addr := s
			if strings.Contains(s, "=") {
				parsed := strings.SplitN(s, "=", 2)
				name = parsed[0]
				addr = parsed[1]
			}
			httpCacheRedisAddrs[name] = addr
		}
	}

	if rateLimitRuleAPI, err = parseFlagRateLimit(flagRateLimitAPI, common.RateLimitAPI); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--rate-limit-api", err)
	}
	if rateLimitRuleNode, err = parseFlagRateLimit(flagRateLimitNode, common.RateLimitNode); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--rate-limit-node", err)
	}

	if localNode, err = node.NewLocalNode(kp, bindEndpoint, ""); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--secret-seed", err)
	}
	if publishEndpoint != nil {
		localNode.SetPublishEndpoint(publishEndpoint)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	var formatter logging.Format
	switch flagLogFormat {
	case "terminal":
		if isatty.IsTerminal(os.Stdout.Fd()) && len(flagLogOutput) < 1 {
			formatter = logging.TerminalFormat()
		} else {
			formatter = logging.LogfmtFormat()
		}
	case "json":
		formatter = common.JsonFormatEx(false, true)
	default:
		cmdcommon.PrintFlagsError(nodeCmd, "--log-format", fmt.Errorf("'%s' is not valid", flagLogFormat))
	}

	var logHandler logging.Handler
	if len(flagLogOutput) < 1 {
		logHandler = logging.StreamHandler(os.Stdout, formatter)
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, formatter); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	if flagVerbose {
		logLevel = logging.LvlDebug
		flagLogLevel = logLevel.String()
		runner.DebugPProf = true
		http2.VerboseLogs = true
		network.VerboseLogs = true
	}
	if flagDebugPProf {
		runner.DebugPProf = true
	}

	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))

	network.SetLogging(logLevel, logHandler)
	campaign.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)

	if len(flagNTPServer) > 0 {
		if err = common.CheckTimeSync(flagNTPServer); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--ntp-server", err)
		}
	}

	log.Info("Starting congress")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tbind", flagBindURL)
	parsedFlags = append(parsedFlags, "\n\tpublish", flagPublishURL)
	parsedFlags = append(parsedFlags, "\n\tjsonrpc-bind", flagJSONRPCBindURL)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-format", flagLogFormat)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\tproposals-limit", flagProposalsLimit)
	parsedFlags = append(parsedFlags, "\n\tntp-server", flagNTPServer)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", runner.FormatRateLimitRule(rateLimitRuleAPI))
	parsedFlags = append(parsedFlags, "\n\trate-limit-node", runner.FormatRateLimitRule(rateLimitRuleNode))

	log.Debug("parsed flags:", parsedFlags...)
}

func runNode() {
	networkConfig, err := network.NewHTTP2NetworkConfigFromEndpoint(localNode.Alias(), bindEndpoint)
	if err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--bind", err)
	}

	nt := network.NewHTTP2Network(networkConfig)

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}

	conf := common.NewConfig([]byte(flagNetworkID))
	conf.ProposalsLimit = proposalsLimit
	conf.RateLimitRuleAPI = rateLimitRuleAPI
	conf.RateLimitRuleNode = rateLimitRuleNode
	conf.HTTPCacheAdapter = flagHTTPCacheAdapter
	conf.HTTPCachePoolSize = httpCachePoolSize
	conf.HTTPCacheRedisAddrs = httpCacheRedisAddrs

	ledger := campaign.NewLedger(st, conf)

	// Execution group.
	var g run.Group
	{
		nr, err := runner.NewNodeRunner(localNode, nt, ledger, conf)
		if err != nil {
			cmdcommon.PrintError(nodeCmd, err)
		}

		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	if jsonrpcEndpoint != nil {
		js := runner.NewJSONRPCServer(jsonrpcEndpoint, st, ledger)
		g.Add(func() error {
			return js.Start()
		}, func(error) {
			js.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
