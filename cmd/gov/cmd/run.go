package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cmdcommon "oceandao.io/gov/cmd/gov/common"
	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/errors"
	"oceandao.io/gov/lib/governance"
	"oceandao.io/gov/lib/metrics"
	"oceandao.io/gov/lib/network/api"
	"oceandao.io/gov/lib/network/api/resource"
	"oceandao.io/gov/lib/network/httputils"
	"oceandao.io/gov/lib/storage"
)

const defaultHost string = "0.0.0.0"
const defaultPort int = 12345
const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagEndpointString string = common.GetENVValue(
		"GOV_ENDPOINT",
		fmt.Sprintf("http://%s:%d", defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagGenesis             string = common.GetENVValue("GOV_GENESIS", "genesis.yml")
	flagLogLevel            string = common.GetENVValue("GOV_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput           string = common.GetENVValue("GOV_LOG_OUTPUT", "")
	flagVerbose             bool   = common.GetENVValue("GOV_VERBOSE", "0") == "1"
)

var (
	runCmd *cobra.Command

	bindURL       *url.URL
	storageConfig *storage.Config
	genesis       *governance.Genesis
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	var err error

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run gov node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsRun()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("GOV_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	runCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on ('http://0.0.0.0:12345')")
	runCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	runCmd.Flags().StringVar(&flagGenesis, "genesis", flagGenesis, "genesis parameter file")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	runCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	runCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")

	rootCmd.AddCommand(runCmd)
}

func parseFlagsRun() {
	var err error

	if bindURL, err = url.Parse(flagEndpointString); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--endpoint", err)
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}

	if genesis, err = governance.LoadGenesis(flagGenesis); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--genesis", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--log-level", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = common.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JsonFormatEx(false, true)); err != nil {
			cmdcommon.PrintFlagsError(runCmd, "--log-output", err)
		}
	}

	if flagVerbose {
		logHandler = logging.CallerFileHandler(logHandler)
	}

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	governance.SetLogging(logLevel, logHandler)

	log.Info("Starting gov")

	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tendpoint", flagEndpointString)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tgenesis", flagGenesis)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	log.Debug("parsed flags:", parsedFlags...)
}

func runNode() {
	metrics.InitPrometheusMetrics()

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}

	balances := governance.NewStaticBalanceSource()
	gov := governance.NewGovernance(st, balances, governance.NewLogDispatcher())

	if err := gov.Instantiate(*genesis); err != nil {
		if err != errors.ErrorAlreadyInstantiated {
			log.Crit("failed to instantiate governance", "error", err)

			os.Exit(1)
		}
		log.Info("governance already instantiated, reusing storage")
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())

	apiHandler := api.NewNetworkHandlerAPI(st, gov)
	subRouter := router.PathPrefix(resource.APIPrefix + resource.APIVersionV1).Subrouter()
	subRouter.Use(api.MeasureAPIMiddleware())
	apiHandler.AddAPIHandlers(subRouter)

	// the host harness reports token custody movements here; the
	// governance module itself never moves tokens
	subRouter.HandleFunc("/balances/{address}", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Balance common.Amount `json:"balance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Error parsing request body", http.StatusBadRequest)
			return
		}
		balances.SetBalance(mux.Vars(r)["address"], req.Balance)
		httputils.WriteJSON(w, 200, map[string]interface{}{"balance": req.Balance})
	}).Methods("PUT")

	server := &http.Server{
		Addr:    bindURL.Host,
		Handler: handlers.CombinedLoggingHandler(os.Stdout, router),
	}

	var g run.Group
	{
		g.Add(func() error {
			log.Info("listening", "bind", bindURL.Host)
			return server.ListenAndServe()
		}, func(error) {
			server.Close()
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
