package main

import (
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hogfinance/hogpool/cmd/closer"
	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/core/types"
	"github.com/hogfinance/hogpool/service/apiserver"
	"github.com/hogfinance/hogpool/service/metrics"
	"github.com/hogfinance/hogpool/service/simulator"
)

var log = rlog.New("hogsim")

func serveCommand(pLogLevel *string) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serves the pool views of a stored run over json rpc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if len(*pLogLevel) > 0 {
				cfg.LogLevel = *pLogLevel
			}
			if err := rlog.SetOutput(os.Stderr, cfg.LogLevel, cfg.JSONLog); err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "toml config file")
	return cmd
}

func serve(cfg *Config) error {
	st, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	cm := closer.NewManager()
	cm.Add("store", st)
	defer cm.CloseAll()

	m := metrics.New()
	rpc := apiserver.NewAPIServer()
	rpc.SetMetrics(m.Handler())

	var report *simulator.Report
	var reportLock sync.Mutex
	if err := apiserver.RegisterPoolMethods(rpc, func() *types.Context {
		return types.NewContext(st)
	}); err != nil {
		return err
	}
	if err := apiserver.RegisterSimMethods(rpc, func() *simulator.Report {
		reportLock.Lock()
		defer reportLock.Unlock()
		return report
	}); err != nil {
		return err
	}

	if st.TargetHeight() == 0 && len(cfg.Scenario) > 0 {
		sc, err := simulator.LoadScenarioFile(cfg.Scenario)
		if err != nil {
			return err
		}
		sim, err := simulator.New(sc, simulator.Options{
			Store:    st,
			Metrics:  m,
			OnEvents: rpc.Broadcast,
		})
		if err != nil {
			return err
		}
		rp, err := sim.Run()
		if err != nil {
			return err
		}
		reportLock.Lock()
		report = rp
		reportLock.Unlock()
	} else {
		evs, err := st.LoadJournal()
		if err != nil {
			return err
		}
		for _, ev := range evs {
			m.Observe(ev)
		}
		log.Info("Journal loaded", "events", len(evs), "height", st.TargetHeight())
	}

	cm.Add("apiserver", closer.Func(func() {
		if err := rpc.Close(); err != nil {
			log.Warn("Close", "err", err)
		}
	}))
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigc
		cm.CloseAll()
	}()

	if err := rpc.Run(cfg.BindAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
