package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/service/simulator"
)

func runCommand(pLogLevel *string) *cobra.Command {
	var store string
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "runs a scenario and prints the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := *pLogLevel
			if len(level) == 0 {
				level = "warn"
			}
			if err := rlog.SetLevel(level); err != nil {
				return err
			}
			sc, err := simulator.LoadScenarioFile(args[0])
			if err != nil {
				return err
			}
			opts := simulator.Options{}
			if len(store) > 0 {
				storeCfg, err := parseStoreFlag(store)
				if err != nil {
					return err
				}
				st, err := openStore(storeCfg)
				if err != nil {
					return err
				}
				defer st.Close()
				opts.Store = st
			}
			sim, err := simulator.New(sc, opts)
			if err != nil {
				return err
			}
			rp, err := sim.Run()
			if err != nil {
				return err
			}
			bs, err := json.MarshalIndent(rp, "", "\t")
			if err != nil {
				return errors.WithStack(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(bs))
			return nil
		},
	}
	cmd.Flags().StringVar(&store, "store", "", "persist the run to driver:path, e.g. leveldb:./_data")
	return cmd
}

func parseStoreFlag(v string) (StoreConfig, error) {
	ls := strings.SplitN(v, ":", 2)
	if len(ls) != 2 || len(ls[0]) == 0 || len(ls[1]) == 0 {
		return StoreConfig{}, errors.Errorf("store %q is not driver:path", v)
	}
	return StoreConfig{Driver: ls[0], Path: ls[1]}, nil
}
