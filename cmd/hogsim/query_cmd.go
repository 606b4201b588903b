package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func queryCommand() *cobra.Command {
	var hostURL string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "reads pool views from a running serve",
	}
	cmd.PersistentFlags().StringVar(&hostURL, "host", "http://localhost:48000", "url of the server to access")

	add := func(use string, short string, method string, nargs int) {
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				params := make([]interface{}, 0, len(args))
				for _, a := range args {
					params = append(params, a)
				}
				res, err := DoRequest(hostURL, method, params)
				if err != nil {
					return err
				}
				bs, err := json.MarshalIndent(res, "", "\t")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(bs))
				return nil
			},
		})
	}
	add("length [contract]", "returns the number of pools", "pool.length", 1)
	add("info [contract] [pid]", "returns the pool state", "pool.info", 2)
	add("user [contract] [pid] [address]", "returns the stake and reward debt of the user", "pool.user", 3)
	add("pending [contract] [pid] [address]", "returns the reward the user can harvest now", "pool.pending", 3)
	add("report", "returns the report of the served run", "sim.report", 0)
	return cmd
}
