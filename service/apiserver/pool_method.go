package apiserver

import (
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/core/types"
	"github.com/hogfinance/hogpool/service/simulator"
)

// ContextProvider returns a context over the latest committed state
type ContextProvider func() *types.Context

// RegisterPoolMethods adds the pool.* views. Every call runs on a fresh context and
// leaves no state behind.
func RegisterPoolMethods(s *APIServer, provider ContextProvider) error {
	js, err := s.JRPC("pool")
	if err != nil {
		return err
	}
	view := func(arg *Argument, method string, extra func() ([]interface{}, error)) (interface{}, error) {
		cont, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		var args []interface{}
		if extra != nil {
			if args, err = extra(); err != nil {
				return nil, err
			}
		}
		res, err := types.ViewContract(provider(), cont, method, args)
		if err != nil {
			return nil, err
		}
		if len(res) == 0 {
			return nil, nil
		}
		return res[0], nil
	}
	pid := func(arg *Argument) func() ([]interface{}, error) {
		return func() ([]interface{}, error) {
			v, err := arg.Uint64(1)
			if err != nil {
				return nil, err
			}
			return []interface{}{v}, nil
		}
	}
	pidUser := func(arg *Argument) func() ([]interface{}, error) {
		return func() ([]interface{}, error) {
			v, err := arg.Uint64(1)
			if err != nil {
				return nil, err
			}
			user, err := arg.Address(2)
			if err != nil {
				return nil, err
			}
			return []interface{}{v, user}, nil
		}
	}

	js.Set("length", func(ID interface{}, arg *Argument) (interface{}, error) {
		return view(arg, "PoolLength", nil)
	})
	js.Set("totalAllocPoint", func(ID interface{}, arg *Argument) (interface{}, error) {
		return view(arg, "TotalAllocPoint", nil)
	})
	js.Set("rewardToken", func(ID interface{}, arg *Argument) (interface{}, error) {
		return view(arg, "RewardToken", nil)
	})
	js.Set("operator", func(ID interface{}, arg *Argument) (interface{}, error) {
		return view(arg, "Operator", nil)
	})
	js.Set("info", func(ID interface{}, arg *Argument) (interface{}, error) {
		return view(arg, "PoolInfo", pid(arg))
	})
	js.Set("user", func(ID interface{}, arg *Argument) (interface{}, error) {
		return view(arg, "UserInfo", pidUser(arg))
	})
	js.Set("pending", func(ID interface{}, arg *Argument) (interface{}, error) {
		return view(arg, "PendingReward", pidUser(arg))
	})
	return nil
}

// RegisterSimMethods adds sim.report, which returns the report of the last run
func RegisterSimMethods(s *APIServer, report func() *simulator.Report) error {
	js, err := s.JRPC("sim")
	if err != nil {
		return err
	}
	js.Set("report", func(ID interface{}, arg *Argument) (interface{}, error) {
		rp := report()
		if rp == nil {
			return nil, errors.WithStack(ErrNoReport)
		}
		return rp, nil
	})
	return nil
}
