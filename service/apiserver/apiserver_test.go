package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
	"github.com/hogfinance/hogpool/service/metrics"
	"github.com/hogfinance/hogpool/service/simulator"
)

const scenario = `
name: api
start: 1735689600
end: 3600
ghog:
  sharePerDay: 864
users:
  - name: alice
    balances:
      HOG-S: 10
steps:
  - at: 0
    pool: ghog
    action: deposit
    user: alice
    pid: 0
    amount: 10
`

func newServer(t *testing.T) (*APIServer, *simulator.Simulator, *simulator.Report) {
	sc, err := simulator.LoadScenario(strings.NewReader(scenario))
	require.NoError(t, err)
	sim, err := simulator.New(sc, simulator.Options{})
	require.NoError(t, err)
	rp, err := sim.Run()
	require.NoError(t, err)

	s := NewAPIServer()
	require.NoError(t, RegisterPoolMethods(s, sim.Context))
	require.NoError(t, RegisterSimMethods(s, func() *simulator.Report { return rp }))
	return s, sim, rp
}

func call(t *testing.T, h http.Handler, method string, params ...interface{}) map[string]interface{} {
	t.Helper()
	bs, err := json.Marshal(&JRPCRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/endpoints/http", bytes.NewReader(bs))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	res := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestPoolMethods(t *testing.T) {
	s, sim, _ := newServer(t)
	h := s.Handler()
	pool, ok := sim.Pool(simulator.GHogPool)
	require.True(t, ok)
	alice := simulator.UserAddress("alice").String()

	res := call(t, h, "pool.length", pool.String())
	assert.Nil(t, res["error"])
	assert.Equal(t, float64(2), res["result"])

	res = call(t, h, "pool.totalAllocPoint", pool.String())
	assert.Equal(t, float64(1000), res["result"])

	res = call(t, h, "pool.operator", pool.String())
	assert.Equal(t, strings.ToLower(simulator.Operator.String()), res["result"])

	res = call(t, h, "pool.info", pool.String(), 0)
	info := res["result"].(map[string]interface{})
	assert.Equal(t, "10", info["totalStaked"])
	assert.Equal(t, float64(600), info["allocPoint"])

	res = call(t, h, "pool.user", pool.String(), 0, alice)
	user := res["result"].(map[string]interface{})
	assert.Equal(t, "10", user["amount"])

	// 864 a day is 0.01 a second, 3600 seconds at a 600/1000 weight
	res = call(t, h, "pool.pending", pool.String(), 0, alice)
	pending, err := amount.ParseAmount(res["result"].(string))
	require.NoError(t, err)
	assert.Equal(t, "21.6", pending.String())

	res = call(t, h, "pool.info", pool.String(), 9)
	assert.Contains(t, res["error"], "invalid pool id")

	res = call(t, h, "pool.info", "nope", 0)
	assert.Contains(t, res["error"], ErrInvalidArgumentType.Error())

	res = call(t, h, "pool.info", pool.String())
	assert.Contains(t, res["error"], ErrInvalidArgumentIndex.Error())
}

func TestSimReportAndErrors(t *testing.T) {
	s, _, rp := newServer(t)
	h := s.Handler()

	res := call(t, h, "sim.report")
	report := res["result"].(map[string]interface{})
	assert.Equal(t, rp.RunID, report["runId"])
	assert.Equal(t, "api", report["scenario"])

	res = call(t, h, "sim.nothing")
	assert.Equal(t, ErrInvalidMethod.Error(), res["error"])
	res = call(t, h, "nosub")
	assert.Equal(t, ErrInvalidMethod.Error(), res["error"])

	_, err := s.JRPC("pool")
	assert.Equal(t, ErrExistSubName, err)

	empty := NewAPIServer()
	require.NoError(t, RegisterSimMethods(empty, func() *simulator.Report { return nil }))
	res = call(t, empty.Handler(), "sim.report")
	assert.Equal(t, ErrNoReport.Error(), res["error"])
}

func TestMetricsRoute(t *testing.T) {
	s := NewAPIServer()
	m := metrics.New()
	m.SetStaked(common.SeedAddress("pool"), 0, amount.NewAmount(3, 0))
	s.SetMetrics(m.Handler())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hogpool_staked_tokens")
}

func TestWebsocketEvents(t *testing.T) {
	s := NewAPIServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/endpoints/websocket?type=events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.count() == 1 }, time.Second, 10*time.Millisecond)
	s.Broadcast([]*types.Event{{
		Height: 3,
		Type:   stakepool.EventEmergencyWithdraw,
		Result: &stakepool.EmergencyWithdrawResult{Pid: 1, Amount: amount.NewAmount(5, 0)},
	}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var note struct {
		Method string `json:"method"`
		Params struct {
			Height uint32
			Type   string
			Result map[string]interface{}
		} `json:"params"`
	}
	require.NoError(t, conn.ReadJSON(&note))
	assert.Equal(t, "event", note.Method)
	assert.Equal(t, uint32(3), note.Params.Height)
	assert.Equal(t, stakepool.EventEmergencyWithdraw, note.Params.Type)
	assert.Equal(t, "5", note.Params.Result["amount"])

	conn.Close()
	assert.Eventually(t, func() bool { return s.hub.count() == 0 }, time.Second, 10*time.Millisecond)
}
