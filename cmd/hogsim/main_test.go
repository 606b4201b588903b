package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogfinance/hogpool/service/apiserver"
	"github.com/hogfinance/hogpool/service/simulator"
)

var scenarioPath = filepath.Join("..", "..", "service", "simulator", "testdata", "ghog_day.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunPrintsReport(t *testing.T) {
	out, err := execute(t, "run", scenarioPath, "--log-level", "error")
	require.NoError(t, err)

	rp := &simulator.Report{}
	require.NoError(t, json.Unmarshal([]byte(out), rp))
	assert.Equal(t, "ghog-day", rp.Scenario)
	require.Len(t, rp.Contracts, 1)
	assert.Equal(t, simulator.GHogPool, rp.Contracts[0].Name)
	assert.Len(t, rp.Users, 2)
}

func TestRunWithStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	_, err := execute(t, "run", scenarioPath, "--log-level", "error", "--store", "bolt:"+dir)
	require.NoError(t, err)

	st, err := openStore(StoreConfig{Driver: "bolt", Path: dir})
	require.NoError(t, err)
	defer st.Close()
	assert.NotZero(t, st.TargetHeight())

	_, err = execute(t, "run", scenarioPath, "--store", "bolt")
	assert.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
	_, err = execute(t, "run", "missing.yaml")
	assert.Error(t, err)
	_, err = execute(t, "run", scenarioPath, "--log-level", "loud")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hogsim dev\n", out)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":48000", cfg.BindAddress)
	assert.Equal(t, "leveldb", cfg.Store.Driver)

	path := filepath.Join(t.TempDir(), "hogsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
BindAddress = "127.0.0.1:9000"
LogLevel = "debug"
Scenario = "week.yaml"

[Store]
Driver = "badger"
Path = "/tmp/hog"
`), 0o644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.BindAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "week.yaml", cfg.Scenario)
	assert.Equal(t, StoreConfig{Driver: "badger", Path: "/tmp/hog"}, cfg.Store)

	require.NoError(t, os.WriteFile(path, []byte("[Store]\nDriver = \"\"\n"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)

	_, err = parseStoreFlag("leveldb")
	assert.Error(t, err)
	sc, err := parseStoreFlag("leveldb:./a:b")
	require.NoError(t, err)
	assert.Equal(t, "./a:b", sc.Path)
}

func TestQuery(t *testing.T) {
	sc, err := simulator.LoadScenarioFile(scenarioPath)
	require.NoError(t, err)
	sim, err := simulator.New(sc, simulator.Options{})
	require.NoError(t, err)
	_, err = sim.Run()
	require.NoError(t, err)

	rpc := apiserver.NewAPIServer()
	require.NoError(t, apiserver.RegisterPoolMethods(rpc, sim.Context))
	srv := httptest.NewServer(rpc.Handler())
	defer srv.Close()

	pool, _ := sim.Pool(simulator.GHogPool)
	out, err := execute(t, "query", "--host", srv.URL, "length", pool.String())
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = execute(t, "query", "--host", srv.URL, "user", pool.String(), "0", simulator.UserAddress("alice").String())
	require.NoError(t, err)
	assert.Contains(t, out, `"amount": "100"`)

	_, err = execute(t, "query", "--host", srv.URL, "info", pool.String(), "7")
	assert.Error(t, err)
	_, err = execute(t, "query", "--host", srv.URL, "report")
	assert.Error(t, err)
}
