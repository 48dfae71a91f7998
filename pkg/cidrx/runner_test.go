package cidrx

import (
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zan8in/cidrx/pkg/expander"
	"github.com/zan8in/gologger"
	"github.com/zan8in/gologger/levels"
)

func init() {
	gologger.DefaultLogger.SetMaxLevel(levels.LevelFatal)
}

func collectRun(t *testing.T, options *Options) (*Runner, []string) {
	t.Helper()

	runner, err := NewRunner(options)
	require.NoError(t, err)

	var addrs []string
	runner.OnResult = func(cidr, addr string) {
		addrs = append(addrs, addr)
	}
	require.NoError(t, runner.Run())

	return runner, addrs
}

func TestRunnerExpandsInOrder(t *testing.T) {
	options := NewOptions(Options{
		Cidr:      []string{"192.168.2.0/30", "192.168.3.0/30"},
		MinPrefix: DefaultMinPrefix,
	})

	runner, addrs := collectRun(t, options)
	assert.Equal(t, []string{"192.168.2.1", "192.168.2.2", "192.168.3.1", "192.168.3.2"}, addrs)
	assert.Equal(t, int32(2), runner.SpecCount)
	assert.Equal(t, int32(4), runner.AddressCount)
}

func TestRunnerBareIP(t *testing.T) {
	options := NewOptions(Options{
		Cidr:      []string{"10.0.0.5"},
		MinPrefix: DefaultMinPrefix,
	})

	_, addrs := collectRun(t, options)
	assert.Equal(t, []string{"10.0.0.5"}, addrs)
}

func TestRunnerExcludes(t *testing.T) {
	options := NewOptions(Options{
		Cidr:       []string{"192.168.2.0/30"},
		ExcludeIps: "192.168.2.1",
		MinPrefix:  DefaultMinPrefix,
	})

	runner, addrs := collectRun(t, options)
	assert.Equal(t, []string{"192.168.2.2"}, addrs)
	assert.Equal(t, int32(1), runner.SkippedCount)
}

func TestRunnerUnique(t *testing.T) {
	options := NewOptions(Options{
		Cidr:      []string{"192.168.2.0/30", "192.168.2.0/30"},
		Unique:    true,
		MinPrefix: DefaultMinPrefix,
	})

	_, addrs := collectRun(t, options)
	assert.Equal(t, []string{"192.168.2.1", "192.168.2.2"}, addrs)
}

func TestRunnerRecordsMalformedSpecs(t *testing.T) {
	options := NewOptions(Options{
		Cidr:      []string{"not-an-ip/24", "192.168.2.1/32"},
		MinPrefix: DefaultMinPrefix,
	})

	runner, addrs := collectRun(t, options)
	assert.Equal(t, []string{"192.168.2.1"}, addrs)

	results := runner.Results()
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, expander.ErrInvalidAddress)
	assert.Equal(t, []string{"192.168.2.1"}, results[1].Addresses)
}

func TestRunnerTargetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte("192.168.2.0/31\n\n192.168.3.9\n"), 0644))

	options := NewOptions(Options{
		CidrFile:   path,
		Boundaries: true,
		MinPrefix:  DefaultMinPrefix,
	})

	_, addrs := collectRun(t, options)
	assert.Equal(t, []string{"192.168.2.0", "192.168.2.1", "192.168.3.9"}, addrs)
}

func TestRunnerWritesCsv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	options := NewOptions(Options{
		Cidr:      []string{"192.168.2.0/30"},
		Output:    out,
		MinPrefix: DefaultMinPrefix,
	})

	collectRun(t, options)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"cidr,address",
		"192.168.2.0/30,192.168.2.1",
		"192.168.2.0/30,192.168.2.2",
	}, lines)
}

func TestRunnerWritesJson(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	options := NewOptions(Options{
		Cidr:      []string{"192.168.2.0/30"},
		Output:    out,
		MinPrefix: DefaultMinPrefix,
	})

	collectRun(t, options)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc struct {
		RunID  string `json:"run_id"`
		Policy string `json:"policy"`
		Total  int32  `json:"total"`
		Specs  []struct {
			Cidr      string   `json:"cidr"`
			Network   string   `json:"network"`
			Broadcast string   `json:"broadcast"`
			Addresses []string `json:"addresses"`
		} `json:"specs"`
	}
	require.NoError(t, stdjson.Unmarshal(data, &doc))

	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, "hosts", doc.Policy)
	assert.Equal(t, int32(2), doc.Total)
	require.Len(t, doc.Specs, 1)
	assert.Equal(t, "192.168.2.0/30", doc.Specs[0].Cidr)
	assert.Equal(t, "192.168.2.0", doc.Specs[0].Network)
	assert.Equal(t, "192.168.2.3", doc.Specs[0].Broadcast)
	assert.Equal(t, []string{"192.168.2.1", "192.168.2.2"}, doc.Specs[0].Addresses)
}
