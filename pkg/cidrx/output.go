package cidrx

import (
	"encoding/csv"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/xid"
	"github.com/zan8in/cidrx/pkg/util/dateutil"
	"github.com/zan8in/cidrx/pkg/util/fileutil"
	"github.com/zan8in/gologger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type exportEntry struct {
	Cidr      string   `json:"cidr"`
	Network   string   `json:"network,omitempty"`
	Broadcast string   `json:"broadcast,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type export struct {
	RunID     string        `json:"run_id"`
	CreatedAt string        `json:"created_at"`
	Version   string        `json:"version"`
	Policy    string        `json:"policy"`
	Total     int32         `json:"total"`
	Specs     []exportEntry `json:"specs"`
}

// WriteOutput writes the collected results to the output file; the format
// is picked by extension.
func (runner *Runner) WriteOutput() error {
	f, err := os.Create(runner.options.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch fileutil.FileExt(runner.options.Output) {
	case fileutil.FILE_CSV:
		err = runner.writeCsv(f)
	case fileutil.FILE_JSON:
		err = runner.writeJson(f)
	default:
		err = runner.writeTxt(f)
	}
	if err != nil {
		return err
	}

	gologger.Info().Msgf("Wrote %d addresses to %s\n", runner.AddressCount, runner.options.Output)
	return nil
}

func (runner *Runner) writeTxt(f *os.File) error {
	for _, result := range runner.results {
		for _, addr := range result.Addresses {
			if _, err := f.WriteString(addr + "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (runner *Runner) writeCsv(f *os.File) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"cidr", "address"}); err != nil {
		return err
	}
	for _, result := range runner.results {
		for _, addr := range result.Addresses {
			if err := w.Write([]string{result.Spec, addr}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (runner *Runner) writeJson(f *os.File) error {
	doc := export{
		RunID:     xid.New().String(),
		CreatedAt: dateutil.GetNowFullDateTime(),
		Version:   Version,
		Policy:    runner.options.Policy().String(),
		Total:     runner.AddressCount,
	}

	// targets and results are index-aligned, both follow input order
	for i, result := range runner.results {
		entry := exportEntry{Cidr: result.Spec, Addresses: result.Addresses}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		} else if i < len(runner.targets) {
			entry.Network = runner.targets[i].network.NetworkAddress()
			entry.Broadcast = runner.targets[i].network.BroadcastAddress()
		}
		doc.Specs = append(doc.Specs, entry)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
