package expander

import (
	"go.uber.org/multierr"
)

// SpecResult is the outcome of expanding one spec of a batch: either the
// ordered address list or the named error the spec failed with.
type SpecResult struct {
	Spec      string
	Addresses []string
	Err       error
}

// ExpandCidr expands each spec and concatenates the results in input order.
// Specs are expanded independently: overlapping ranges are not merged and
// duplicates across specs are not removed. All specs are validated before
// any enumeration begins; the first malformed spec fails the whole call.
func ExpandCidr(specs []string, policy Policy) ([]string, error) {
	networks := make([]Network, 0, len(specs))
	for _, spec := range specs {
		network, err := ParseCidr(spec)
		if err != nil {
			return nil, err
		}
		networks = append(networks, network)
	}

	var addrs []string
	for _, network := range networks {
		addrs = append(addrs, network.Expand(policy)...)
	}
	return addrs, nil
}

// ExpandAll is the best-effort variant of ExpandCidr: every spec gets its
// own SpecResult in input order, malformed specs carry their error instead
// of aborting the batch. The returned error combines all per-spec failures;
// callers wanting fail-fast semantics use ExpandCidr instead.
func ExpandAll(specs []string, policy Policy) ([]SpecResult, error) {
	var merr error

	results := make([]SpecResult, 0, len(specs))
	for _, spec := range specs {
		network, err := ParseCidr(spec)
		if err != nil {
			results = append(results, SpecResult{Spec: spec, Err: err})
			merr = multierr.Append(merr, err)
			continue
		}
		results = append(results, SpecResult{Spec: spec, Addresses: network.Expand(policy)})
	}

	return results, merr
}
