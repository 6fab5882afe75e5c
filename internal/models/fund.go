package models

import (
	"strings"

	"github.com/Rainerrr/Mizrahi-Automations/internal/util"
)

// Fund is one registry entity from the mutual-funds list snapshot.
// Read-only after load.
type Fund struct {
	ID              int64
	Name            string
	Trustee         string
	Manager         string
	ExposureProfile string
	FundType        string
}

// InScopeIDs returns the ids of registry funds under the given trustee,
// optionally narrowed to one manager. Trustee matching is exact after
// whitespace normalization; manager matching is substring, since the
// registry spells manager names with varying suffixes.
func InScopeIDs(registry map[int64]Fund, trustee, manager string) map[int64]bool {
	wantTrustee := util.NormalizeSpaces(trustee)
	wantManager := util.NormalizeSpaces(manager)

	ids := make(map[int64]bool)
	for id, f := range registry {
		if util.NormalizeSpaces(f.Trustee) != wantTrustee {
			continue
		}
		if wantManager != "" && !strings.Contains(util.NormalizeSpaces(f.Manager), wantManager) {
			continue
		}
		ids[id] = true
	}
	return ids
}
