package assessment

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Merge returns a copy of d with every answered field of patch applied.
// Unanswered patch fields never clear existing answers, and audit surveillance
// entries are merged per certification.
func (d Data) Merge(patch Data) (Data, error) {
	base, err := json.Marshal(d)
	if err != nil {
		return Data{}, eris.Wrap(err, "marshal assessment")
	}
	var out Data
	if err := json.Unmarshal(base, &out); err != nil {
		return Data{}, eris.Wrap(err, "copy assessment")
	}
	overlay, err := json.Marshal(patch)
	if err != nil {
		return Data{}, eris.Wrap(err, "marshal patch")
	}
	if err := json.Unmarshal(overlay, &out); err != nil {
		return Data{}, eris.Wrap(err, "apply patch")
	}
	return out, nil
}
