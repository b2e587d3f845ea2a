package envelope

import "strings"

// Labels maps single character codes to display labels.
type Labels map[string]string

var (
	// OwnerLabels decodes the owner column.
	OwnerLabels = Labels{
		"W": "WLM",
		"S": "Service",
		"G": "General",
		"F": "Free Pool",
	}
	// StateLabels decodes the node lifecycle state column.
	StateLabels = Labels{
		"B": "Bios Starting",
		"D": "Discovered (dhcp discover)",
		"I": "IP address assigned (dhcp request)",
		"L": "Starting load of Boot images",
		"K": "Kernel boot started",
		"A": "Active",
		"M": "Missing",
		"E": "Error",
		"U": "Unknown",
	}
	// WLMStateLabels decodes the workload manager availability column.
	WLMStateLabels = Labels{
		"A": "Available",
		"U": "Unavailable",
		"M": "Maintenance",
		"X": "Unknown",
	}
)

// Decoder maps lower-cased logical keys to the labels for that column.
type Decoder map[string]Labels

// DefaultDecoder decodes the owner, state and wlmnodestate columns.
var DefaultDecoder = Decoder{
	"owner":        OwnerLabels,
	"state":        StateLabels,
	"wlmnodestate": WLMStateLabels,
}

// Decode returns the label for value in column key. Columns without labels
// and codes without a label are returned unchanged.
func (d Decoder) Decode(key, value string) string {
	labels, ok := d[strings.ToLower(key)]
	if !ok {
		return value
	}
	if label, ok := labels[value]; ok {
		return label
	}
	return value
}
