package tagger

import (
	"strings"

	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// ParseLabel maps a raw tagger label to a models.Label. IOB prefixes
// ("B-PER", "I-LOC") and case are ignored; unknown labels become OTHER.
func ParseLabel(raw string) models.Label {
	l := strings.ToUpper(strings.TrimSpace(raw))
	if len(l) > 2 && (l[:2] == "B-" || l[:2] == "I-" || l[:2] == "E-" || l[:2] == "S-") {
		l = l[2:]
	}
	switch l {
	case "PER", "PERSON":
		return models.LabelPerson
	case "LOC", "LOCATION":
		return models.LabelLocation
	case "ORG", "ORGANIZATION":
		return models.LabelOrganization
	default:
		return models.LabelOther
	}
}
