package card

import "github.com/TobiSchelling/PoCRanker/internal/idea"

// ImpactLevel qualifies the improvement an idea is expected to deliver.
type ImpactLevel string

const (
	ImpactSignificant ImpactLevel = "significant"
	ImpactModerate    ImpactLevel = "moderate"
	ImpactMeasurable  ImpactLevel = "measurable"
)

// Confidence qualifies how sure the team can be, given the risk.
type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceCautious Confidence = "cautious"
)

// DataTier buckets data readiness.
type DataTier string

const (
	DataHigh    DataTier = "high"
	DataPartial DataTier = "partial"
	DataLimited DataTier = "limited"
)

// Profile is the set of thresholds an idea crosses. Every text fragment of a
// card is chosen from the profile alone.
type Profile struct {
	Impact           ImpactLevel `json:"impact"`
	Confidence       Confidence  `json:"confidence"`
	Data             DataTier    `json:"data"`
	SuccessThreshold int         `json:"successThreshold"`
	FirstCheckpoint  int         `json:"firstCheckpoint"`
	HighRisk         bool        `json:"highRisk"`
	LowData          bool        `json:"lowData"`
	HighEffort       bool        `json:"highEffort"`
}

// ProfileOf evaluates the card thresholds for i.
func ProfileOf(i idea.Idea) Profile {
	p := Profile{
		HighRisk:   i.Risk >= 7,
		LowData:    i.DataReadiness < 4,
		HighEffort: i.Effort >= 7,
	}

	switch {
	case i.Impact >= 7:
		p.Impact, p.SuccessThreshold = ImpactSignificant, 80
	case i.Impact >= 4:
		p.Impact, p.SuccessThreshold = ImpactModerate, 70
	default:
		p.Impact, p.SuccessThreshold = ImpactMeasurable, 60
	}

	switch {
	case i.Risk <= 3:
		p.Confidence = ConfidenceHigh
	case i.Risk <= 6:
		p.Confidence = ConfidenceModerate
	default:
		p.Confidence = ConfidenceCautious
	}

	switch {
	case i.DataReadiness >= 7:
		p.Data = DataHigh
	case i.DataReadiness >= 4:
		p.Data = DataPartial
	default:
		p.Data = DataLimited
	}

	p.FirstCheckpoint = 30
	if p.HighEffort {
		p.FirstCheckpoint = 45
	}

	return p
}
