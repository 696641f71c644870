package card

import (
	"fmt"
	"strconv"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func problemStatement(i idea.Idea) string {
	return fmt.Sprintf("%s\n\nThis initiative aims to address the challenge through an AI-powered approach, with an estimated impact level of %s/10 on business outcomes.",
		i.Description, num(i.Impact))
}

func hypothesis(i idea.Idea, p Profile) string {
	return fmt.Sprintf("We believe that implementing %s will deliver %s improvements in the target area. Our %s confidence is based on the current risk assessment (%s/10) and available data readiness (%s/10).",
		i.Title, p.Impact, p.Confidence, num(i.Risk), num(i.DataReadiness))
}

var datasetText = map[DataTier]string{
	DataHigh:    "High-quality datasets are available and validated. Data pipeline is established with proper versioning and quality controls. Ready for immediate use in model development.",
	DataPartial: "Datasets are partially available but require cleaning and validation. Estimated 20-30% of project time will be allocated to data preparation. Data quality monitoring will be implemented.",
	DataLimited: "Limited data availability. Significant effort required for data collection, labeling, and preparation (40-50% of timeline). Consider synthetic data generation or partnership with data teams. Data acquisition strategy must be prioritized.",
}

var (
	technicalMetrics = []string{
		"Model accuracy/performance vs baseline (target: +20%)",
		"System response time and latency (target: <2s)",
		"Error rate and failure handling (target: <5%)",
	}
	businessMetrics = map[ImpactLevel][]string{
		ImpactSignificant: {
			"User adoption rate (target: >60%)",
			"Cost savings or revenue impact (target: $XX,XXX)",
			"Time savings for end users (target: 30%+ reduction)",
		},
		ImpactModerate: {
			"User satisfaction score (target: >7/10)",
			"Process efficiency improvement (target: 15%+)",
		},
		ImpactMeasurable: {
			"User engagement metrics (target: baseline +10%)",
			"Feature utilization rate (target: >40%)",
		},
	}
	operationalMetric = "Resource utilization (target: <80% of allocated)"
)

func metrics(p Profile) []string {
	m := append([]string{}, technicalMetrics...)
	m = append(m, businessMetrics[p.Impact]...)
	return append(m, operationalMetric)
}

func criteria(p Profile) []string {
	c := []string{
		fmt.Sprintf("Day %d checkpoint: working prototype with no critical technical blockers identified", p.FirstCheckpoint),
		fmt.Sprintf("Day 60 checkpoint: stakeholder alignment confirmed and core metrics trending toward %d%% of targets", p.SuccessThreshold),
		fmt.Sprintf("Day 90 checkpoint: core metrics achieve %d%%+ of targets", p.SuccessThreshold),
		"Day 90 checkpoint: positive ROI projection with clear path to value",
	}
	if p.HighRisk {
		c = append(c, fmt.Sprintf("All high-risk items successfully mitigated or resolved by day %d", p.FirstCheckpoint))
	}
	if p.LowData {
		c = append(c, "Data pipeline established and quality validated")
	}
	if p.HighEffort {
		c = append(c, "Technical debt documented with a remediation plan before production rollout")
	}
	return c
}

func thresholdNarrative(p Profile) string {
	t, pivot := p.SuccessThreshold, p.SuccessThreshold-10
	return fmt.Sprintf(`**GO Decision:** Achieve %d%%+ of target metrics, demonstrate clear scalability path, positive cost-benefit analysis.

**PIVOT Decision:** Achieve %d-%d%% of targets, issues identified but addressable with scope adjustments.

**NO-GO Decision:** <%d%% of targets met, fundamental technical or business blockers, negative ROI projection.`,
		t, pivot, t, pivot)
}
