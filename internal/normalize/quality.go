package normalize

import "math"

// WeightedQualityScore combines mean OCR confidence, required-field coverage
// and a coarse validation signal into a single bounded score:
//
//	0.4*meanConfidence + 0.4*coverage + 0.2*validation
//
// Confidences arrive on the recognizer's 0-100 scale and are normalized to
// [0,1]; an empty confidence list counts as 0. Validation is 1.0 only at
// full coverage, 0.5 otherwise. The result is rounded to two decimals and
// always lies in [0,1].
func WeightedQualityScore(confidences []float64, found, required int) float64 {
	meanConf := 0.0
	if len(confidences) > 0 {
		sum := 0.0
		for _, c := range confidences {
			sum += c
		}
		meanConf = sum / float64(len(confidences)) / 100.0
	}
	meanConf = clamp01(meanConf)

	coverage := 0.0
	if required > 0 {
		coverage = float64(found) / float64(required)
	}

	validation := 0.5
	if coverage == 1.0 {
		validation = 1.0
	}

	score := 0.4*meanConf + 0.4*coverage + 0.2*validation
	return clamp01(math.Round(score*100) / 100)
}

// RatioQualityScore is the unweighted variant: filled signals over total,
// capped at 1.0.
func RatioQualityScore(signals, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp01(float64(signals) / float64(total))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
