// Package evaluation scores match output against human annotations.
package evaluation

import (
	"strings"
)

// Prediction is one match output row reduced to what evaluation needs.
type Prediction struct {
	Speaker     string
	EventDate   string
	MatchedName string
}

// Annotation is one gold row. An empty CorrectName asserts that the speaker
// is not a legislator.
type Annotation struct {
	Speaker     string
	EventDate   string
	CorrectName string
}

// Outcome labels one scored pair.
type Outcome string

const (
	OutcomeTruePositive  Outcome = "true_positive"
	OutcomeTrueNegative  Outcome = "true_negative"
	OutcomeFalsePositive Outcome = "false_positive"
	OutcomeWrongMatch    Outcome = "wrong_match"
	OutcomeMissed        Outcome = "missed"
)

// Detail is the per-pair breakdown.
type Detail struct {
	Speaker   string  `json:"speaker"`
	EventDate string  `json:"event_date"`
	Predicted string  `json:"predicted"`
	Correct   string  `json:"correct"`
	Result    Outcome `json:"result"`
}

// Report holds aggregate metrics and per-pair details.
type Report struct {
	Precision           float64  `json:"precision"`
	Recall              float64  `json:"recall"`
	F1                  float64  `json:"f1"`
	Total               int      `json:"n_total"`
	TruePositive        int      `json:"n_true_positive"`
	TrueNegative        int      `json:"n_true_negative"`
	FalsePositive       int      `json:"n_false_positive"`
	FalseNegative       int      `json:"n_false_negative"`
	UnpairedPredictions int      `json:"n_unpaired_predictions"`
	UnpairedAnnotations int      `json:"n_unpaired_annotations"`
	Details             []Detail `json:"details"`
}

type pairKey struct {
	speaker string
	date    string
}

func keyOf(speaker, date string) pairKey {
	return pairKey{speaker: strings.TrimSpace(speaker), date: strings.TrimSpace(date)}
}

// Evaluate pairs predictions with annotations and computes precision,
// recall, and F1. Rows pair on (speaker, event_date); when a key repeats,
// the k-th prediction with that key pairs with the k-th annotation with that
// key, both in input order. Rows left without a partner are counted but not
// scored.
func Evaluate(matched []Prediction, gold []Annotation) Report {
	queues := make(map[pairKey][]Annotation, len(gold))
	for _, g := range gold {
		k := keyOf(g.Speaker, g.EventDate)
		queues[k] = append(queues[k], g)
	}

	var report Report
	used := make(map[pairKey]int, len(queues))
	for _, m := range matched {
		k := keyOf(m.Speaker, m.EventDate)
		queue := queues[k]
		n := used[k]
		if n >= len(queue) {
			report.UnpairedPredictions++
			continue
		}
		used[k] = n + 1
		report.add(m, queue[n])
	}
	for k, queue := range queues {
		report.UnpairedAnnotations += len(queue) - used[k]
	}

	report.Total = len(report.Details)
	report.Precision = ratio(report.TruePositive, report.TruePositive+report.FalsePositive)
	report.Recall = ratio(report.TruePositive, report.TruePositive+report.FalseNegative)
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}
	return report
}

func (r *Report) add(m Prediction, g Annotation) {
	predicted := strings.TrimSpace(m.MatchedName)
	correct := strings.TrimSpace(g.CorrectName)
	d := Detail{
		Speaker:   m.Speaker,
		EventDate: m.EventDate,
		Predicted: predicted,
		Correct:   correct,
	}
	switch {
	case predicted == "" && correct == "":
		d.Result = OutcomeTrueNegative
		r.TrueNegative++
	case predicted != "" && correct == "":
		d.Result = OutcomeFalsePositive
		r.FalsePositive++
	case predicted == "":
		d.Result = OutcomeMissed
		r.FalseNegative++
	case strings.EqualFold(predicted, correct):
		d.Result = OutcomeTruePositive
		r.TruePositive++
	default:
		d.Result = OutcomeWrongMatch
		r.FalsePositive++
	}
	r.Details = append(r.Details, d)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
