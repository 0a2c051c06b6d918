package evaluation

import (
	"math"
	"testing"
)

func TestEvaluateAllCorrect(t *testing.T) {
	matched := []Prediction{
		{Speaker: "M. Legault", EventDate: "2019-02-05", MatchedName: "François Legault"},
		{Speaker: "Mme Soucy", EventDate: "2019-02-05", MatchedName: "Chantal Soucy"},
		{Speaker: "Le Président", EventDate: "2019-02-05"},
	}
	gold := []Annotation{
		{Speaker: "M. Legault", EventDate: "2019-02-05", CorrectName: "françois legault "},
		{Speaker: "Mme Soucy", EventDate: "2019-02-05", CorrectName: "Chantal Soucy"},
		{Speaker: "Le Président", EventDate: "2019-02-05"},
	}
	report := Evaluate(matched, gold)
	if report.Precision != 1 || report.Recall != 1 || report.F1 != 1 {
		t.Fatalf("expected perfect scores, got %+v", report)
	}
	if report.TruePositive != 2 || report.TrueNegative != 1 || report.Total != 3 {
		t.Fatalf("unexpected counts %+v", report)
	}
}

func TestEvaluateClassification(t *testing.T) {
	matched := []Prediction{
		{Speaker: "A", EventDate: "d", MatchedName: "Alice"},
		{Speaker: "B", EventDate: "d", MatchedName: "Bob"},
		{Speaker: "C", EventDate: "d", MatchedName: "Carol"},
		{Speaker: "D", EventDate: "d"},
		{Speaker: "E", EventDate: "d"},
	}
	gold := []Annotation{
		{Speaker: "A", EventDate: "d", CorrectName: "Alice"},
		{Speaker: "B", EventDate: "d", CorrectName: "Robert"},
		{Speaker: "C", EventDate: "d"},
		{Speaker: "D", EventDate: "d", CorrectName: "Dave"},
		{Speaker: "E", EventDate: "d"},
	}
	report := Evaluate(matched, gold)

	want := []Outcome{OutcomeTruePositive, OutcomeWrongMatch, OutcomeFalsePositive, OutcomeMissed, OutcomeTrueNegative}
	for i, outcome := range want {
		if report.Details[i].Result != outcome {
			t.Fatalf("detail %d = %q, want %q", i, report.Details[i].Result, outcome)
		}
	}
	if report.TruePositive != 1 || report.FalsePositive != 2 || report.FalseNegative != 1 || report.TrueNegative != 1 {
		t.Fatalf("unexpected counts %+v", report)
	}
	if math.Abs(report.Precision-1.0/3) > 1e-9 || math.Abs(report.Recall-0.5) > 1e-9 {
		t.Fatalf("precision/recall = %v/%v", report.Precision, report.Recall)
	}
	wantF1 := 2 * (1.0 / 3) * 0.5 / (1.0/3 + 0.5)
	if math.Abs(report.F1-wantF1) > 1e-9 {
		t.Fatalf("f1 = %v, want %v", report.F1, wantF1)
	}
}

func TestEvaluateEmptyInputs(t *testing.T) {
	report := Evaluate(nil, nil)
	if report.Precision != 0 || report.Recall != 0 || report.F1 != 0 || report.Total != 0 {
		t.Fatalf("expected zeros, got %+v", report)
	}

	onlyNegatives := Evaluate(
		[]Prediction{{Speaker: "Des voix", EventDate: "d"}},
		[]Annotation{{Speaker: "Des voix", EventDate: "d"}},
	)
	if onlyNegatives.Precision != 0 || onlyNegatives.Recall != 0 || onlyNegatives.F1 != 0 || onlyNegatives.TrueNegative != 1 {
		t.Fatalf("expected zero metrics with one true negative, got %+v", onlyNegatives)
	}
}

func TestEvaluatePairsRepeatedKeysPositionally(t *testing.T) {
	matched := []Prediction{
		{Speaker: "M. Roy", EventDate: "d", MatchedName: "Sylvain Roy"},
		{Speaker: "M. Roy", EventDate: "d", MatchedName: "Nathalie Roy"},
		{Speaker: "M. Roy", EventDate: "d", MatchedName: "Sylvain Roy"},
		{Speaker: "Other", EventDate: "d", MatchedName: "X"},
	}
	gold := []Annotation{
		{Speaker: "M. Roy", EventDate: "d", CorrectName: "Sylvain Roy"},
		{Speaker: "M. Roy", EventDate: "d", CorrectName: "Nathalie Roy"},
		{Speaker: "Unrelated", EventDate: "d", CorrectName: "Y"},
	}
	report := Evaluate(matched, gold)
	if report.TruePositive != 2 || report.Total != 2 {
		t.Fatalf("expected two positional true positives, got %+v", report)
	}
	if report.UnpairedPredictions != 2 || report.UnpairedAnnotations != 1 {
		t.Fatalf("unpaired = %d/%d", report.UnpairedPredictions, report.UnpairedAnnotations)
	}
}
