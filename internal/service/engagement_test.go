package service

import "testing"

func TestParseEngagementReply(t *testing.T) {
	reply := "Hook: 22/25 - strong opener\n" +
		"Content: 21/25 - solid value\n" +
		"Readability: 18/20 - good structure\n" +
		"CTA: 11/15 - clear ask\n" +
		"Authenticity: 14/15 - genuine voice\n" +
		"Total: 86/100\n" +
		"Prediction: Excellent"

	score := parseEngagementReply(reply)
	if score.Hook != 22 || score.Content != 21 || score.Readability != 18 ||
		score.CTA != 11 || score.Authenticity != 14 || score.Total != 86 {
		t.Fatalf("unexpected scores %+v", score)
	}
	if score.Prediction != "Excellent" {
		t.Fatalf("unexpected prediction %q", score.Prediction)
	}
	if score.Details != reply {
		t.Fatal("details must carry the raw reply")
	}
}

func TestParseEngagementReplyAcceptsOutOfRangeValues(t *testing.T) {
	score := parseEngagementReply("Hook: 30/25 - over-enthusiastic grader")
	if score.Hook != 30 {
		t.Fatalf("values above the stated maximum pass through as-is, got %d", score.Hook)
	}
}

func TestParseEngagementReplyMissingAndMalformedFields(t *testing.T) {
	score := parseEngagementReply("Hook: 10/25\nContent: abc/25\nPrediction: Fair")
	if score.Hook != 10 {
		t.Fatalf("expected hook 10, got %d", score.Hook)
	}
	if score.Content != 0 {
		t.Fatalf("non-numeric score must be 0, got %d", score.Content)
	}
	if score.Readability != 0 || score.CTA != 0 || score.Authenticity != 0 || score.Total != 0 {
		t.Fatalf("missing fields must stay zero: %+v", score)
	}
	if score.Prediction != "Fair" {
		t.Fatalf("unexpected prediction %q", score.Prediction)
	}
}

func TestParseEngagementReplyGarbage(t *testing.T) {
	score := parseEngagementReply("I cannot score this post, sorry.")
	if score.Hook != 0 || score.Total != 0 {
		t.Fatalf("garbage reply must yield zero scores: %+v", score)
	}
	if score.Prediction != "Unknown" {
		t.Fatalf("expected Unknown prediction, got %q", score.Prediction)
	}
	if score.Details == "" {
		t.Fatal("details must retain the reply for display")
	}
}
