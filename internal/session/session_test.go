package session

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

func TestTouchCountsFeatures(t *testing.T) {
	s := NewStore()
	s.Touch("abc", "entities")
	s.Touch("abc", "entities")
	s.Touch("abc", "sentiment")

	info, err := s.Get("abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if info.FeatureCounts["entities"] != 2 || info.FeatureCounts["sentiment"] != 1 {
		t.Errorf("counts = %v, want entities=2 sentiment=1", info.FeatureCounts)
	}
}

func TestTouchIgnoresBlankID(t *testing.T) {
	s := NewStore()
	s.Touch("", "entities")
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 after blank-ID touch", s.Len())
	}
}

func TestGetUnknownSession(t *testing.T) {
	s := NewStore()
	_, err := s.Get("nope")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestHistoryAppendsInOrder(t *testing.T) {
	s := NewStore()
	s.AppendHistory("abc", HistoryEntry{Question: "first?", Answer: "one"})
	s.AppendHistory("abc", HistoryEntry{Question: "second?", Answer: "two"})

	info, err := s.Get("abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(info.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(info.History))
	}
	if info.History[0].Question != "first?" || info.History[1].Question != "second?" {
		t.Errorf("history out of order: %+v", info.History)
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	s := NewStore()
	s.maxHistory = 3
	for i := 0; i < 5; i++ {
		s.AppendHistory("abc", HistoryEntry{Question: fmt.Sprintf("q%d", i)})
	}

	info, err := s.Get("abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(info.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(info.History))
	}
	if info.History[0].Question != "q2" {
		t.Errorf("oldest kept entry = %s, want q2", info.History[0].Question)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	s := NewStore()
	s.Touch("abc", "qa")
	s.AppendHistory("abc", HistoryEntry{Question: "q"})

	info, _ := s.Get("abc")
	info.FeatureCounts["qa"] = 99
	info.History[0].Question = "mutated"

	fresh, _ := s.Get("abc")
	if fresh.FeatureCounts["qa"] != 1 {
		t.Error("FeatureCounts must be a copy")
	}
	if fresh.History[0].Question != "q" {
		t.Error("History must be a copy")
	}
}
