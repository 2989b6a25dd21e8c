package qbank

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/agentstation/qbank/pkg/merge"
	"github.com/agentstation/qbank/pkg/questions"
)

func seedQuestions(n int) []questions.Question {
	qs := make([]questions.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, questions.Question{
			ID:           fmt.Sprintf("%d", i),
			Type:         questions.TypeMultipleChoice,
			Title:        fmt.Sprintf("Question %d", i),
			QuestionText: fmt.Sprintf("What is %d + %d?", i, i),
			Choices:      []string{"1", "2", "3", "4"},
			Answer:       "A",
			Points:       "1",
			Topic:        "arithmetic",
			Difficulty:   questions.DifficultyEasy,
		})
	}
	return qs
}

func TestBankWorkflow(t *testing.T) {
	existing := seedQuestions(5)

	bank, err := New(WithQuestions(existing), WithRenumber(true))
	if err != nil {
		t.Fatalf("Failed to create bank: %v", err)
	}

	if bank.Len() != 5 {
		t.Fatalf("Expected 5 questions, got %d", bank.Len())
	}
	if next := bank.NextAvailableID(); next != 5 {
		t.Errorf("Expected next id 5, got %d", next)
	}

	incoming := seedQuestions(3)

	t.Run("Conflicts", func(t *testing.T) {
		report := bank.Conflicts(incoming)
		if got := len(report.IDCollisions()); got != 3 {
			t.Errorf("Expected 3 id collisions, got %d", got)
		}
	})

	t.Run("PreviewLeavesBankUntouched", func(t *testing.T) {
		result, err := bank.Preview(incoming, merge.StrategyKeepBothRenumber)
		if err != nil {
			t.Fatalf("Preview failed: %v", err)
		}
		if !result.Metadata.DryRun {
			t.Error("Expected dry run metadata")
		}
		if bank.Len() != 5 {
			t.Errorf("Preview changed the bank: len=%d", bank.Len())
		}
	})

	t.Run("MergeUpdatesBank", func(t *testing.T) {
		result, err := bank.Merge(incoming, merge.StrategyKeepBothRenumber)
		if err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		if result.FinalCount != 8 {
			t.Errorf("Expected final count 8, got %d", result.FinalCount)
		}
		if bank.Len() != 8 {
			t.Errorf("Expected bank to hold merged collection, got len=%d", bank.Len())
		}
		if next := bank.NextAvailableID(); next != 8 {
			t.Errorf("Expected next id 8 after merge, got %d", next)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		report, err := bank.Validate()
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if !report.AllValid() {
			t.Errorf("Expected all questions valid: %s", report.Summary())
		}
	})
}

func TestBankQuestionsReturnsCopy(t *testing.T) {
	bank, err := New(WithQuestions(seedQuestions(2)))
	if err != nil {
		t.Fatalf("Failed to create bank: %v", err)
	}

	qs := bank.Questions()
	qs[0].Title = "mutated"
	qs[0].Choices[0] = "mutated"

	fresh := bank.Questions()
	if fresh[0].Title == "mutated" || fresh[0].Choices[0] == "mutated" {
		t.Error("Expected Questions to return an independent copy")
	}
}

func TestBankSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")

	bank, err := New(WithQuestions(seedQuestions(3)))
	if err != nil {
		t.Fatalf("Failed to create bank: %v", err)
	}
	if err := bank.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := New(WithFile(path))
	if err != nil {
		t.Fatalf("Failed to reload bank: %v", err)
	}
	if reloaded.Len() != 3 {
		t.Errorf("Expected 3 questions after reload, got %d", reloaded.Len())
	}
}

func TestBankSaveWithoutPath(t *testing.T) {
	bank, err := New()
	if err != nil {
		t.Fatalf("Failed to create bank: %v", err)
	}
	if err := bank.Save(""); err == nil {
		t.Error("Expected error saving a bank with no path")
	}
}

func TestBankRejectStrategyLeavesBankUntouched(t *testing.T) {
	bank, err := New(WithQuestions(seedQuestions(2)))
	if err != nil {
		t.Fatalf("Failed to create bank: %v", err)
	}

	if _, err := bank.Merge(seedQuestions(1), merge.StrategyReject); err == nil {
		t.Fatal("Expected reject strategy to abort on collision")
	}
	if bank.Len() != 2 {
		t.Errorf("Aborted merge changed the bank: len=%d", bank.Len())
	}
}
