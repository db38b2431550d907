package services

import (
	"testing"

	"bluffpot/internal/models"
)

func TestComputeSettlementTruthPost(t *testing.T) {
	votes := []models.Vote{
		{ID: 1, UserID: 10, Guess: models.GuessTruth, Wager: 50},
		{ID: 2, UserID: 11, Guess: models.GuessBluff, Wager: 30},
	}

	out := computeSettlement(models.GuessTruth, votes)

	if len(out.Votes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(out.Votes))
	}

	correct := out.Votes[0]
	if !correct.Correct || correct.ChipsWon != 50 || correct.Payout != 100 {
		t.Errorf("correct voter: %+v, want chipsWon=+50 payout=100", correct)
	}

	wrong := out.Votes[1]
	if wrong.Correct || wrong.ChipsWon != -30 || wrong.Payout != 0 {
		t.Errorf("wrong voter: %+v, want chipsWon=-30 payout=0 (stake already debited)", wrong)
	}

	if out.AuthorBonus != 0 {
		t.Errorf("truth post has no author bonus, got %d", out.AuthorBonus)
	}
	if out.ChipPot != 100 {
		t.Errorf("pot = %d, want 100", out.ChipPot)
	}
}

func TestComputeSettlementBluffBonus(t *testing.T) {
	// Voter 1 is fooled (guessed truth on a bluff), voter 2 reads it right.
	votes := []models.Vote{
		{ID: 1, UserID: 10, Guess: models.GuessTruth, Wager: 10},
		{ID: 2, UserID: 11, Guess: models.GuessBluff, Wager: 20},
	}

	out := computeSettlement(models.GuessBluff, votes)

	if out.Votes[0].ChipsWon != -10 || out.Votes[0].Payout != 0 {
		t.Errorf("fooled voter: %+v, want chipsWon=-10 no payout", out.Votes[0])
	}
	if out.Votes[1].ChipsWon != 20 || out.Votes[1].Payout != 40 {
		t.Errorf("correct voter: %+v, want chipsWon=+20 payout=40", out.Votes[1])
	}
	if out.AuthorBonus != 10 {
		t.Errorf("author bonus = %d, want 10 (sum of fooled wagers)", out.AuthorBonus)
	}
	if out.ChipPot != 50 {
		t.Errorf("pot = %d, want 50 (40 payout + 10 bonus)", out.ChipPot)
	}
}

func TestComputeSettlementBluffNobodyFooled(t *testing.T) {
	votes := []models.Vote{
		{ID: 1, UserID: 10, Guess: models.GuessBluff, Wager: 25},
		{ID: 2, UserID: 11, Guess: models.GuessBluff, Wager: 25},
	}

	out := computeSettlement(models.GuessBluff, votes)

	if out.AuthorBonus != 0 {
		t.Errorf("nobody fooled, bonus = %d, want 0", out.AuthorBonus)
	}
	if out.ChipPot != 100 {
		t.Errorf("pot = %d, want 100", out.ChipPot)
	}
}

func TestComputeSettlementLegacyVoteDefaultsWager(t *testing.T) {
	// Votes persisted before wagers were stored settle at the default.
	votes := []models.Vote{
		{ID: 1, UserID: 10, Guess: models.GuessTruth, Wager: 0},
	}

	out := computeSettlement(models.GuessTruth, votes)

	if out.Votes[0].ChipsWon != DefaultWager {
		t.Errorf("chipsWon = %d, want default %d", out.Votes[0].ChipsWon, DefaultWager)
	}
	if out.Votes[0].Payout != 2*DefaultWager {
		t.Errorf("payout = %d, want %d", out.Votes[0].Payout, 2*DefaultWager)
	}
}

func TestComputeSettlementNoVotes(t *testing.T) {
	out := computeSettlement(models.GuessBluff, nil)
	if len(out.Votes) != 0 || out.AuthorBonus != 0 || out.ChipPot != 0 {
		t.Errorf("empty post should settle empty: %+v", out)
	}
}

// Settlement math is pure, so re-running it must never change the outcome.
func TestComputeSettlementDeterministic(t *testing.T) {
	votes := []models.Vote{
		{ID: 1, UserID: 10, Guess: models.GuessTruth, Wager: 100},
		{ID: 2, UserID: 11, Guess: models.GuessBluff, Wager: 45},
		{ID: 3, UserID: 12, Guess: models.GuessTruth, Wager: 5},
	}

	first := computeSettlement(models.GuessBluff, votes)
	for i := 0; i < 10; i++ {
		again := computeSettlement(models.GuessBluff, votes)
		if again.ChipPot != first.ChipPot || again.AuthorBonus != first.AuthorBonus {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}

	// Balance conservation: credits equal the pot by construction.
	credits := first.AuthorBonus
	for _, v := range first.Votes {
		credits += v.Payout
	}
	if credits != first.ChipPot {
		t.Errorf("credits %d != pot %d", credits, first.ChipPot)
	}
}
