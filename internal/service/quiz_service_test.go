package service

import (
	"context"
	"errors"
	"lexi_backend/internal/model"
	"lexi_backend/internal/util"
	"testing"
)

func validQuizInput() *QuizInput {
	return &QuizInput{
		Title: "Kuis Hewan",
		Questions: []QuestionInput{
			{
				Prompt: "Asu?",
				Order:  1,
				Choices: []ChoiceInput{
					{Text: "Anjing", IsCorrect: true},
					{Text: "Ayam"},
				},
			},
			{
				Prompt: "Manuk?",
				Order:  2,
				Choices: []ChoiceInput{
					{Text: "Babi"},
					{Text: "Ayam", IsCorrect: true},
				},
			},
		},
	}
}

func TestValidateQuiz(t *testing.T) {
	cases := map[string]func(in *QuizInput){
		"no questions":  func(in *QuizInput) { in.Questions = nil },
		"empty title":   func(in *QuizInput) { in.Title = "  " },
		"zero correct":  func(in *QuizInput) { in.Questions[0].Choices[0].IsCorrect = false },
		"two correct":   func(in *QuizInput) { in.Questions[1].Choices[0].IsCorrect = true },
		"single choice": func(in *QuizInput) { in.Questions[0].Choices = in.Questions[0].Choices[:1] },
		"order below 1": func(in *QuizInput) { in.Questions[1].Order = 0 },
		"empty prompt":  func(in *QuizInput) { in.Questions[0].Prompt = "" },
		"empty choice":  func(in *QuizInput) { in.Questions[0].Choices[1].Text = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validQuizInput()
			mutate(in)
			if err := ValidateQuiz(in); !errors.Is(err, util.ErrInvalidQuiz) {
				t.Fatalf("expected ErrInvalidQuiz, got %v", err)
			}
		})
	}

	if err := ValidateQuiz(validQuizInput()); err != nil {
		t.Fatalf("valid quiz rejected: %v", err)
	}
}

func TestCreateQuizRejectsInvalidWithoutWriting(t *testing.T) {
	f := newFixture(t, nil)

	in := validQuizInput()
	in.Questions[0].Choices[1].IsCorrect = true
	if _, err := f.quizzes.Create(f.admin.ID, in); !errors.Is(err, util.ErrInvalidQuiz) {
		t.Fatalf("expected ErrInvalidQuiz, got %v", err)
	}
	if n := f.count(t, &model.Quiz{}); n != 0 {
		t.Fatalf("expected no quiz rows, got %d", n)
	}
}

func TestCreateQuizStoresQuestionsAndChoices(t *testing.T) {
	f := newFixture(t, nil)

	in := validQuizInput()
	in.Published = boolPtr(false)
	quiz, err := f.quizzes.Create(f.admin.ID, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quiz.Published {
		t.Fatal("expected draft quiz")
	}
	if len(quiz.Questions) != 2 || len(quiz.Questions[1].Choices) != 2 {
		t.Fatalf("unexpected structure: %+v", quiz.Questions)
	}
	if quiz.Questions[0].Prompt != "Asu?" || quiz.Questions[0].CorrectChoiceID() == 0 {
		t.Fatalf("unexpected first question: %+v", quiz.Questions[0])
	}
}

func TestCreateQuizRejectsUnknownCategory(t *testing.T) {
	f := newFixture(t, nil)

	in := validQuizInput()
	in.CategoryID = uintPtr(999)
	if _, err := f.quizzes.Create(f.admin.ID, in); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateQuizDiffsQuestionsByID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	quiz, err := f.quizzes.Create(f.admin.ID, validQuizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	keep := quiz.Questions[0]
	dropped := quiz.Questions[1]

	in := &QuizInput{
		Title:       "Kuis Hewan (revisi)",
		Description: "updated",
		Questions: []QuestionInput{
			{
				ID:     keep.ID,
				Prompt: "Apa arti Asu?",
				Order:  1,
				Choices: []ChoiceInput{
					{ID: keep.Choices[0].ID, Text: "Anjing", IsCorrect: true},
					{Text: "Buaya"},
				},
			},
			{
				Prompt: "Iwak?",
				Order:  2,
				Choices: []ChoiceInput{
					{Text: "Ikan", IsCorrect: true},
					{Text: "Lebah"},
				},
			},
		},
	}

	updated, err := f.quizzes.Update(ctx, quiz.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Kuis Hewan (revisi)" || len(updated.Questions) != 2 {
		t.Fatalf("unexpected quiz after update: %+v", updated)
	}

	first := updated.Questions[0]
	if first.ID != keep.ID || first.Prompt != "Apa arti Asu?" {
		t.Fatalf("expected question %d updated in place, got %+v", keep.ID, first)
	}
	if first.Choices[0].ID != keep.Choices[0].ID || first.Choices[1].Text != "Buaya" {
		t.Fatalf("unexpected choices: %+v", first.Choices)
	}
	if first.Choices[1].ID == keep.Choices[1].ID {
		t.Fatal("expected the omitted choice to be replaced by a new row")
	}

	var n int64
	f.db.Model(&model.Question{}).Where("id = ?", dropped.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected question %d deleted", dropped.ID)
	}
	f.db.Model(&model.Choice{}).Where("question_id = ?", dropped.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected choices of question %d deleted", dropped.ID)
	}
}

func TestUpdateQuizRejectsForeignIDsAtomically(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	quiz, err := f.quizzes.Create(f.admin.ID, validQuizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := f.quizzes.Create(f.admin.ID, validQuizInput())
	if err != nil {
		t.Fatalf("create other: %v", err)
	}

	in := validQuizInput()
	in.Title = "should not stick"
	in.Questions[0].ID = other.Questions[0].ID

	if _, err := f.quizzes.Update(ctx, quiz.ID, in); !errors.Is(err, util.ErrInvalidQuiz) {
		t.Fatalf("expected ErrInvalidQuiz, got %v", err)
	}

	reloaded, err := f.quizzes.Get(quiz.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.Title != "Kuis Hewan" || len(reloaded.Questions) != 2 {
		t.Fatalf("expected quiz untouched, got %q with %d questions", reloaded.Title, len(reloaded.Questions))
	}
}

func TestUpdateQuizEnforcesSingleCorrectChoice(t *testing.T) {
	f := newFixture(t, nil)

	quiz, err := f.quizzes.Create(f.admin.ID, validQuizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	in := validQuizInput()
	in.Questions[0].Choices[1].IsCorrect = true

	if _, err := f.quizzes.Update(context.Background(), quiz.ID, in); !errors.Is(err, util.ErrInvalidQuiz) {
		t.Fatalf("expected ErrInvalidQuiz, got %v", err)
	}
}

func TestDeleteQuizCascades(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	learner := f.learner(t, "budi")

	quiz, err := f.quizzes.Create(f.admin.ID, validQuizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = f.play.Submit(ctx, learner.ID, &SubmitInput{
		QuizID:  quiz.ID,
		Answers: []SubmittedAnswer{{QuestionID: quiz.Questions[0].ID, ChoiceID: uintPtr(quiz.Questions[0].CorrectChoiceID())}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := f.quizzes.Delete(ctx, quiz.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, m := range []interface{}{&model.Question{}, &model.Choice{}, &model.QuizAttempt{}, &model.QuizAnswer{}} {
		if n := f.count(t, m); n != 0 {
			t.Fatalf("expected %T rows removed, got %d", m, n)
		}
	}
	if err := f.quizzes.Delete(ctx, quiz.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound on second delete, got %v", err)
	}
}

func TestListPublishedFlagsAttempts(t *testing.T) {
	f := newFixture(t, nil)
	learner := f.learner(t, "sari")

	published, err := f.quizzes.Create(f.admin.ID, validQuizInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	draft := validQuizInput()
	draft.Title = "Draft"
	draft.Published = boolPtr(false)
	if _, err := f.quizzes.Create(f.admin.ID, draft); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	anonymous, err := f.quizzes.ListPublished(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(anonymous) != 1 || anonymous[0].Attempted != nil || anonymous[0].QuestionCount != 2 {
		t.Fatalf("unexpected anonymous listing: %+v", anonymous)
	}

	_, err = f.play.Submit(context.Background(), learner.ID, &SubmitInput{
		QuizID:  published.ID,
		Answers: []SubmittedAnswer{{QuestionID: published.Questions[0].ID}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	mine, err := f.quizzes.ListPublished(learner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].Attempted == nil || !*mine[0].Attempted {
		t.Fatalf("expected attempted flag, got %+v", mine)
	}
}
