package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/examklar/examklar/internal/model"
)

func registerQuiz(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("quiz")
	cmd.SetDescription("Take and manage quizzes")

	// quiz list
	listCmd := ra.NewCmd("list")
	listCmd.SetDescription("List quizzes")

	ctx.QuizListSubject, _ = ra.NewString("subject").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Filter by subject ID or name").
		Register(listCmd)

	ctx.QuizListUsed, _ = cmd.RegisterCmd(listCmd)

	// quiz take
	takeCmd := ra.NewCmd("take")
	takeCmd.SetDescription("Take a quiz interactively")

	ctx.QuizTakeID, _ = ra.NewString("quiz").
		SetUsage("Quiz ID").
		Register(takeCmd)

	ctx.QuizTakeUsed, _ = cmd.RegisterCmd(takeCmd)

	ctx.QuizUsed, _ = parent.RegisterCmd(cmd)
}

func runQuizList(subject string, jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	var subjectID string
	if subject != "" {
		sub, err := app.Planner.FindSubject(subject)
		if err != nil {
			Fatal(err)
		}
		subjectID = sub.ID
	}

	quizzes := app.Planner.Quizzes(subjectID)

	if jsonOutput {
		if err := printJson(NewQuizListOutput(quizzes)); err != nil {
			Fatal(err)
		}
		return
	}

	if len(quizzes) == 0 {
		PrintInfo("No quizzes found")
		return
	}

	for _, q := range quizzes {
		passed := bestResult(app, q.ID)
		status := RenderMuted("not taken")
		if passed != nil {
			if passed.Passed {
				status = StyleSuccess.Render(fmt.Sprintf("passed (%d%%)", passed.Score))
			} else {
				status = StyleError.Render(fmt.Sprintf("failed (%d%%)", passed.Score))
			}
		}
		fmt.Printf("%s %s %s %s\n",
			RenderID(q.ID), RenderBold(q.Title),
			RenderMuted(fmt.Sprintf("(%d questions)", len(q.Questions))), status)
	}
}

// bestResult returns the highest-scoring attempt for a quiz, or nil.
func bestResult(app *App, quizID string) *model.QuizResult {
	results := app.Planner.Results(quizID)
	var best *model.QuizResult
	for i := range results {
		if best == nil || results[i].Score > best.Score {
			best = &results[i]
		}
	}
	return best
}

func runQuizTake(quizID string, nonInteractive, jsonOutput bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	quiz, err := app.Planner.GetQuiz(quizID)
	if err != nil {
		Fatal(err)
	}

	fmt.Println(TitleBox(quiz.Title))
	if quiz.Description != "" {
		PrintInfo("%s", quiz.Description)
	}
	PrintInfo("%d questions, %d%% to pass, time limit %s",
		len(quiz.Questions), quiz.PassingScore, quiz.TimeLimit)
	fmt.Println()

	answers := make([]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		title := fmt.Sprintf("%d/%d: %s", i+1, len(quiz.Questions), q.Question)
		idx, err := app.Prompter.SelectIndex(title, q.Options)
		if err != nil {
			Fatal(err)
		}
		answers[i] = idx
	}

	result, err := app.Quizzes.Grade(quiz.ID, answers)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(QuizResultOutput{Result: *result}); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Println()
	if result.Passed {
		PrintSuccess("Passed with %d%% (%d/%d correct)", result.Score, result.CorrectAnswers, result.TotalQuestions)
	} else {
		PrintWarning("Failed with %d%%, need %d%% (%d/%d correct)",
			result.Score, quiz.PassingScore, result.CorrectAnswers, result.TotalQuestions)
	}

	// Show explanations for missed questions
	for i, answer := range result.Answers {
		if answer.Correct {
			continue
		}
		q := quiz.Questions[i]
		fmt.Println()
		fmt.Println(RenderBold(q.Question))
		PrintInfo("Correct answer: %s", q.Options[q.CorrectAnswer])
		if q.Explanation != "" {
			PrintInfo("%s", RenderMuted(q.Explanation))
		}
	}
}
