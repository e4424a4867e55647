package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/amterp/ra"
	"github.com/examklar/examklar/internal/errors"
	"github.com/examklar/examklar/internal/generator"
	"github.com/examklar/examklar/internal/util"
)

func registerOnboard(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("onboard")
	cmd.SetDescription("Set up a new subject with generated study content")

	ctx.OnboardSubject, _ = ra.NewString("subject").
		SetOptional(true).
		SetUsage("Subject name (e.g. Matematik)").
		Register(cmd)

	ctx.OnboardExam, _ = ra.NewString("exam-date").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Exam date (YYYY-MM-DD)").
		Register(cmd)

	ctx.OnboardHours, _ = ra.NewInt("hours").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Estimated study hours until the exam").
		Register(cmd)

	ctx.OnboardUsed, _ = parent.RegisterCmd(cmd)
}

func runOnboard(subject, examDate string, hours int, nonInteractive, jsonOutput bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	// Fill in missing inputs interactively
	if subject == "" {
		subject, err = app.Prompter.Input("What subject are you studying?", "")
		if err != nil {
			Fatal(err)
		}
	}

	if examDate == "" {
		examDate, err = app.Prompter.Input("When is the exam? (YYYY-MM-DD)", "")
		if err != nil {
			Fatal(err)
		}
	}
	exam, ok := util.ParseISO(examDate)
	if !ok {
		Fatal(errors.InvalidField("exam-date", "must be a YYYY-MM-DD date"))
	}
	if !exam.After(time.Now()) {
		Fatal(errors.InvalidField("exam-date", "must be in the future"))
	}

	if hours <= 0 {
		answer, err := app.Prompter.Input("How many hours can you study in total?", "20")
		if err != nil {
			Fatal(err)
		}
		hours, err = strconv.Atoi(answer)
		if err != nil || hours <= 0 {
			Fatal(errors.InvalidField("hours", "must be a positive number"))
		}
	}

	var onProgress generator.ProgressFunc
	if !jsonOutput {
		onProgress = func(p generator.Progress) {
			fmt.Printf("  [%3d%%] %s\n", p.Percent, p.Message)
		}
	}

	result, err := app.Onboard.Onboard(generator.Input{
		SubjectName:    subject,
		ExamDate:       exam,
		EstimatedHours: hours,
	}, onProgress)
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(OnboardOutput{
			SubjectID: result.Subject.ID,
			Subject:   result.Subject.Name,
			DeckIDs:   result.DeckIDs,
			QuizIDs:   result.QuizIDs,
			PlanID:    result.PlanID,
			Sessions:  result.Sessions,
		}); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Println()
	PrintSuccess("Subject %s is ready (%s)", RenderBold(result.Subject.Name), RenderID(result.Subject.ID))
	PrintInfo("%d decks, %d quizzes, %d study sessions planned until %s",
		len(result.DeckIDs), len(result.QuizIDs), result.Sessions, util.FormatDate(exam))
	PrintInfo("Start reviewing with 'examklar review'")
}
