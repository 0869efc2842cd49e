// Command learn runs one Leitner learning session of a stored lesson in the
// terminal and saves the outcome.
//
// Flags:
//
//	--lesson   lesson ID (required)
//	--learner  learner ID the session history is stored under (default: nil UUID)
//
// Exit codes: 0 = success, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/heartmarshall/leitner/internal/app"
	"github.com/heartmarshall/leitner/internal/config"
)

func main() {
	lessonFlag := flag.String("lesson", "", "lesson ID")
	learnerFlag := flag.String("learner", uuid.Nil.String(), "learner ID")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --lesson=<id> [--learner=<id>]\n", os.Args[0])
		flag.PrintDefaults()
		config.Usage(flag.CommandLine.Output())
	}
	flag.Parse()

	lessonID, err := uuid.Parse(*lessonFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --lesson %q: %v\n", *lessonFlag, err)
		os.Exit(2)
	}
	learnerID, err := uuid.Parse(*learnerFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --learner %q: %v\n", *learnerFlag, err)
		os.Exit(2)
	}

	err = app.Run(context.Background(), app.Params{
		LessonID:  lessonID,
		LearnerID: learnerID,
		In:        os.Stdin,
		Out:       os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "learn: %v\n", err)
		os.Exit(1)
	}
}
