package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/container"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	questions := flag.String("questions", settings.Quiz.QuestionsPath, "question bank file (.json or .yaml)")
	size := flag.Int("n", settings.Quiz.SessionSize, "questions per quiz")
	player := flag.String("player", os.Getenv("USER"), "player name")
	noColor := flag.Bool("no-color", false, "disable colours")
	flag.Parse()

	// The terminal belongs to the UI; keep logs off it.
	config.InitLogger(settings.Env, settings.LogLevel)
	config.Logger.SetOutput(io.Discard)

	bank, err := container.LoadBank(context.Background(), *questions)
	if err != nil {
		return err
	}
	g, err := game.New(bank, game.FitSize(bank, *size), game.WithPlayer(*player))
	if err != nil {
		return fmt.Errorf("nothing to show: %w", err)
	}

	model := tui.New(g, tui.Options{
		RevealDelay:  settings.Quiz.RevealDelay,
		RestartDelay: settings.Quiz.RestartDelay,
		NoColor:      *noColor,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
