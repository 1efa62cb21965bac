/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"os"

	"github.com/Seednode/quizbox/questions"
)

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}

// loadQuestions reads the question bank named on the command line, falling
// back to the built-in bank.
func loadQuestions(cfg *Config) (*questions.Bank, error) {
	if cfg.questions == "" {
		bank, err := questions.Load("")
		if err != nil {
			return nil, err
		}

		logf(cfg, "START: Loaded %d built-in questions", bank.Len())

		return bank, nil
	}

	info, err := os.Stat(cfg.questions)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("question bank %s is a directory", cfg.questions)
	}

	bank, err := questions.Load(cfg.questions)
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", cfg.questions, err)
	}

	logf(cfg, "START: Loaded %d questions from %s (%s)",
		bank.Len(),
		cfg.questions,
		humanReadableSize(info.Size()),
	)

	return bank, nil
}
