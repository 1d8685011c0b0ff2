package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	sub := make(map[string]*complete.Command)
	for _, c := range Commands() {
		sub[c.Name()] = &complete.Command{Args: predict.Nothing}
	}
	sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	sub["flags"] = &complete.Command{}

	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config":     predict.Files("*.yaml"),
			"base-url":   predict.Something,
			"store":      predict.Set{"file", "sqlite"},
			"store-path": predict.Dirs("*"),
			"slot":       predict.Something,
			"log-level":  predict.Set{"debug", "info", "warn", "error"},
			"raw":        predict.Nothing,
		},
	}
}

func commandNames() []string {
	var names []string
	for _, c := range Commands() {
		names = append(names, c.Name())
	}
	return names
}
