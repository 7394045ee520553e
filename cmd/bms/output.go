package main

import (
	"encoding/json"

	"github.com/pterm/pterm"
)

// printJSON prints v as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	pterm.Println(string(data))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
