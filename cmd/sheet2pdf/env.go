package main

import (
	"io"
	"os"
)

// envAPIKey names the environment variable carrying the Sheets API key.
// A .env file in the working directory is loaded before lookup.
const envAPIKey = "GOOGLE_SHEETS_API_KEY"

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}
