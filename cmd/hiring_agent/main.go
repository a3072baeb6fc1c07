// Package main provides the entry point for the hiring agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiring_agent",
	Short: "Candidate evaluation and ranking agent",
	Long:  "Hiring agent evaluates resumes against a job description using semantic matching, scores candidates on five factors, decides a hiring action per candidate and produces ranked, explainable reports.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
