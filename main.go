// @title Lexi API
// @version 1.0
// @description Dayak language learning backend: materials, quizzes and leaderboard.

// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name lexi.session-token

package main

import (
	"lexi_backend/internal/cli"
	"os"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
