package main

import "workledger/internal/app"

// @title Work Ledger API
// @version 1.0
// @description Billable task ledger: companies, projects, tasks, billing and reporting.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
