// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
)

const defaultRegistryPath = "pkg/registry/activities.json"

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	listPath := listCmd.String("path", defaultRegistryPath, "Path to registry file")

	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	taskType := updateCmd.String("taskType", "", "Task type to update (e.g., match-sake)")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries, description)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		_ = listCmd.Parse(os.Args[2:])
		reg, err := loadRegistry(*listPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		printActivities(os.Stdout, reg)

	case "update":
		_ = updateCmd.Parse(os.Args[2:])
		if *taskType == "" || *field == "" || *value == "" {
			fmt.Println("Error: taskType, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*updatePath, *taskType, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated %s, field %s to %s\n", *taskType, *field, *value)

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		reg, err := loadRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		problems := validateRegistry(reg)
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		if len(problems) > 0 {
			fmt.Printf("Registry validation failed: %d problem(s).\n", len(problems))
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "help":
		fallthrough
	default:
		help()
	}
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  list      List the activities in the registry
  update    Update an existing activity's field
  validate  Check the registry against the workers and error codes
  help      Show this help message

Examples:
  registry-updater list
  registry-updater update -taskType match-sake -field timeout -value 10s
  registry-updater validate -path pkg/registry/activities.json

Use 'registry-updater <command> -h' for more information about a command.
` + "\n")
}
