// cmd/tools/registry-updater/registry.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/validation"
	refreshcatalog "sake-reco/internal/workers/catalog/refresh-catalog"
	buildsakeresponse "sake-reco/internal/workers/recommendation/build-sake-response"
	findsimilarsake "sake-reco/internal/workers/recommendation/find-similar-sake"
	matchsake "sake-reco/internal/workers/recommendation/match-sake"
	parsepreferences "sake-reco/internal/workers/recommendation/parse-preferences"
	questionnairestep "sake-reco/internal/workers/recommendation/questionnaire-step"
	"sake-reco/pkg/registry"
)

// workerTaskTypes are the task types cmd/worker-manager registers.
var workerTaskTypes = []string{
	refreshcatalog.TaskType,
	parsepreferences.TaskType,
	matchsake.TaskType,
	findsimilarsake.TaskType,
	questionnairestep.TaskType,
	buildsakeresponse.TaskType,
}

var validStatuses = map[string]bool{
	"planned":     true,
	"in-progress": true,
	"implemented": true,
	"verified":    true,
}

func loadRegistry(path string) (*registry.ActivityRegistry, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return reg, nil
}

// bpmnCodes lists every code a worker can throw.
func bpmnCodes() map[string]bool {
	codes := map[string]bool{
		string(apperrors.ErrCodeCacheUnavailable): true,
		string(apperrors.ErrCodeInternal):         true,
	}
	for _, c := range apperrors.BPMNErrorMapping {
		codes[c] = true
	}
	return codes
}

// validateRegistry returns one line per problem; nil means the registry is usable.
func validateRegistry(reg *registry.ActivityRegistry) []string {
	var problems []string
	if len(reg.Activities) == 0 {
		return []string{"registry contains no activities"}
	}

	if _, err := validation.NewValidator(reg); err != nil {
		problems = append(problems, err.Error())
	}

	known := bpmnCodes()
	seen := make(map[string]bool, len(reg.Activities))
	for _, a := range reg.Activities {
		seen[a.TaskType] = true

		if a.ID == "" {
			problems = append(problems, fmt.Sprintf("%s: missing id", a.TaskType))
		}
		if a.DisplayName == "" {
			problems = append(problems, fmt.Sprintf("%s: missing displayName", a.TaskType))
		}
		if !validStatuses[a.ImplementationStatus] {
			problems = append(problems, fmt.Sprintf("%s: unknown implementationStatus %q", a.TaskType, a.ImplementationStatus))
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", a.TaskType, a.Timeout))
			}
		}
		if a.Retries < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative retries", a.TaskType))
		}
		for _, code := range a.ErrorCodes {
			if !known[code] {
				problems = append(problems, fmt.Sprintf("%s: unknown error code %s", a.TaskType, code))
			}
		}
	}

	for _, tt := range workerTaskTypes {
		if !seen[tt] {
			problems = append(problems, fmt.Sprintf("worker %s has no registry entry", tt))
		}
	}
	return problems
}

func updateActivity(path, taskType, field, value string) error {
	reg, err := loadRegistry(path)
	if err != nil {
		return err
	}

	idx := -1
	for i := range reg.Activities {
		if reg.Activities[i].TaskType == taskType {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("activity %s not found", taskType)
	}

	a := &reg.Activities[idx]
	switch field {
	case "status":
		if !validStatuses[value] {
			return fmt.Errorf("invalid status %q", value)
		}
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "description":
		a.Description = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("invalid retries value %q", value)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = time.Now().Format("2006-01-02")
	return saveRegistry(reg, path)
}

func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func printActivities(w io.Writer, reg *registry.ActivityRegistry) {
	acts := append([]registry.Activity(nil), reg.Activities...)
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Category < acts[j].Category })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT\tERROR CODES")
	for _, a := range acts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, strings.Join(a.ErrorCodes, ","))
	}
	_ = tw.Flush()
}
