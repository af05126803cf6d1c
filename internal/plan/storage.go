package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	faroDir  = ".faro"
	plansDir = "plans"
)

// PlansPath returns the path of the plans directory relative to the working
// directory.
func PlansPath() string {
	return filepath.Join(faroDir, plansDir)
}

// ResolvePlanName checks for name collisions in the plans directory and returns
// a unique name. If the baseName is not taken, it returns as-is. If taken, it
// appends -2, -3, etc. until a unique name is found.
func ResolvePlanName(baseName string) (string, error) {
	entries, err := os.ReadDir(PlansPath())
	if err != nil {
		if os.IsNotExist(err) {
			// Directory doesn't exist yet, so no collisions possible
			return baseName, nil
		}
		return "", fmt.Errorf("failed to read plans directory: %w", err)
	}

	// Build a set of existing names (extracted from folder names)
	existingNames := make(map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// Folder format is <id>-<name>, so we split on first hyphen
		parts := strings.SplitN(entry.Name(), "-", 2)
		if len(parts) == 2 {
			existingNames[parts[1]] = true
		}
	}

	if !existingNames[baseName] {
		return baseName, nil
	}

	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", baseName, suffix)
		if !existingNames[candidate] {
			return candidate, nil
		}
	}
}

// CreatePlanFolder creates the plan folder structure with plan.json and the
// progress log. The folder is created at .faro/plans/<id>-<name>/
func CreatePlanFolder(p *Plan) error {
	folderName := fmt.Sprintf("%s-%s", p.ID, p.Name)
	folderPath := filepath.Join(PlansPath(), folderName)

	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return fmt.Errorf("failed to create plan folder: %w", err)
	}

	planData, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	planPath := filepath.Join(folderPath, "plan.json")
	if err := os.WriteFile(planPath, planData, 0644); err != nil {
		return fmt.Errorf("failed to write plan.json: %w", err)
	}

	progressLogPath := filepath.Join(folderPath, progressLogFileName)
	if err := os.WriteFile(progressLogPath, []byte{}, 0644); err != nil {
		return fmt.Errorf("failed to create progress.log: %w", err)
	}

	return nil
}

// FindPlanFolder finds a plan folder by name suffix in .faro/plans/.
// Returns the full path to the plan folder.
func FindPlanFolder(name string) (string, error) {
	entries, err := os.ReadDir(PlansPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no plans found. Run 'faro plan create' first")
		}
		return "", fmt.Errorf("failed to read plans directory: %w", err)
	}

	var matches []string
	suffix := "-" + name

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			matches = append(matches, entry.Name())
		}
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("plan not found: %s", name)
	}

	if len(matches) > 1 {
		return "", fmt.Errorf("multiple plans match '%s': %v", name, matches)
	}

	return filepath.Join(PlansPath(), matches[0]), nil
}

// LoadPlan reads and parses plan.json from a plan directory.
func LoadPlan(planDir string) (*Plan, error) {
	planPath := filepath.Join(planDir, "plan.json")

	data, err := os.ReadFile(planPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan.json: %w", err)
	}

	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan.json: %w", err)
	}

	return &p, nil
}

// SavePlan atomically writes plan.json to the plan directory.
// Uses a temp file + rename to ensure atomic writes.
func SavePlan(planDir string, p *Plan) error {
	planPath := filepath.Join(planDir, "plan.json")
	tmpPath := fmt.Sprintf("%s.tmp.%d", planPath, os.Getpid())

	// Marshal with 2-space indent to match CreatePlanFolder
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Rename temp file to plan.json (atomic operation)
	if err := os.Rename(tmpPath, planPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
